package eval

import "github.com/discochess/staticeval/internal/board"

// PieceSquare returns the signed positional adjustment for piece on sq.
//
// White pieces read their table directly. Black pieces read it at the
// mirrored square and the value is negated. Kings switch to the endgame
// table in the Endgame phase. Unknown pieces and off-board squares score 0.
func PieceSquare(piece byte, sq int, phase Phase) int {
	if !board.OnBoard(sq) {
		return 0
	}

	sign := 1
	if piece >= 'a' && piece <= 'z' {
		sign = -1
		sq = board.Mirror(sq)
		piece -= 'a' - 'A'
	}

	table := tableFor(piece, phase)
	if table == nil {
		return 0
	}
	return sign * table[sq]
}

// Positional sums PieceSquare over every occupied square of position.
func Positional(position string, phase Phase) int {
	score := 0
	for sq, piece := range board.Squares(position) {
		score += PieceSquare(piece, sq, phase)
	}
	return score
}

func tableFor(piece byte, phase Phase) *[64]int {
	switch piece {
	case 'P':
		return &pawnTable
	case 'N':
		return &knightTable
	case 'B':
		return &bishopTable
	case 'R':
		return &rookTable
	case 'Q':
		return &queenTable
	case 'K':
		if phase == Endgame {
			return &kingEndgameTable
		}
		return &kingMiddlegameTable
	}
	return nil
}
