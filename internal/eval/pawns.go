package eval

import "github.com/discochess/staticeval/internal/board"

// DoubledPawnPenalty is charged for every pawn beyond the first on a file.
const DoubledPawnPenalty = 20

// PawnStructure scores doubled pawns. A White doubled file lowers the score
// and a Black one raises it by the same amount.
func PawnStructure(position string) int {
	var white, black [8]int
	for sq, piece := range board.Squares(position) {
		switch piece {
		case 'P':
			white[board.File(sq)]++
		case 'p':
			black[board.File(sq)]++
		}
	}

	score := 0
	for file := 0; file < 8; file++ {
		if white[file] > 1 {
			score -= DoubledPawnPenalty * (white[file] - 1)
		}
		if black[file] > 1 {
			score += DoubledPawnPenalty * (black[file] - 1)
		}
	}
	return score
}
