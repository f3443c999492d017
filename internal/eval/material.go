package eval

import "github.com/discochess/staticeval/internal/board"

// Piece values in centipawns. Black pieces carry the negated value.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Phase thresholds on non-king material, summed over both sides.
const (
	EndgameThreshold    = 4000
	MiddlegameThreshold = 6000
)

// Phase is a coarse classification of how much material remains.
type Phase int

const (
	Opening Phase = iota
	Middlegame
	Endgame
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Middlegame:
		return "middlegame"
	case Endgame:
		return "endgame"
	default:
		return "unknown"
	}
}

// PieceValue returns the signed value of a piece letter.
// ok is false for bytes that do not name a piece.
func PieceValue(piece byte) (value int, ok bool) {
	switch piece {
	case 'P':
		return PawnValue, true
	case 'N':
		return KnightValue, true
	case 'B':
		return BishopValue, true
	case 'R':
		return RookValue, true
	case 'Q':
		return QueenValue, true
	case 'K':
		return KingValue, true
	case 'p':
		return -PawnValue, true
	case 'n':
		return -KnightValue, true
	case 'b':
		return -BishopValue, true
	case 'r':
		return -RookValue, true
	case 'q':
		return -QueenValue, true
	case 'k':
		return -KingValue, true
	}
	return 0, false
}

// Material returns the signed material balance of a position and the total
// unsigned material used for phase detection.
//
// score includes kings, so it cancels to zero only when both are present.
// total excludes kings: with them the phase thresholds could never be
// crossed while both kings are on the board.
func Material(position string) (score, total int) {
	for _, piece := range board.Squares(position) {
		v, ok := PieceValue(piece)
		if !ok {
			continue
		}
		score += v
		if piece == 'K' || piece == 'k' {
			continue
		}
		if v < 0 {
			v = -v
		}
		total += v
	}
	return score, total
}

// PhaseFor classifies total non-king material into a game phase.
func PhaseFor(total int) Phase {
	switch {
	case total < EndgameThreshold:
		return Endgame
	case total < MiddlegameThreshold:
		return Middlegame
	default:
		return Opening
	}
}
