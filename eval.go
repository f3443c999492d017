package staticeval

import (
	"strconv"

	"github.com/discochess/staticeval/internal/eval"
)

// Result is the evaluation of a single position.
type Result struct {
	// Position is the input as given.
	Position string

	// Score is the normalized score in (-1000, 1000).
	// Positive values favor White, negative values favor Black.
	Score int

	// Raw is the unnormalized sum of the components below, in centipawns.
	Raw int

	Material      int
	Positional    int
	PawnStructure int

	// Phase is "opening", "middlegame" or "endgame".
	Phase string
}

func newResult(position string, b eval.Breakdown) *Result {
	return &Result{
		Position:      position,
		Score:         b.Score,
		Raw:           b.Raw,
		Material:      b.Material,
		Positional:    b.Positional,
		PawnStructure: b.PawnStructure,
		Phase:         b.Phase.String(),
	}
}

// Pawns returns the normalized Score divided by 100. It tracks pawn units
// only near zero and saturates at "+9.99" or "-9.99" however large Raw is.
// Examples: "+0.80", "-1.25", "+0.00"
func (r *Result) Pawns() string {
	cp := r.Score
	sign := "+"
	if cp < 0 {
		sign = "-"
		cp = -cp
	}
	whole := cp / 100
	frac := cp % 100
	if frac < 10 {
		return sign + strconv.Itoa(whole) + ".0" + strconv.Itoa(frac)
	}
	return sign + strconv.Itoa(whole) + "." + strconv.Itoa(frac)
}

// Favors returns "white", "black" or "equal".
func (r *Result) Favors() string {
	switch {
	case r.Score > 0:
		return "white"
	case r.Score < 0:
		return "black"
	default:
		return "equal"
	}
}
