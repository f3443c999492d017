// Package eval implements the static evaluation of a chess position:
// material, phase-dependent piece-square tables and doubled pawns, squashed
// into a bounded score.
//
// All functions are pure and safe for concurrent use. Malformed input is
// never rejected: bytes that do not name a piece are ignored for scoring
// but still occupy a square.
package eval

// Breakdown holds every term of an evaluation, all from White's point of
// view.
type Breakdown struct {
	// Material is the signed sum of piece values, kings included.
	Material int

	// TotalMaterial is the unsigned non-king material that picked Phase.
	TotalMaterial int

	Phase Phase

	// Positional is the piece-square table adjustment.
	Positional int

	// PawnStructure is the doubled pawn adjustment.
	PawnStructure int

	// Raw is Material + Positional + PawnStructure.
	Raw int

	// Score is Raw passed through Normalize.
	Score int
}

// Evaluate computes the full breakdown for a position encoding.
func Evaluate(position string) Breakdown {
	material, total := Material(position)
	phase := PhaseFor(total)
	positional := Positional(position, phase)
	pawns := PawnStructure(position)

	raw := material + positional + pawns
	return Breakdown{
		Material:      material,
		TotalMaterial: total,
		Phase:         phase,
		Positional:    positional,
		PawnStructure: pawns,
		Raw:           raw,
		Score:         Normalize(raw),
	}
}
