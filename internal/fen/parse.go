// Package fen provides FEN (Forsyth-Edwards Notation) utilities.
//
// The evaluator itself never validates its input; these helpers back the
// opt-in strict mode and the colour-reflection used by tests and the CLI.
package fen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFEN indicates the FEN string is malformed.
var ErrInvalidFEN = errors.New("fen: invalid position")

// Validate checks that the piece placement of fen has eight ranks of eight
// squares each and uses only known piece letters. Fields after the
// placement are not inspected.
func Validate(fen string) error {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return ErrInvalidFEN
	}
	return validatePiecePlacement(parts[0])
}

// Normalize returns a normalized FEN string suitable for lookups.
// It extracts only the position, side to move, castling rights, and en passant square,
// ignoring the halfmove clock and fullmove number.
func Normalize(fen string) (string, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return "", ErrInvalidFEN
	}

	if err := validatePiecePlacement(parts[0]); err != nil {
		return "", err
	}

	if parts[1] != "w" && parts[1] != "b" {
		return "", fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	return strings.Join(parts[:4], " "), nil
}

// SideToMove returns "w" or "b" from a FEN string.
func SideToMove(fen string) (string, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return "", ErrInvalidFEN
	}
	if parts[1] != "w" && parts[1] != "b" {
		return "", ErrInvalidFEN
	}
	return parts[1], nil
}

// Reflect returns the colour-flipped position: ranks in reverse order,
// piece letters with swapped case, the other side to move, swapped
// castling rights and the en passant square moved to the mirrored rank.
// Halfmove and fullmove counters are kept. Reflect never fails; fields it
// does not recognise are copied unchanged.
func Reflect(fen string) string {
	placement, rest, hasRest := strings.Cut(fen, " ")

	ranks := strings.Split(placement, "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	reflected := swapCase(strings.Join(ranks, "/"))
	if !hasRest {
		return reflected
	}

	fields := strings.Split(rest, " ")
	if len(fields) > 0 {
		switch fields[0] {
		case "w":
			fields[0] = "b"
		case "b":
			fields[0] = "w"
		}
	}
	if len(fields) > 1 && fields[1] != "-" {
		fields[1] = reflectCastling(fields[1])
	}
	if len(fields) > 2 && len(fields[2]) == 2 {
		switch fields[2][1] {
		case '3':
			fields[2] = fields[2][:1] + "6"
		case '6':
			fields[2] = fields[2][:1] + "3"
		}
	}

	return reflected + " " + strings.Join(fields, " ")
}

// reflectCastling swaps castling rights between colours, keeping the
// conventional KQkq order when only those letters are used.
func reflectCastling(rights string) string {
	swapped := swapCase(rights)
	if strings.Trim(swapped, "KQkq") != "" {
		return swapped
	}
	var b strings.Builder
	for _, c := range "KQkq" {
		if strings.ContainsRune(swapped, c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func swapCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// validatePiecePlacement validates the piece placement part of a FEN.
func validatePiecePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(ranks))
	}

	for i, rank := range ranks {
		squares := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				squares += int(ch - '0')
			case ch == 'P', ch == 'N', ch == 'B', ch == 'R', ch == 'Q', ch == 'K',
				ch == 'p', ch == 'n', ch == 'b', ch == 'r', ch == 'q', ch == 'k':
				squares++
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidFEN, ch, i+1)
			}
		}
		if squares != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, i+1, squares)
		}
	}

	return nil
}
