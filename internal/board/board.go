// Package board decodes the piece-placement segment of a position encoding
// into occupied squares.
//
// Squares are numbered 0..63 in the order they appear in the encoding:
// square 0 is the first square of the first rank listed (a8 in a standard
// FEN) and square 63 the last (h1).
package board

import "iter"

// NumSquares is the number of squares on a well-formed board.
const NumSquares = 64

// Segment returns the board segment of a position encoding: everything
// before the first space, or the whole string when there is none.
func Segment(position string) string {
	for i := 0; i < len(position); i++ {
		if position[i] == ' ' {
			return position[:i]
		}
	}
	return position
}

// Squares returns the occupied squares of the board segment in scan order.
// The segment is scanned byte by byte, not by rune.
//
// A '/' separates ranks and does not advance the square index. A digit
// advances the index by its value. Any other byte occupies the current
// square and is yielded, whether or not it names a known piece, so each
// byte of a multi-byte UTF-8 character takes a square of its own.
// Rank lengths and the square total are not validated.
func Squares(position string) iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		sq := 0
		for i := 0; i < len(position); i++ {
			c := position[i]
			switch {
			case c == ' ':
				return
			case c == '/':
			case c >= '0' && c <= '9':
				sq += int(c - '0')
			default:
				if !yield(sq, c) {
					return
				}
				sq++
			}
		}
	}
}

// OnBoard reports whether sq is a valid square index.
func OnBoard(sq int) bool {
	return sq >= 0 && sq < NumSquares
}

// File returns the file (column) of sq, 0 for the a-file.
func File(sq int) int {
	return sq & 0b111
}

// Rank returns the row of sq in scan order, 0 for the first rank listed.
func Rank(sq int) int {
	return sq >> 3
}

// Mirror reflects sq across the horizontal midline of the board, keeping
// its file. Mirror(Mirror(sq)) == sq for every square on the board.
func Mirror(sq int) int {
	return 56 - (sq & 0b111000) + (sq & 0b111)
}
