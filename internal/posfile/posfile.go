// Package posfile reads line-oriented position files.
//
// Each non-empty line that does not start with '#' holds one position,
// either as a plain FEN or EPD line or as a record of the Lichess
// evaluation database:
//
//	{"fen":"...","evals":[{"pvs":[{"cp":31,"line":"e2e4 e7e5"}],"knodes":1024,"depth":30}]}
package posfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedLine indicates a JSON line that could not be decoded.
var ErrMalformedLine = errors.New("posfile: malformed line")

// maxLineSize bounds a single line; Lichess records with many PVs can be
// several kilobytes.
const maxLineSize = 1024 * 1024

// Record is one position read from a file.
type Record struct {
	// Line is the 1-based line number in the file.
	Line int

	// FEN is the position encoding.
	FEN string

	// CP is the engine evaluation in centipawns from White's point of
	// view, when the line carried one.
	CP *int

	// Mate is the engine's forced mate distance, when the line carried one.
	Mate *int

	// Depth is the engine search depth, 0 for plain lines.
	Depth int
}

// HasEngineScore reports whether the record carries a centipawn score.
func (r Record) HasEngineScore() bool {
	return r.CP != nil
}

// lichessRecord matches the Lichess evaluation database format.
type lichessRecord struct {
	FEN   string `json:"fen"`
	Evals []struct {
		PVs []struct {
			CP   *int   `json:"cp,omitempty"`
			Mate *int   `json:"mate,omitempty"`
			Line string `json:"line"`
		} `json:"pvs"`
		Knodes int `json:"knodes"`
		Depth  int `json:"depth"`
	} `json:"evals"`
}

// ParseLine parses a single non-blank line.
// For JSON records the first PV of the first evaluation is used.
func ParseLine(line []byte) (Record, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return Record{FEN: string(line)}, nil
	}

	var lr lichessRecord
	if err := json.Unmarshal(line, &lr); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if lr.FEN == "" {
		return Record{}, fmt.Errorf("%w: missing fen", ErrMalformedLine)
	}

	rec := Record{FEN: lr.FEN}
	if len(lr.Evals) > 0 {
		best := lr.Evals[0]
		rec.Depth = best.Depth
		if len(best.PVs) > 0 {
			rec.CP = best.PVs[0].CP
			rec.Mate = best.PVs[0].Mate
		}
	}
	return rec, nil
}

// Scan reads r line by line and calls fn for every position. Blank lines
// and lines starting with '#' are skipped.
//
// A malformed line is passed to onError, which decides whether to keep
// going (return nil) or stop (return the error). A nil onError stops at the
// first malformed line. An error from fn stops the scan and is returned.
func Scan(r io.Reader, fn func(Record) error, onError func(line int, err error) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Bytes()
		trimmed := bytes.TrimSpace(text)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}

		rec, err := ParseLine(trimmed)
		if err != nil {
			err = fmt.Errorf("line %d: %w", lineNo, err)
			if onError == nil {
				return err
			}
			if err := onError(lineNo, err); err != nil {
				return err
			}
			continue
		}
		rec.Line = lineNo

		if err := fn(rec); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}
	return nil
}

// ReadAll collects every position of r, skipping malformed lines.
// It returns how many lines were skipped.
func ReadAll(r io.Reader) ([]Record, int, error) {
	var records []Record
	skipped := 0
	err := Scan(r,
		func(rec Record) error {
			records = append(records, rec)
			return nil
		},
		func(int, error) error {
			skipped++
			return nil
		},
	)
	return records, skipped, err
}

// FENs returns the FEN of every record.
func FENs(records []Record) []string {
	fens := make([]string, len(records))
	for i, r := range records {
		fens[i] = r.FEN
	}
	return fens
}
