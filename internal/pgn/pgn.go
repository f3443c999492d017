// Package pgn replays PGN games into the sequence of positions they pass
// through.
package pgn

import (
	"fmt"
	"io"

	"github.com/notnil/chess"
)

// Game is a replayed game.
type Game struct {
	White  string
	Black  string
	Result string

	// Positions holds the FEN of every position, starting with the initial
	// one; Positions[i+1] is the position after Moves[i].
	Positions []string

	// Moves holds each move in UCI notation.
	Moves []string
}

// Plies returns the number of half-moves played.
func (g Game) Plies() int {
	return len(g.Moves)
}

// ReadGames replays up to limit games from r. A limit of zero or less
// reads every game. Text that holds neither tags nor moves, such as
// trailing blank lines, is not a game.
func ReadGames(r io.Reader, limit int) ([]Game, error) {
	scanner := chess.NewScanner(r)

	var games []Game
	for scanner.Scan() {
		if limit > 0 && len(games) >= limit {
			break
		}
		g := scanner.Next()
		if isEmpty(g) {
			continue
		}
		games = append(games, fromChess(g))
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return games, fmt.Errorf("reading game %d: %w", len(games)+1, err)
	}
	return games, nil
}

func fromChess(g *chess.Game) Game {
	out := Game{
		White:  tag(g, "White"),
		Black:  tag(g, "Black"),
		Result: tag(g, "Result"),
	}
	if out.Result == "" {
		out.Result = g.Outcome().String()
	}

	for _, pos := range g.Positions() {
		out.Positions = append(out.Positions, pos.String())
	}
	for _, m := range g.Moves() {
		out.Moves = append(out.Moves, m.String())
	}
	return out
}

// isEmpty reports whether g was scanned from input without a game in it.
func isEmpty(g *chess.Game) bool {
	return g == nil || (len(g.Moves()) == 0 && len(g.TagPairs()) == 0)
}

func tag(g *chess.Game, key string) string {
	if tp := g.GetTagPair(key); tp != nil {
		return tp.Value
	}
	return ""
}
