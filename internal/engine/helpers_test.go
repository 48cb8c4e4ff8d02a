package engine

import (
	"sort"
	"testing"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

func mustFEN(t *testing.T, fen string) (*Position, FENState) {
	t.Helper()
	pos, state, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("NewPositionFromFEN(%q): %v", fen, err)
	}
	return pos, state
}

func resolveFEN(t *testing.T, fen string) (*Position, Resolution) {
	t.Helper()
	pos, state := mustFEN(t, fen)
	res := NewResolver().Resolve(pos, state.ToMove, [2]chess.KingState{})
	return pos, res
}

func mustPieceAt(t *testing.T, pos *Position, sq string) *chess.Piece {
	t.Helper()
	p, ok := pos.PieceAt(chess.MustParseCoordinate(sq))
	if !ok {
		t.Fatalf("no piece on %s", sq)
	}
	return p
}

func squares(cs []chess.Coordinate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	sort.Strings(out)
	return out
}

// legalPairs lists every legal "from"+"to" pair for colour c, sorted.
func legalPairs(pos *Position, c chess.Colour) []string {
	var out []string
	for _, p := range pos.PiecesInPlay(c) {
		for _, to := range p.ValidMoves() {
			out = append(out, p.Location.String()+to.String())
		}
		for _, to := range p.ValidCaptures() {
			out = append(out, p.Location.String()+to.String())
		}
	}
	sort.Strings(out)
	return out
}
