package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

// FixedClock returns a clock that starts at a fixed UTC instant and advances
// one second per call.
func FixedClock() func() time.Time {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// MustNewMatch starts a standard match with fresh player ids and a fixed clock.
func MustNewMatch(t *testing.T, opts ...match.Option) *match.Match {
	t.Helper()
	opts = append([]match.Option{match.WithClock(FixedClock())}, opts...)
	return match.NewMatch(uuid.New(), uuid.New(), opts...)
}

// MustFENMatch starts a match from a FEN position. It calls t.Fatal on error.
func MustFENMatch(t *testing.T, fen string, opts ...match.Option) *match.Match {
	t.Helper()
	opts = append([]match.Option{match.WithClock(FixedClock())}, opts...)
	m, err := match.NewMatchFromFEN(fen, uuid.New(), uuid.New(), opts...)
	if err != nil {
		t.Fatalf("NewMatchFromFEN(%q): %v", fen, err)
	}
	return m
}

// MustCoord parses an algebraic square. It calls t.Fatal on error.
func MustCoord(t *testing.T, s string) chess.Coordinate {
	t.Helper()
	c, err := chess.ParseCoordinate(s)
	if err != nil {
		t.Fatalf("ParseCoordinate(%q): %v", s, err)
	}
	return c
}

// MustPlay applies coordinate moves such as "e2e4" or "e2-e4" in order and
// returns their results. It calls t.Fatal on the first rejected move.
func MustPlay(t *testing.T, m *match.Match, moves ...string) []chess.MoveResult {
	t.Helper()
	var results []chess.MoveResult
	for _, mv := range moves {
		mv = strings.ReplaceAll(mv, "-", "")
		if len(mv) != 4 {
			t.Fatalf("malformed move %q", mv)
		}
		res, err := m.ApplyMoveFrom(MustCoord(t, mv[:2]), MustCoord(t, mv[2:]))
		if err != nil {
			t.Fatalf("move %s: %v", mv, err)
		}
		results = append(results, res)
	}
	return results
}
