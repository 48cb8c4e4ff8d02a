package match

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/engine"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// State is everything needed to rebuild a match exactly, caches included.
type State struct {
	ID         uuid.UUID
	White      uuid.UUID
	Black      uuid.UUID
	Ply        int
	Turn       chess.Colour
	KingStates [2]chess.KingState
	Castles    [2][]chess.CastleRecord
	Pieces     []chess.PieceState
	Log        []LogEntry
	Outcome    *Outcome
	Started    time.Time
	Completed  time.Time
}

// State snapshots the match.
func (m *Match) State() State {
	s := State{
		ID:         m.id,
		White:      m.white,
		Black:      m.black,
		Ply:        m.ply,
		Turn:       m.turn,
		KingStates: m.kingStates,
		Log:        slices.Clone(m.log),
		Started:    m.started,
		Completed:  m.completed,
	}
	for _, c := range chess.Colours {
		s.Castles[c] = slices.Clone(m.castles[c])
	}
	for _, p := range m.pos.Pieces() {
		s.Pieces = append(s.Pieces, p.State())
	}
	if m.outcome != nil {
		o := *m.outcome
		s.Outcome = &o
	}
	return s
}

// Restore rebuilds a match from a snapshot and runs a fresh resolution cycle
// over it. The snapshot must be structurally sound and its cached
// destinations, king states and castle records must equal the recomputed
// ones; failures wrap ErrDeserialization.
func Restore(s State, opts ...Option) (*Match, error) {
	if s.Turn != chess.White && s.Turn != chess.Black {
		return nil, fmt.Errorf("turn %d: %w", int(s.Turn), errors.ErrDeserialization)
	}
	if s.Ply < 0 {
		return nil, fmt.Errorf("negative ply %d: %w", s.Ply, errors.ErrDeserialization)
	}
	if (s.Ply%2 == 0) != (s.Turn == chess.White) {
		return nil, fmt.Errorf("ply %d does not match %s to move: %w", s.Ply, s.Turn, errors.ErrDeserialization)
	}
	if len(s.Log) > s.Ply {
		return nil, fmt.Errorf("%d log entries exceed ply %d: %w", len(s.Log), s.Ply, errors.ErrDeserialization)
	}
	for _, c := range chess.Colours {
		if ks := s.KingStates[c]; ks < chess.NotInCheck || ks > chess.NotInCheckMate {
			return nil, fmt.Errorf("%s king state %d: %w", c, int(ks), errors.ErrDeserialization)
		}
	}

	pos := engine.NewPosition()
	for _, ps := range s.Pieces {
		if ps.ID == uuid.Nil {
			return nil, fmt.Errorf("piece without id: %w", errors.ErrDeserialization)
		}
		if err := pos.AddPiece(chess.RestorePiece(ps)); err != nil {
			return nil, err
		}
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	if err := pos.ValidateTurn(s.Turn); err != nil {
		return nil, err
	}

	for _, c := range chess.Colours {
		for _, rec := range s.Castles[c] {
			king, okKing := pos.Piece(rec.KingID)
			rook, okRook := pos.Piece(rec.RookID)
			if !okKing || !okRook || king.Type != chess.King || rook.Type != chess.Rook ||
				king.Colour != c || rook.Colour != c {
				return nil, fmt.Errorf("castle record for %s names unknown pieces: %w", c, errors.ErrDeserialization)
			}
		}
	}

	m := newMatch(s.White, s.Black, opts)
	m.id = s.ID
	m.pos = pos
	m.ply = s.Ply
	m.turn = s.Turn
	m.kingStates = s.KingStates
	for _, c := range chess.Colours {
		m.castles[c] = slices.Clone(s.Castles[c])
	}
	m.log = slices.Clone(s.Log)
	if s.Outcome != nil {
		o := *s.Outcome
		m.outcome = &o
	}
	m.started = s.Started
	m.completed = s.Completed

	if err := m.reresolve(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrDeserialization)
	}
	return m, nil
}

// Reresolve discards the cached destinations and runs a fresh resolution
// cycle. It reports whether the recomputed legal sets, king states and castle
// records agree with the cached ones.
func (m *Match) Reresolve() bool {
	return m.reresolve() == nil
}

// reresolve runs a fresh cycle and describes the first disagreement with the
// caches it replaced.
func (m *Match) reresolve() error {
	before := m.State()
	// NotInCheckMate only follows InCheck, so that prior reproduces it.
	for _, c := range chess.Colours {
		if m.kingStates[c] == chess.NotInCheckMate {
			m.kingStates[c] = chess.InCheck
		}
	}
	m.resolve()
	after := m.State()

	for _, c := range chess.Colours {
		if before.KingStates[c] != after.KingStates[c] {
			return fmt.Errorf("%s king is %s, recomputed %s", c, before.KingStates[c], after.KingStates[c])
		}
		if !sameCastles(before.Castles[c], after.Castles[c]) {
			return fmt.Errorf("%s castle records %v, recomputed %v", c, before.Castles[c], after.Castles[c])
		}
	}
	for i, p := range before.Pieces {
		q := after.Pieces[i]
		if !sameSquares(p.Moves, q.Moves) || !sameSquares(p.Captures, q.Captures) {
			return fmt.Errorf("%s %s on %s has destinations %v %v, recomputed %v %v",
				p.Colour, p.Type, p.Location, p.Moves, p.Captures, q.Moves, q.Captures)
		}
	}
	return nil
}

// sameCastles compares records field by field, ignoring order.
func sameCastles(a, b []chess.CastleRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for _, rec := range a {
		if !slices.Contains(b, rec) {
			return false
		}
	}
	for _, rec := range b {
		if !slices.Contains(a, rec) {
			return false
		}
	}
	return true
}

func sameSquares(a, b []chess.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	byIndex := func(x, y chess.Coordinate) int { return x.Index() - y.Index() }
	a, b = slices.Clone(a), slices.Clone(b)
	slices.SortFunc(a, byIndex)
	slices.SortFunc(b, byIndex)
	return slices.Equal(a, b)
}
