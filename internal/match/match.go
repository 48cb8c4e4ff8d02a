// Package match holds the state of one game: its pieces, turn, king states
// and move log. Moves go through ApplyMove, which re-resolves the position.
package match

import (
	"fmt"
	"slices"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/engine"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// LogEntry records one applied move.
type LogEntry struct {
	ID       uuid.UUID
	Player   uuid.UUID
	Ply      int
	Move     chess.MoveResult
	Notation string
	Time     time.Time
}

// Outcome is set once the side to move is mated or stalemated.
type Outcome struct {
	// Reason is InCheckMate or InStaleMate.
	Reason chess.KingState
	// Winner is only meaningful when Reason is InCheckMate.
	Winner chess.Colour
}

// Decisive reports whether the game has a winner.
func (o Outcome) Decisive() bool { return o.Reason == chess.InCheckMate }

// String returns the PGN result token.
func (o Outcome) String() string {
	switch {
	case !o.Decisive():
		return "1/2-1/2"
	case o.Winner == chess.White:
		return "1-0"
	default:
		return "0-1"
	}
}

// Destinations lists where a piece may go this ply.
type Destinations struct {
	Moves    []chess.Coordinate `json:"moves"`
	Captures []chess.Coordinate `json:"captures"`
}

// Match is a single game. It is not safe for concurrent use.
type Match struct {
	id    uuid.UUID
	white uuid.UUID
	black uuid.UUID

	pos        *engine.Position
	ply        int
	turn       chess.Colour
	kingStates [2]chess.KingState
	castles    [2][]chess.CastleRecord
	log        []LogEntry
	outcome    *Outcome
	started    time.Time
	completed  time.Time

	resolver *engine.Resolver
	logger   log.Interface
	now      func() time.Time
}

func newMatch(white, black uuid.UUID, opts []Option) *Match {
	m := &Match{
		id:     uuid.New(),
		white:  white,
		black:  black,
		turn:   chess.White,
		logger: &log.Logger{Handler: discard.New(), Level: log.ErrorLevel},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolver == nil {
		m.resolver = engine.NewResolver(engine.WithLogger(m.logger))
	}
	return m
}

// NewMatch starts a game from the standard layout.
func NewMatch(white, black uuid.UUID, opts ...Option) *Match {
	m := newMatch(white, black, opts)
	m.pos = engine.NewStandardPosition()
	m.resolve()
	return m
}

// NewMatchFromFEN starts a game from a FEN position.
func NewMatchFromFEN(fen string, white, black uuid.UUID, opts ...Option) (*Match, error) {
	pos, state, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	m := newMatch(white, black, opts)
	m.pos = pos
	m.ply = state.Ply()
	m.turn = state.ToMove
	m.resolve()
	m.settleOutcome()
	return m, nil
}

// resolve runs a resolution cycle and stores its king states and castles.
func (m *Match) resolve() {
	res := m.resolver.Resolve(m.pos, m.turn, m.kingStates)
	m.kingStates = res.KingStates
	m.castles[m.turn] = res.Castles
	m.castles[m.turn.Opposite()] = nil
}

// settleOutcome records a result when the side to move has no moves.
func (m *Match) settleOutcome() {
	state := m.kingStates[m.turn]
	if m.outcome != nil || !state.IsTerminal() {
		return
	}
	m.outcome = &Outcome{Reason: state, Winner: m.turn.Opposite()}
	m.completed = m.now()
}

// ID returns the match id.
func (m *Match) ID() uuid.UUID { return m.id }

// White returns the white player's id.
func (m *Match) White() uuid.UUID { return m.white }

// Black returns the black player's id.
func (m *Match) Black() uuid.UUID { return m.black }

// Player returns the id of the player with colour c.
func (m *Match) Player(c chess.Colour) uuid.UUID {
	if c == chess.White {
		return m.white
	}
	return m.black
}

// CurrentTurn returns the full move number and the colour to move.
func (m *Match) CurrentTurn() (int, chess.Colour) {
	return m.ply/2 + 1, m.turn
}

// Ply returns the number of half-moves played, counted from the start
// position's move number.
func (m *Match) Ply() int { return m.ply }

// KingStatus returns the king state of colour c from the last cycle.
func (m *Match) KingStatus(c chess.Colour) chess.KingState {
	return m.kingStates[c]
}

// Piece returns a copy of the piece with the given id.
func (m *Match) Piece(id uuid.UUID) (*chess.Piece, error) {
	p, ok := m.pos.Piece(id)
	if !ok {
		return nil, fmt.Errorf("piece %s: %w", id, errors.ErrNotFound)
	}
	return p.Clone(), nil
}

// PieceAt returns a copy of the piece in play on c.
func (m *Match) PieceAt(c chess.Coordinate) (*chess.Piece, error) {
	p, ok := m.pos.PieceAt(c)
	if !ok {
		return nil, fmt.Errorf("no piece on %s: %w", c, errors.ErrNotFound)
	}
	return p.Clone(), nil
}

// Pieces returns copies of every piece, captured ones included.
func (m *Match) Pieces() []*chess.Piece {
	pieces := m.pos.Pieces()
	out := make([]*chess.Piece, len(pieces))
	for i, p := range pieces {
		out[i] = p.Clone()
	}
	return out
}

// LegalDestinationsFor returns the cached legal moves and captures of a
// piece. Captured pieces have none.
func (m *Match) LegalDestinationsFor(id uuid.UUID) (Destinations, error) {
	p, ok := m.pos.Piece(id)
	if !ok {
		return Destinations{}, fmt.Errorf("piece %s: %w", id, errors.ErrNotFound)
	}
	return Destinations{Moves: p.ValidMoves(), Captures: p.ValidCaptures()}, nil
}

// CastleRecords returns the castles open to colour c this ply.
func (m *Match) CastleRecords(c chess.Colour) []chess.CastleRecord {
	return slices.Clone(m.castles[c])
}

// Log returns the applied moves in order.
func (m *Match) Log() []LogEntry {
	return slices.Clone(m.log)
}

// Outcome returns the result once the game has ended.
func (m *Match) Outcome() (Outcome, bool) {
	if m.outcome == nil {
		return Outcome{}, false
	}
	return *m.outcome, true
}

// Started returns when the first move was applied, or the zero time.
func (m *Match) Started() time.Time { return m.started }

// Completed returns when the outcome was decided, or the zero time.
func (m *Match) Completed() time.Time { return m.completed }

// FEN describes the current position. The halfmove clock is always zero.
func (m *Match) FEN() string {
	number, turn := m.CurrentTurn()
	return engine.PositionToFEN(m.pos, engine.FENState{ToMove: turn, MoveNumber: number})
}

// StartPly returns the ply of the first logged move.
func (m *Match) StartPly() int {
	return m.ply - len(m.log)
}
