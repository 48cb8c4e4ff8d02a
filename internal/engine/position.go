// Package engine generates legal moves and classifies king safety.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// backRank is the standard piece order from the a-file to the h-file.
var backRank = [chess.BoardSize]chess.PieceType{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// Position is an id-indexed piece store with a square index over the pieces
// still in play. Captured pieces stay in the store.
type Position struct {
	pieces  map[uuid.UUID]*chess.Piece
	order   []uuid.UUID
	squares [chess.BoardSize * chess.BoardSize]uuid.UUID
}

// NewPosition returns an empty position.
func NewPosition() *Position {
	return &Position{pieces: make(map[uuid.UUID]*chess.Piece, chess.NumPieces)}
}

// NewStandardPosition returns the 32-piece starting layout.
func NewStandardPosition() *Position {
	pos := NewPosition()
	for _, colour := range chess.Colours {
		home := chess.HomeRank(colour)
		pawnRank := home + 1
		if colour == chess.Black {
			pawnRank = home - 1
		}
		for file := 0; file < chess.BoardSize; file++ {
			back, _ := chess.NewCoordinate(file, home)
			pawn, _ := chess.NewCoordinate(file, pawnRank)
			// Squares are distinct by construction.
			_ = pos.AddPiece(chess.NewPiece(backRank[file], colour, back))
			_ = pos.AddPiece(chess.NewPiece(chess.Pawn, colour, pawn))
		}
	}
	return pos
}

// AddPiece stores p. It fails on a duplicate id or an occupied square.
func (pos *Position) AddPiece(p *chess.Piece) error {
	if _, ok := pos.pieces[p.ID]; ok {
		return fmt.Errorf("duplicate piece id %s: %w", p.ID, errors.ErrDeserialization)
	}
	if !p.IsCaptured() {
		if p.Location.IsZero() {
			return fmt.Errorf("piece %s has no location: %w", p.ID, errors.ErrDeserialization)
		}
		if occupant := pos.squares[p.Location.Index()]; occupant != uuid.Nil {
			return fmt.Errorf("square %s holds %s and %s: %w", p.Location, occupant, p.ID, errors.ErrDeserialization)
		}
		pos.squares[p.Location.Index()] = p.ID
	}
	pos.pieces[p.ID] = p
	pos.order = append(pos.order, p.ID)
	return nil
}

// Copy returns a deep copy sharing no mutable state with pos.
func (pos *Position) Copy() *Position {
	cp := &Position{
		pieces:  make(map[uuid.UUID]*chess.Piece, len(pos.pieces)),
		order:   make([]uuid.UUID, len(pos.order)),
		squares: pos.squares,
	}
	copy(cp.order, pos.order)
	for id, p := range pos.pieces {
		cp.pieces[id] = p.Clone()
	}
	return cp
}

// Piece looks up a piece by id, captured or not.
func (pos *Position) Piece(id uuid.UUID) (*chess.Piece, bool) {
	p, ok := pos.pieces[id]
	return p, ok
}

// PieceAt returns the piece in play on c.
func (pos *Position) PieceAt(c chess.Coordinate) (*chess.Piece, bool) {
	if c.IsZero() {
		return nil, false
	}
	id := pos.squares[c.Index()]
	if id == uuid.Nil {
		return nil, false
	}
	return pos.pieces[id], true
}

// Pieces returns every piece in insertion order, captured pieces included.
func (pos *Position) Pieces() []*chess.Piece {
	out := make([]*chess.Piece, 0, len(pos.order))
	for _, id := range pos.order {
		out = append(out, pos.pieces[id])
	}
	return out
}

// PiecesInPlay returns the uncaptured pieces of colour c in insertion order.
func (pos *Position) PiecesInPlay(c chess.Colour) []*chess.Piece {
	var out []*chess.Piece
	for _, id := range pos.order {
		p := pos.pieces[id]
		if !p.IsCaptured() && p.Colour == c {
			out = append(out, p)
		}
	}
	return out
}

// King returns the uncaptured king of colour c, or nil.
func (pos *Position) King(c chess.Colour) *chess.Piece {
	for _, id := range pos.order {
		p := pos.pieces[id]
		if p.Type == chess.King && p.Colour == c && !p.IsCaptured() {
			return p
		}
	}
	return nil
}

// CapturePiece marks the piece captured, frees its square and empties its
// caches.
func (pos *Position) CapturePiece(id uuid.UUID) {
	p, ok := pos.pieces[id]
	if !ok || p.IsCaptured() {
		return
	}
	if pos.squares[p.Location.Index()] == id {
		pos.squares[p.Location.Index()] = uuid.Nil
	}
	p.SetCaptured()
	p.ClearAllMoves()
}

// MovePiece relocates a piece, capturing whatever opposing piece stands on
// the destination. It returns the captured piece, or nil. Beyond refusing to
// take a piece of the mover's own colour, no legality check is made.
func (pos *Position) MovePiece(id uuid.UUID, to chess.Coordinate) (*chess.Piece, error) {
	p, ok := pos.pieces[id]
	if !ok || p.IsCaptured() {
		return nil, fmt.Errorf("piece %s is not in play: %w", id, errors.ErrNotFound)
	}
	occupant, occupied := pos.PieceAt(to)
	if occupied && occupant.ID != id && occupant.Colour == p.Colour {
		return nil, fmt.Errorf("%s %s on %s cannot take its own %s on %s: %w",
			p.Colour, p.Type, p.Location, occupant.Type, to, errors.ErrIllegalMove)
	}
	var taken *chess.Piece
	if occupied && occupant.ID != id {
		pos.CapturePiece(occupant.ID)
		taken = occupant
	}
	pos.squares[p.Location.Index()] = uuid.Nil
	pos.squares[to.Index()] = id
	p.SetMoved(to)
	return taken, nil
}

// Validate checks the structural invariants of a position: exactly one king
// in play per colour and no pieces off the board.
func (pos *Position) Validate() error {
	for _, c := range chess.Colours {
		kings := 0
		for _, p := range pos.PiecesInPlay(c) {
			if p.Type == chess.King {
				kings++
			}
			if p.Type < chess.Pawn || p.Type > chess.King {
				return fmt.Errorf("piece %s has no type: %w", p.ID, errors.ErrDeserialization)
			}
		}
		if kings != 1 {
			return fmt.Errorf("%s has %d kings in play: %w", c, kings, errors.ErrDeserialization)
		}
	}
	return nil
}

// ValidateTurn checks that the position can arise with toMove to play: the
// kings are not adjacent and the side that just moved is not in check.
func (pos *Position) ValidateTurn(toMove chess.Colour) error {
	white, black := pos.King(chess.White), pos.King(chess.Black)
	if white == nil || black == nil {
		return fmt.Errorf("a king is missing: %w", errors.ErrDeserialization)
	}
	if distance(white.Location.File(), black.Location.File()) <= 1 &&
		distance(white.Location.Rank(), black.Location.Rank()) <= 1 {
		return fmt.Errorf("kings on %s and %s are adjacent: %w", white.Location, black.Location, errors.ErrDeserialization)
	}
	if InCheck(pos, toMove.Opposite()) {
		return fmt.Errorf("%s is in check with %s to move: %w", toMove.Opposite(), toMove, errors.ErrDeserialization)
	}
	return nil
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
