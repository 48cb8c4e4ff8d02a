package chess

import (
	"slices"

	"github.com/google/uuid"
)

// Piece is a single chess piece. Its move and capture caches are only valid
// for the resolution cycle that filled them.
type Piece struct {
	ID       uuid.UUID
	Type     PieceType
	Colour   Colour
	Location Coordinate

	captured  bool
	firstMove bool
	promoted  bool

	moves    []Coordinate
	captures []Coordinate
}

// NewPiece creates an uncaptured piece on its first move with a fresh id.
func NewPiece(pt PieceType, c Colour, loc Coordinate) *Piece {
	return &Piece{
		ID:        uuid.New(),
		Type:      pt,
		Colour:    c,
		Location:  loc,
		firstMove: true,
	}
}

// SetMoved relocates the piece and clears its first-move flag.
func (p *Piece) SetMoved(loc Coordinate) {
	p.Location = loc
	p.firstMove = false
}

// SetCaptured marks the piece as captured. Calling it twice is harmless.
func (p *Piece) SetCaptured() {
	p.captured = true
}

// SetFirstMove overrides the first-move flag. Used when building positions
// from FEN, where castling rights decide it.
func (p *Piece) SetFirstMove(first bool) {
	p.firstMove = first
}

// IsCaptured reports whether the piece has been taken.
func (p *Piece) IsCaptured() bool { return p.captured }

// IsFirstMove reports whether the piece has not moved yet.
func (p *Piece) IsFirstMove() bool { return p.firstMove }

// IsPromoted reports the promoted flag. Nothing in the engine sets it.
func (p *Piece) IsPromoted() bool { return p.promoted }

// AddValidMove appends loc to the move cache unless already present.
func (p *Piece) AddValidMove(loc Coordinate) {
	if !slices.Contains(p.moves, loc) {
		p.moves = append(p.moves, loc)
	}
}

// AddValidCapture appends loc to the capture cache unless already present.
func (p *Piece) AddValidCapture(loc Coordinate) {
	if !slices.Contains(p.captures, loc) {
		p.captures = append(p.captures, loc)
	}
}

// RemoveValidMove drops loc from the move cache.
func (p *Piece) RemoveValidMove(loc Coordinate) {
	p.moves = slices.DeleteFunc(p.moves, func(c Coordinate) bool { return c == loc })
}

// RemoveValidCapture drops loc from the capture cache.
func (p *Piece) RemoveValidCapture(loc Coordinate) {
	p.captures = slices.DeleteFunc(p.captures, func(c Coordinate) bool { return c == loc })
}

// ClearAllMoves empties both caches.
func (p *Piece) ClearAllMoves() {
	p.moves = p.moves[:0]
	p.captures = p.captures[:0]
}

// ValidMoves returns a copy of the move cache.
func (p *Piece) ValidMoves() []Coordinate { return slices.Clone(p.moves) }

// ValidCaptures returns a copy of the capture cache.
func (p *Piece) ValidCaptures() []Coordinate { return slices.Clone(p.captures) }

// CanMoveTo reports whether loc is in the move cache.
func (p *Piece) CanMoveTo(loc Coordinate) bool { return slices.Contains(p.moves, loc) }

// CanCapture reports whether loc is in the capture cache.
func (p *Piece) CanCapture(loc Coordinate) bool { return slices.Contains(p.captures, loc) }

// HasValidMoves reports whether either cache is non-empty.
func (p *Piece) HasValidMoves() bool {
	return len(p.moves) > 0 || len(p.captures) > 0
}

// Clone returns a deep copy sharing no slices with p.
func (p *Piece) Clone() *Piece {
	cp := *p
	cp.moves = slices.Clone(p.moves)
	cp.captures = slices.Clone(p.captures)
	return &cp
}

// PieceState is the persisted form of a piece, caches included.
type PieceState struct {
	ID        uuid.UUID    `json:"id"`
	Type      PieceType    `json:"type"`
	Colour    Colour       `json:"colour"`
	Location  Coordinate   `json:"location"`
	Captured  bool         `json:"captured"`
	FirstMove bool         `json:"first_move"`
	Promoted  bool         `json:"promoted"`
	Moves     []Coordinate `json:"moves"`
	Captures  []Coordinate `json:"captures"`
}

// State snapshots the piece for persistence.
func (p *Piece) State() PieceState {
	moves := slices.Clone(p.moves)
	if moves == nil {
		moves = []Coordinate{}
	}
	captures := slices.Clone(p.captures)
	if captures == nil {
		captures = []Coordinate{}
	}
	return PieceState{
		ID:        p.ID,
		Type:      p.Type,
		Colour:    p.Colour,
		Location:  p.Location,
		Captured:  p.captured,
		FirstMove: p.firstMove,
		Promoted:  p.promoted,
		Moves:     moves,
		Captures:  captures,
	}
}

// RestorePiece rebuilds a piece from its persisted state.
func RestorePiece(s PieceState) *Piece {
	p := &Piece{
		ID:        s.ID,
		Type:      s.Type,
		Colour:    s.Colour,
		Location:  s.Location,
		captured:  s.Captured,
		firstMove: s.FirstMove,
		promoted:  s.Promoted,
	}
	for _, loc := range s.Moves {
		p.AddValidMove(loc)
	}
	for _, loc := range s.Captures {
		p.AddValidCapture(loc)
	}
	return p
}
