package engine

import "github.com/lgbarn/chessmatch-go/internal/chess"

// LocationState classifies a square relative to a moving piece.
type LocationState int

const (
	// Empty squares can be moved to.
	Empty LocationState = iota
	// Capture squares hold an opposing piece.
	Capture
	// Blocked squares hold a piece of the mover's colour.
	Blocked
	// OutOfBounds means the step left the board.
	OutOfBounds
)

// String returns the state name.
func (s LocationState) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Capture:
		return "Capture"
	case Blocked:
		return "Blocked"
	default:
		return "OutOfBounds"
	}
}

// PeekResult is the outcome of looking one step in a direction.
type PeekResult struct {
	Location chess.Coordinate
	State    LocationState
}

// PeekLocation classifies loc for a piece of the given colour.
func PeekLocation(pos *Position, colour chess.Colour, loc chess.Coordinate) LocationState {
	occupant, ok := pos.PieceAt(loc)
	switch {
	case !ok:
		return Empty
	case occupant.Colour != colour:
		return Capture
	default:
		return Blocked
	}
}

// PeekDirection looks one step from the piece's own square.
func PeekDirection(pos *Position, p *chess.Piece, dir chess.Direction) PeekResult {
	return PeekDirectionFrom(pos, p, dir, p.Location)
}

// PeekDirectionFrom looks one step from an arbitrary square, classifying the
// target for p's colour.
func PeekDirectionFrom(pos *Position, p *chess.Piece, dir chess.Direction, from chess.Coordinate) PeekResult {
	next, ok := from.Step(dir)
	if !ok {
		return PeekResult{State: OutOfBounds}
	}
	return PeekResult{Location: next, State: PeekLocation(pos, p.Colour, next)}
}

// WalkDirection steps from start, caching Empty squares as moves and the
// first Capture square as a capture. It stops at a capture, a blocked square
// or the edge. maxSteps of zero means no limit.
func WalkDirection(pos *Position, p *chess.Piece, dir chess.Direction, start chess.Coordinate, maxSteps int) {
	from := start
	for step := 0; maxSteps == 0 || step < maxSteps; step++ {
		peek := PeekDirectionFrom(pos, p, dir, from)
		switch peek.State {
		case Empty:
			p.AddValidMove(peek.Location)
			from = peek.Location
		case Capture:
			p.AddValidCapture(peek.Location)
			return
		default:
			return
		}
	}
}
