package engine

import "github.com/lgbarn/chessmatch-go/internal/chess"

// generateRaw fills p's caches with its movement-rule destinations, ignoring
// whether the move would expose its own king.
func generateRaw(pos *Position, p *chess.Piece) {
	switch p.Type {
	case chess.Pawn:
		generatePawn(pos, p)
	case chess.Knight:
		generateKnight(pos, p)
	case chess.Rook:
		generateSliding(pos, p, chess.Orthogonal)
	case chess.Bishop:
		generateSliding(pos, p, chess.Diagonal)
	case chess.Queen:
		generateSliding(pos, p, chess.AllDirections)
	case chess.King:
		generateKing(pos, p)
	}
}

// generateSide clears and regenerates raw caches for every piece of colour c.
func generateSide(pos *Position, c chess.Colour) {
	for _, p := range pos.PiecesInPlay(c) {
		p.ClearAllMoves()
		generateRaw(pos, p)
	}
}

func generatePawn(pos *Position, p *chess.Piece) {
	forward := chess.PawnDirection(p.Colour)
	steps := 1
	if p.IsFirstMove() {
		steps = 2
	}
	from := p.Location
	for i := 0; i < steps; i++ {
		peek := PeekDirectionFrom(pos, p, forward, from)
		if peek.State != Empty {
			break
		}
		p.AddValidMove(peek.Location)
		from = peek.Location
	}

	diagonals := [2]chess.Direction{chess.NorthEast, chess.NorthWest}
	if p.Colour == chess.Black {
		diagonals = [2]chess.Direction{chess.SouthEast, chess.SouthWest}
	}
	for _, d := range diagonals {
		if peek := PeekDirection(pos, p, d); peek.State == Capture {
			p.AddValidCapture(peek.Location)
		}
	}
}

// generateKnight composes each L from one cardinal step and one of two
// diagonal steps. The intermediate square may be occupied.
func generateKnight(pos *Position, p *chess.Piece) {
	for _, d := range chess.Orthogonal {
		first, ok := p.Location.Step(d)
		if !ok {
			continue
		}
		for _, sec := range chess.KnightSecondaries(d) {
			peek := PeekDirectionFrom(pos, p, sec, first)
			switch peek.State {
			case Empty:
				p.AddValidMove(peek.Location)
			case Capture:
				p.AddValidCapture(peek.Location)
			}
		}
	}
}

func generateSliding(pos *Position, p *chess.Piece, dirs []chess.Direction) {
	for _, d := range dirs {
		WalkDirection(pos, p, d, p.Location, 0)
	}
}

func generateKing(pos *Position, p *chess.Piece) {
	for _, d := range chess.AllDirections {
		WalkDirection(pos, p, d, p.Location, 1)
	}
}
