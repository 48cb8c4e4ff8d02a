package engine

import "github.com/lgbarn/chessmatch-go/internal/chess"

// kingExposed regenerates the raw captures of c's opponent on pos and
// reports whether any of them lands on c's king. pos is modified.
func kingExposed(pos *Position, c chess.Colour) bool {
	king := pos.King(c)
	if king == nil {
		return false
	}
	generateSide(pos, c.Opposite())
	return capturedBy(pos, c.Opposite(), king.Location)
}

// capturedBy reports whether any piece of colour by currently caches a
// capture on sq.
func capturedBy(pos *Position, by chess.Colour, sq chess.Coordinate) bool {
	for _, p := range pos.PiecesInPlay(by) {
		if p.CanCapture(sq) {
			return true
		}
	}
	return false
}

// SquareAttacked reports whether the king of colour c would be capturable
// standing on sq. The test runs on a copy with the king relocated, so empty
// squares are covered by pawn diagonals and sliding lines alike. A square
// held by one of c's own pieces reports false.
func SquareAttacked(pos *Position, c chess.Colour, sq chess.Coordinate) bool {
	king := pos.King(c)
	if king == nil {
		return false
	}
	sim := pos.Copy()
	if king.Location != sq {
		if _, err := sim.MovePiece(king.ID, sq); err != nil {
			return false
		}
	}
	return kingExposed(sim, c)
}

// InCheck reports whether c's king is attacked on pos.
func InCheck(pos *Position, c chess.Colour) bool {
	return kingExposed(pos.Copy(), c)
}
