package chess

import "github.com/google/uuid"

// CastleRecord describes a castle available to a king for the current
// resolution cycle only.
type CastleRecord struct {
	KingID     uuid.UUID  `json:"king_id"`
	KingTarget Coordinate `json:"king_target"`
	RookID     uuid.UUID  `json:"rook_id"`
	RookTarget Coordinate `json:"rook_target"`
	Side       CastleSide `json:"side"`
}

// MoveResult is what applying one move produced.
type MoveResult struct {
	// Source and destination squares of the acting piece.
	From Coordinate `json:"from"`
	To   Coordinate `json:"to"`

	PieceID   uuid.UUID `json:"piece_id"`
	PieceType PieceType `json:"piece_type"`
	Colour    Colour    `json:"colour"`

	// Captured is set when an opposing piece was taken on To.
	Captured   bool      `json:"captured"`
	CapturedID uuid.UUID `json:"captured_id"`

	Castle CastleSide `json:"castle"`

	// OpponentKingState is the other side's king status after the move.
	OpponentKingState KingState `json:"opponent_king_state"`
}

// IsCheck reports whether the move left the opponent in check or mate.
func (m MoveResult) IsCheck() bool {
	return m.OpponentKingState == InCheck || m.OpponentKingState == InCheckMate
}

// IsMate reports whether the move delivered checkmate.
func (m MoveResult) IsMate() bool {
	return m.OpponentKingState == InCheckMate
}
