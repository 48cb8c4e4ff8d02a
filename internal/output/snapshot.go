package output

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

// Snapshot is a read-only view of a match for clients: the pieces in play
// with their legal destinations, the king states and whose turn it is.
type Snapshot struct {
	ID         uuid.UUID            `json:"id"`
	White      uuid.UUID            `json:"white"`
	Black      uuid.UUID            `json:"black"`
	MoveNumber int                  `json:"move_number"`
	Ply        int                  `json:"ply"`
	Turn       chess.Colour         `json:"turn"`
	FEN        string               `json:"fen"`
	KingStates JSONKingStates       `json:"king_states"`
	Pieces     []SnapshotPiece      `json:"pieces"`
	Castles    []chess.CastleRecord `json:"castles"`
	Moves      []string             `json:"moves"`
	Outcome    *JSONOutcome         `json:"outcome,omitempty"`
}

// SnapshotPiece is one piece in play.
type SnapshotPiece struct {
	ID       uuid.UUID          `json:"id"`
	Type     chess.PieceType    `json:"type"`
	Colour   chess.Colour       `json:"colour"`
	Location chess.Coordinate   `json:"location"`
	Moves    []chess.Coordinate `json:"moves"`
	Captures []chess.Coordinate `json:"captures"`
}

// MatchSnapshot builds a snapshot of m.
func MatchSnapshot(m *match.Match) Snapshot {
	number, turn := m.CurrentTurn()
	snap := Snapshot{
		ID:         m.ID(),
		White:      m.White(),
		Black:      m.Black(),
		MoveNumber: number,
		Ply:        m.Ply(),
		Turn:       turn,
		FEN:        m.FEN(),
		KingStates: JSONKingStates{
			White: m.KingStatus(chess.White),
			Black: m.KingStatus(chess.Black),
		},
		Pieces:  []SnapshotPiece{},
		Castles: nonNil(m.CastleRecords(turn)),
		Moves:   []string{},
	}
	for _, p := range m.Pieces() {
		if p.IsCaptured() {
			continue
		}
		snap.Pieces = append(snap.Pieces, SnapshotPiece{
			ID:       p.ID,
			Type:     p.Type,
			Colour:   p.Colour,
			Location: p.Location,
			Moves:    nonNilSquares(p.ValidMoves()),
			Captures: nonNilSquares(p.ValidCaptures()),
		})
	}
	for _, e := range m.Log() {
		snap.Moves = append(snap.Moves, e.Notation)
	}
	if o, ok := m.Outcome(); ok {
		snap.Outcome = outcomeToJSON(&o)
	}
	return snap
}

// SnapshotJSON encodes a snapshot of m.
func SnapshotJSON(m *match.Match) ([]byte, error) {
	return json.Marshal(MatchSnapshot(m))
}

func nonNilSquares(sq []chess.Coordinate) []chess.Coordinate {
	if sq == nil {
		return []chess.Coordinate{}
	}
	return sq
}
