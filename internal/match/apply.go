package match

import (
	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/notation"
)

// ApplyMove moves a piece to dest, which must be in its cached legal moves
// or captures. Nothing is mutated unless the move is accepted. The returned
// result reports the opponent's king state after re-resolution.
func (m *Match) ApplyMove(pieceID uuid.UUID, dest chess.Coordinate) (chess.MoveResult, error) {
	p, err := m.validate(pieceID, dest)
	if err != nil {
		m.logger.WithFields(log.Fields{
			"ply":   m.ply,
			"piece": pieceID.String(),
			"to":    dest.String(),
		}).WithError(err).Warn("move rejected")
		return chess.MoveResult{}, err
	}

	rivals := m.rivals(p, dest)
	result := chess.MoveResult{
		From:      p.Location,
		To:        dest,
		PieceID:   p.ID,
		PieceType: p.Type,
		Colour:    p.Colour,
	}

	taken, err := m.pos.MovePiece(p.ID, dest)
	if err != nil {
		return chess.MoveResult{}, err
	}
	if taken != nil {
		result.Captured = true
		result.CapturedID = taken.ID
	}
	if p.Type == chess.King {
		for _, rec := range m.castles[m.turn] {
			if rec.KingID == p.ID && rec.KingTarget == dest {
				if _, err := m.pos.MovePiece(rec.RookID, rec.RookTarget); err != nil {
					return chess.MoveResult{}, err
				}
				result.Castle = rec.Side
				break
			}
		}
	}

	mover := m.turn
	m.ply++
	m.turn = mover.Opposite()
	m.resolve()
	result.OpponentKingState = m.kingStates[m.turn]

	now := m.now()
	if m.started.IsZero() {
		m.started = now
	}
	entry := LogEntry{
		ID:       uuid.New(),
		Player:   m.Player(mover),
		Ply:      m.ply - 1,
		Move:     result,
		Notation: notation.SAN(result, rivals),
		Time:     now,
	}
	m.log = append(m.log, entry)
	m.settleOutcome()

	m.logger.WithFields(log.Fields{
		"match":    m.id.String(),
		"ply":      entry.Ply,
		"piece":    p.Type.String(),
		"from":     result.From.String(),
		"to":       result.To.String(),
		"notation": entry.Notation,
	}).Info("move applied")

	return result, nil
}

// ApplyMoveFrom applies the move of whatever piece stands on from.
func (m *Match) ApplyMoveFrom(from, to chess.Coordinate) (chess.MoveResult, error) {
	p, ok := m.pos.PieceAt(from)
	if !ok {
		return chess.MoveResult{}, &errors.MoveError{
			Err:    errors.ErrNotFound,
			Ply:    m.ply + 1,
			From:   from.String(),
			To:     to.String(),
			Reason: "no piece on source square",
		}
	}
	return m.ApplyMove(p.ID, to)
}

func (m *Match) validate(pieceID uuid.UUID, dest chess.Coordinate) (*chess.Piece, error) {
	moveErr := func(sentinel error, reason string) error {
		return &errors.MoveError{
			Err:     sentinel,
			Ply:     m.ply + 1,
			PieceID: pieceID.String(),
			To:      dest.String(),
			Reason:  reason,
		}
	}

	p, ok := m.pos.Piece(pieceID)
	if !ok {
		return nil, moveErr(errors.ErrNotFound, "unknown piece")
	}
	if p.IsCaptured() {
		return nil, moveErr(errors.ErrIllegalMove, "piece has been captured")
	}
	if p.Colour != m.turn {
		return nil, moveErr(errors.ErrIllegalMove, p.Colour.String()+" cannot move on "+m.turn.String()+"'s turn")
	}
	if dest.IsZero() || !(p.CanMoveTo(dest) || p.CanCapture(dest)) {
		return nil, moveErr(errors.ErrIllegalMove, "destination not legal for "+p.Type.String())
	}
	if occupant, ok := m.pos.PieceAt(dest); ok && occupant.Colour == p.Colour {
		return nil, moveErr(errors.ErrIllegalMove, "destination holds a "+p.Colour.String()+" "+occupant.Type.String())
	}
	return p, nil
}

// rivals lists the squares of other pieces of p's type and colour that can
// also reach dest this ply.
func (m *Match) rivals(p *chess.Piece, dest chess.Coordinate) []chess.Coordinate {
	var out []chess.Coordinate
	for _, other := range m.pos.PiecesInPlay(p.Colour) {
		if other.ID == p.ID || other.Type != p.Type {
			continue
		}
		if other.CanMoveTo(dest) || other.CanCapture(dest) {
			out = append(out, other.Location)
		}
	}
	return out
}
