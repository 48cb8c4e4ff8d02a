package engine

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

// Resolution is the output of one resolution cycle.
type Resolution struct {
	// KingStates is indexed by chess.Colour.
	KingStates [2]chess.KingState
	// Castles holds the castles available to the side to move this cycle.
	Castles []chess.CastleRecord
}

// KingState returns the state for colour c.
func (r Resolution) KingState(c chess.Colour) chess.KingState {
	return r.KingStates[c]
}

// Resolver recomputes every piece's legal destinations for a position.
type Resolver struct {
	logger log.Interface
	cycles int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for cycle diagnostics.
func WithLogger(l log.Interface) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver. Without options it logs nothing.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: &log.Logger{Handler: discard.New(), Level: log.ErrorLevel}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cycles returns how many resolution cycles have run.
func (r *Resolver) Cycles() int { return r.cycles }

type candidate struct {
	piece   uuid.UUID
	to      chess.Coordinate
	capture bool
}

// Resolve runs one full cycle on pos: raw generation, self-check filtering,
// castling for toMove, and king classification. prior holds the king states
// from the previous cycle. The caches of every piece in play are replaced.
func (r *Resolver) Resolve(pos *Position, toMove chess.Colour, prior [2]chess.KingState) Resolution {
	r.cycles++

	for _, c := range chess.Colours {
		generateSide(pos, c)
	}

	var attacked [2]bool
	for _, c := range chess.Colours {
		if king := pos.King(c); king != nil {
			attacked[c] = capturedBy(pos, c.Opposite(), king.Location)
		}
	}

	var raw []candidate
	for _, c := range chess.Colours {
		for _, p := range pos.PiecesInPlay(c) {
			for _, to := range p.ValidMoves() {
				raw = append(raw, candidate{piece: p.ID, to: to})
			}
			for _, to := range p.ValidCaptures() {
				raw = append(raw, candidate{piece: p.ID, to: to, capture: true})
			}
		}
	}

	var legal []candidate
	for _, cand := range raw {
		p, _ := pos.Piece(cand.piece)
		sim := pos.Copy()
		if _, err := sim.MovePiece(cand.piece, cand.to); err != nil {
			continue
		}
		if !kingExposed(sim, p.Colour) {
			legal = append(legal, cand)
		}
	}

	for _, c := range chess.Colours {
		for _, p := range pos.PiecesInPlay(c) {
			p.ClearAllMoves()
		}
	}
	for _, cand := range legal {
		p, _ := pos.Piece(cand.piece)
		if cand.capture {
			p.AddValidCapture(cand.to)
		} else {
			p.AddValidMove(cand.to)
		}
	}

	var res Resolution
	if !attacked[toMove] {
		res.Castles = r.castles(pos, toMove)
	}

	for _, c := range chess.Colours {
		res.KingStates[c] = classify(pos, c, c == toMove, attacked[c], prior[c])
	}

	r.logger.WithFields(log.Fields{
		"cycle":      r.cycles,
		"to_move":    toMove.String(),
		"candidates": len(raw),
		"legal":      len(legal),
		"castles":    len(res.Castles),
		"white":      res.KingStates[chess.White].String(),
		"black":      res.KingStates[chess.Black].String(),
	}).Debug("resolved position")

	return res
}

// castles finds the castles open to colour c and adds the king's two
// squares toward each rook to its move cache.
func (r *Resolver) castles(pos *Position, c chess.Colour) []chess.CastleRecord {
	king := pos.King(c)
	if king == nil || !king.IsFirstMove() {
		return nil
	}

	var records []chess.CastleRecord
	for _, rook := range pos.PiecesInPlay(c) {
		if rook.Type != chess.Rook || !rook.IsFirstMove() || rook.Location.Rank() != king.Location.Rank() {
			continue
		}
		dir := chess.West
		side := chess.QueenSide
		if rook.Location.File() > king.Location.File() {
			dir = chess.East
			side = chess.KingSide
		}

		between := squaresBetween(king.Location, rook.Location, dir)
		if len(between) < 2 {
			continue
		}
		empty := true
		for _, sq := range between {
			if PeekLocation(pos, c, sq) != Empty {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		if SquareAttacked(pos, c, between[0]) || SquareAttacked(pos, c, between[1]) {
			continue
		}

		king.AddValidMove(between[0])
		king.AddValidMove(between[1])
		records = append(records, chess.CastleRecord{
			KingID:     king.ID,
			KingTarget: between[1],
			RookID:     rook.ID,
			RookTarget: between[0],
			Side:       side,
		})
	}
	return records
}

// squaresBetween lists the squares strictly between from and to along dir,
// nearest first.
func squaresBetween(from, to chess.Coordinate, dir chess.Direction) []chess.Coordinate {
	var out []chess.Coordinate
	sq, ok := from.Step(dir)
	for ok && sq != to {
		out = append(out, sq)
		sq, ok = sq.Step(dir)
	}
	return out
}

// classify derives a king state. Only the side to move can be mated or
// stalemated.
func classify(pos *Position, c chess.Colour, toMove, attacked bool, prior chess.KingState) chess.KingState {
	if toMove && !sideHasMoves(pos, c) {
		if attacked {
			return chess.InCheckMate
		}
		return chess.InStaleMate
	}
	switch {
	case attacked:
		return chess.InCheck
	case prior == chess.InCheck:
		return chess.NotInCheckMate
	default:
		return chess.NotInCheck
	}
}

func sideHasMoves(pos *Position, c chess.Colour) bool {
	for _, p := range pos.PiecesInPlay(c) {
		if p.HasValidMoves() {
			return true
		}
	}
	return false
}
