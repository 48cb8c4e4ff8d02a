package engine

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

// oraclePairs lists dragontoothmg's legal moves as "from"+"to" pairs.
// Promotion choices collapse into one pair.
func oraclePairs(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	seen := map[string]bool{}
	for _, m := range board.GenerateLegalMoves() {
		seen[m.String()[:4]] = true
	}
	out := make([]string, 0, len(seen))
	for pair := range seen {
		out = append(out, pair)
	}
	sort.Strings(out)
	return out
}

var oracleFENs = []string{
	InitialFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"r3k2r/8/b7/8/8/8/8/R3K2R w KQkq - 0 1",
	"4k3/8/8/8/4r3/8/8/R3K2R w KQ - 0 1",
	"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
}

func TestResolverMatchesOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			pos, state := mustFEN(t, fen)
			NewResolver().Resolve(pos, state.ToMove, [2]chess.KingState{})
			if diff := cmp.Diff(oraclePairs(fen), legalPairs(pos, state.ToMove), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("legal moves mismatch (-oracle +resolver):\n%s", diff)
			}
		})
	}
}

// TestRandomPlayoutsMatchOracle plays seeded random games and compares the
// resolver with the oracle after every ply. A game stops when a pawn reaches
// the last rank, since promotion is not modelled.
func TestRandomPlayoutsMatchOracle(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}
	rng := rand.New(rand.NewSource(7))
	r := NewResolver()

	for game := 0; game < 6; game++ {
		pos := NewStandardPosition()
		state := FENState{ToMove: chess.White, MoveNumber: 1}
		var prior [2]chess.KingState

		for ply := 0; ply < 60; ply++ {
			res := r.Resolve(pos, state.ToMove, prior)
			prior = res.KingStates

			fen := PositionToFEN(pos, state)
			mine := legalPairs(pos, state.ToMove)
			if diff := cmp.Diff(oraclePairs(fen), mine, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("game %d ply %d %s mismatch (-oracle +resolver):\n%s", game, ply, fen, diff)
			}
			if len(mine) == 0 {
				break
			}

			pick := mine[rng.Intn(len(mine))]
			from := chess.MustParseCoordinate(pick[:2])
			to := chess.MustParseCoordinate(pick[2:])
			mover, _ := pos.PieceAt(from)
			pos.MovePiece(mover.ID, to)
			for _, rec := range res.Castles {
				if rec.KingID == mover.ID && rec.KingTarget == to {
					pos.MovePiece(rec.RookID, rec.RookTarget)
				}
			}

			if state.ToMove == chess.Black {
				state.MoveNumber++
			}
			state.ToMove = state.ToMove.Opposite()
			if mover.Type == chess.Pawn && (to.Rank() == chess.FirstRank || to.Rank() == chess.LastRank) {
				break
			}
		}
	}
}
