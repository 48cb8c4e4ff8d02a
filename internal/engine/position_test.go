package engine

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

func TestNewStandardPosition(t *testing.T) {
	pos := NewStandardPosition()

	if got := len(pos.Pieces()); got != chess.NumPieces {
		t.Fatalf("len(Pieces) = %d; want %d", got, chess.NumPieces)
	}
	for _, c := range chess.Colours {
		if got := len(pos.PiecesInPlay(c)); got != 16 {
			t.Errorf("%s has %d pieces; want 16", c, got)
		}
	}

	tests := []struct {
		sq     string
		pt     chess.PieceType
		colour chess.Colour
	}{
		{"a1", chess.Rook, chess.White},
		{"b1", chess.Knight, chess.White},
		{"c1", chess.Bishop, chess.White},
		{"d1", chess.Queen, chess.White},
		{"e1", chess.King, chess.White},
		{"f1", chess.Bishop, chess.White},
		{"g1", chess.Knight, chess.White},
		{"h1", chess.Rook, chess.White},
		{"a2", chess.Pawn, chess.White},
		{"h2", chess.Pawn, chess.White},
		{"a7", chess.Pawn, chess.Black},
		{"e8", chess.King, chess.Black},
		{"d8", chess.Queen, chess.Black},
		{"h8", chess.Rook, chess.Black},
	}
	for _, tt := range tests {
		t.Run(tt.sq, func(t *testing.T) {
			p := mustPieceAt(t, pos, tt.sq)
			if p.Type != tt.pt || p.Colour != tt.colour {
				t.Errorf("%s = %s %s; want %s %s", tt.sq, p.Colour, p.Type, tt.colour, tt.pt)
			}
			if !p.IsFirstMove() {
				t.Errorf("%s not on first move", tt.sq)
			}
		})
	}

	for rank := 3; rank <= 6; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			c, _ := chess.NewCoordinate(file, rank)
			if _, ok := pos.PieceAt(c); ok {
				t.Errorf("%s is occupied", c)
			}
		}
	}
}

func TestPositionCopyIsIndependent(t *testing.T) {
	pos := NewStandardPosition()
	pawn := mustPieceAt(t, pos, "e2")

	cp := pos.Copy()
	cp.MovePiece(pawn.ID, chess.MustParseCoordinate("e4"))

	if _, ok := pos.PieceAt(chess.MustParseCoordinate("e4")); ok {
		t.Error("move on copy changed original grid")
	}
	if pawn.Location.String() != "e2" || !pawn.IsFirstMove() {
		t.Error("move on copy changed original piece")
	}
	moved, _ := cp.Piece(pawn.ID)
	if moved.Location.String() != "e4" {
		t.Errorf("copy location = %s; want e4", moved.Location)
	}
}

func TestMovePieceRefusesOwnPiece(t *testing.T) {
	pos, _ := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	rook := mustPieceAt(t, pos, "a1")
	king := mustPieceAt(t, pos, "e1")

	taken, err := pos.MovePiece(rook.ID, chess.MustParseCoordinate("e1"))
	if !stderrors.Is(err, errors.ErrIllegalMove) {
		t.Fatalf("MovePiece onto own king error = %v; want ErrIllegalMove", err)
	}
	if taken != nil || king.IsCaptured() {
		t.Error("own king was captured")
	}
	if rook.Location.String() != "a1" {
		t.Errorf("rook moved to %s", rook.Location)
	}
	if p, ok := pos.PieceAt(chess.MustParseCoordinate("e1")); !ok || p.ID != king.ID {
		t.Error("e1 no longer holds the king")
	}
}

func TestValidateTurn(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		wantErr bool
	}{
		{"quiet", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"side to move in check", "4k3/8/8/8/8/8/8/4r1K1 w - - 0 1", false},
		{"kings one apart", "8/8/8/3k1K2/8/8/8/8 w - - 0 1", false},
		{"kings adjacent", "8/8/8/3kK3/8/8/8/8 b - - 0 1", true},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4r1K1 b - - 0 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := NewPosition()
			if err := parsePiecePositions(pos, strings.Fields(tt.fen)[0]); err != nil {
				t.Fatalf("parsePiecePositions: %v", err)
			}
			toMove := chess.White
			if strings.Fields(tt.fen)[1] == "b" {
				toMove = chess.Black
			}
			err := pos.ValidateTurn(toMove)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTurn() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !stderrors.Is(err, errors.ErrDeserialization) {
				t.Errorf("error = %v; want ErrDeserialization", err)
			}
		})
	}
}

func TestMovePieceCaptures(t *testing.T) {
	pos, _ := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	pawn := mustPieceAt(t, pos, "e4")
	target := mustPieceAt(t, pos, "d5")

	taken, err := pos.MovePiece(pawn.ID, chess.MustParseCoordinate("d5"))
	if err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	if taken == nil || taken.ID != target.ID {
		t.Fatalf("MovePiece returned %v; want the d5 pawn", taken)
	}
	if !target.IsCaptured() {
		t.Error("captured pawn not flagged")
	}
	if got := len(pos.Pieces()); got != 4 {
		t.Errorf("captured piece removed from store: %d pieces", got)
	}
	if got := len(pos.PiecesInPlay(chess.Black)); got != 1 {
		t.Errorf("black pieces in play = %d; want 1", got)
	}
	if p, _ := pos.PieceAt(chess.MustParseCoordinate("d5")); p.ID != pawn.ID {
		t.Error("d5 not held by the capturing pawn")
	}
}

func TestAddPieceRejectsConflicts(t *testing.T) {
	pos := NewPosition()
	king := chess.NewPiece(chess.King, chess.White, chess.MustParseCoordinate("e1"))
	if err := pos.AddPiece(king); err != nil {
		t.Fatalf("AddPiece: %v", err)
	}
	if err := pos.AddPiece(king); !stderrors.Is(err, errors.ErrDeserialization) {
		t.Errorf("duplicate id error = %v", err)
	}
	other := chess.NewPiece(chess.Queen, chess.Black, chess.MustParseCoordinate("e1"))
	if err := pos.AddPiece(other); !stderrors.Is(err, errors.ErrDeserialization) {
		t.Errorf("occupied square error = %v", err)
	}
}

func TestValidateKingCount(t *testing.T) {
	pos := NewPosition()
	_ = pos.AddPiece(chess.NewPiece(chess.King, chess.White, chess.MustParseCoordinate("e1")))
	if err := pos.Validate(); !stderrors.Is(err, errors.ErrDeserialization) {
		t.Errorf("Validate without black king = %v", err)
	}
	_ = pos.AddPiece(chess.NewPiece(chess.King, chess.Black, chess.MustParseCoordinate("e8")))
	if err := pos.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
	_ = pos.AddPiece(chess.NewPiece(chess.King, chess.Black, chess.MustParseCoordinate("a8")))
	if err := pos.Validate(); err == nil {
		t.Error("Validate with two black kings succeeded")
	}
}
