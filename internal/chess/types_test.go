package chess

import "testing"

func TestColour(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite is not an involution")
	}
	var c Colour
	for _, in := range []string{"white", "White", "w"} {
		if err := c.UnmarshalText([]byte(in)); err != nil || c != White {
			t.Errorf("UnmarshalText(%q) = %v, %v; want White", in, c, err)
		}
	}
	if err := c.UnmarshalText([]byte("green")); err == nil {
		t.Error("UnmarshalText(green) succeeded")
	}
	if PawnDirection(White) != North || PawnDirection(Black) != South {
		t.Error("PawnDirection wrong")
	}
}

func TestPieceTypeLetters(t *testing.T) {
	for pt := Pawn; pt <= King; pt++ {
		if got := PieceTypeFromLetter(pt.Letter()); got != pt {
			t.Errorf("PieceTypeFromLetter(%c) = %v; want %v", pt.Letter(), got, pt)
		}
		text, err := pt.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", pt, err)
		}
		var back PieceType
		if err := back.UnmarshalText(text); err != nil || back != pt {
			t.Errorf("UnmarshalText(%s) = %v, %v", text, back, err)
		}
	}
	if PieceTypeFromLetter('x') != NoPiece {
		t.Error("PieceTypeFromLetter(x) != NoPiece")
	}
}

func TestKingStateText(t *testing.T) {
	tests := []struct {
		state    KingState
		terminal bool
	}{
		{NotInCheck, false},
		{InCheck, false},
		{InCheckMate, true},
		{InStaleMate, true},
		{NotInCheckMate, false},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if tt.state.IsTerminal() != tt.terminal {
				t.Errorf("IsTerminal = %v; want %v", tt.state.IsTerminal(), tt.terminal)
			}
			text, _ := tt.state.MarshalText()
			var back KingState
			if err := back.UnmarshalText(text); err != nil || back != tt.state {
				t.Errorf("round trip %s = %v, %v", text, back, err)
			}
		})
	}
}

func TestMoveResultCheckFlags(t *testing.T) {
	tests := []struct {
		state       KingState
		check, mate bool
	}{
		{NotInCheck, false, false},
		{InCheck, true, false},
		{InCheckMate, true, true},
		{InStaleMate, false, false},
	}
	for _, tt := range tests {
		r := MoveResult{OpponentKingState: tt.state}
		if r.IsCheck() != tt.check || r.IsMate() != tt.mate {
			t.Errorf("%v: IsCheck=%v IsMate=%v; want %v %v", tt.state, r.IsCheck(), r.IsMate(), tt.check, tt.mate)
		}
	}
}
