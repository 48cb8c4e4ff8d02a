package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidCoordinate", ErrInvalidCoordinate, ErrInvalidCoordinate},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrNotFound", ErrNotFound, ErrNotFound},
		{"ErrDeserialization", ErrDeserialization, ErrDeserialization},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrIllegalMove, ErrNotFound) {
		t.Error("ErrIllegalMove should not match ErrNotFound")
	}
	if errors.Is(ErrDeserialization, ErrInvalidFEN) {
		t.Error("ErrDeserialization should not match ErrInvalidFEN")
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("parsing square %q: %w", "z9", ErrInvalidCoordinate)

	if !errors.Is(wrapped, ErrInvalidCoordinate) {
		t.Errorf("errors.Is(wrapped, ErrInvalidCoordinate) = false, want true")
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:     ErrIllegalMove,
				Ply:     12,
				PieceID: "4b1c",
				From:    "e2",
				To:      "e5",
				Reason:  "destination not reachable",
			},
			contains: []string{"ply 12", "4b1c", "e2-e5", "not reachable", "illegal move"},
		},
		{
			name: "destination only",
			err: &MoveError{
				Err: ErrNotFound,
				To:  "d4",
			},
			contains: []string{"to d4", "not found"},
		},
		{
			name:     "bare error",
			err:      &MoveError{Err: ErrIllegalMove},
			contains: []string{"illegal move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_Unwrap verifies that MoveError properly implements Unwrap
func TestMoveError_Unwrap(t *testing.T) {
	moveErr := &MoveError{
		Err:     ErrIllegalMove,
		Ply:     1,
		PieceID: "abc",
	}

	unwrapped := errors.Unwrap(moveErr)
	if !errors.Is(unwrapped, ErrIllegalMove) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrIllegalMove)
	}

	if !errors.Is(moveErr, ErrIllegalMove) {
		t.Error("errors.Is(moveErr, ErrIllegalMove) = false, want true")
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:    ErrIllegalMove,
		Ply:    24,
		From:   "e1",
		To:     "g1",
		Reason: "not your turn",
	}

	wrapped := fmt.Errorf("applying move: %w", moveErr)

	var extractedErr *MoveError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract MoveError")
	}

	if extractedErr.Ply != 24 {
		t.Errorf("extractedErr.Ply = %d, want 24", extractedErr.Ply)
	}
	if extractedErr.To != "g1" {
		t.Errorf("extractedErr.To = %q, want %q", extractedErr.To, "g1")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrDeserialization,
		File:     "match.json",
		Line:     100,
		Column:   15,
		Expected: "object",
		Got:      "number",
	}

	msg := err.Error()

	if !containsIgnoreCase(msg, "match.json:100:15") {
		t.Errorf("ParseError.Error() should contain location, got %q", msg)
	}
	if !containsIgnoreCase(msg, "expected object, got number") {
		t.Errorf("ParseError.Error() should contain expectation, got %q", msg)
	}
}

func TestParseError_LineWithoutFile(t *testing.T) {
	err := &ParseError{Err: ErrDeserialization, Line: 3, Column: 7}
	if got := err.Error(); !strings.HasPrefix(got, "line 3:7") {
		t.Errorf("ParseError.Error() = %q, want prefix %q", got, "line 3:7")
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{
		Err:  ErrInvalidFEN,
		Line: 1,
	}

	if !errors.Is(parseErr, ErrInvalidFEN) {
		t.Error("errors.Is(parseErr, ErrInvalidFEN) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", msg)
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "ply %d of match %s", 15, "m1")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "ply 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
