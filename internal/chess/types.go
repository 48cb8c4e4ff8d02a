// Package chess provides core chess types and operations.
package chess

import (
	"fmt"
	"strings"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// Colours lists both colours, White first.
var Colours = [...]Colour{White, Black}

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// MarshalText encodes the colour as "white" or "black".
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText decodes "white" or "black" (case-insensitive).
func (c *Colour) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	default:
		return fmt.Errorf("unknown colour %q", text)
	}
	return nil
}

// PawnDirection returns the forward direction for pawns of colour c.
func PawnDirection(c Colour) Direction {
	if c == White {
		return North
	}
	return South
}

// HomeRank returns the back rank of colour c.
func HomeRank(c Colour) int {
	if c == White {
		return 1
	}
	return 8
}

// PieceType represents a chess piece type.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var pieceTypeNames = [...]string{"None", "Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	if p >= 0 && int(p) < len(pieceTypeNames) {
		return pieceTypeNames[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
// Pawns use 'P'; SAN omits it.
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'R', 'N', 'B', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceTypeFromLetter converts a FEN/SAN letter (either case) to a piece type.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	default:
		return NoPiece
	}
}

// MarshalText encodes the piece type as its lowercase name.
func (p PieceType) MarshalText() ([]byte, error) {
	if p <= NoPiece || p > King {
		return nil, fmt.Errorf("cannot encode piece type %d", int(p))
	}
	return []byte(strings.ToLower(p.String())), nil
}

// UnmarshalText decodes a lowercase or capitalised piece type name.
func (p *PieceType) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i := Pawn; i <= King; i++ {
		if strings.ToLower(pieceTypeNames[i]) == name {
			*p = i
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

// KingState classifies a king's safety after a resolution cycle.
type KingState int

const (
	NotInCheck KingState = iota
	InCheck
	InCheckMate
	InStaleMate
	// NotInCheckMate marks a king that was in check on the previous cycle and
	// is no longer attacked.
	NotInCheckMate
)

var kingStateNames = [...]string{"NotInCheck", "InCheck", "InCheckMate", "InStaleMate", "NotInCheckMate"}

// String returns the name of the state.
func (k KingState) String() string {
	if k >= 0 && int(k) < len(kingStateNames) {
		return kingStateNames[k]
	}
	return "Unknown"
}

// IsTerminal reports whether the state ends the game.
func (k KingState) IsTerminal() bool {
	return k == InCheckMate || k == InStaleMate
}

// MarshalText encodes the state by name.
func (k KingState) MarshalText() ([]byte, error) {
	if k < NotInCheck || k > NotInCheckMate {
		return nil, fmt.Errorf("cannot encode king state %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a state name.
func (k *KingState) UnmarshalText(text []byte) error {
	for i, name := range kingStateNames {
		if name == string(text) {
			*k = KingState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown king state %q", text)
}

// CastleSide identifies which rook takes part in a castle.
type CastleSide int

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

// String returns the name of the side.
func (s CastleSide) String() string {
	switch s {
	case KingSide:
		return "KingSide"
	case QueenSide:
		return "QueenSide"
	default:
		return "None"
	}
}

// MarshalText encodes the side by name.
func (s CastleSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name.
func (s *CastleSide) UnmarshalText(text []byte) error {
	switch string(text) {
	case "KingSide":
		*s = KingSide
	case "QueenSide":
		*s = QueenSide
	case "None", "":
		*s = NoCastle
	default:
		return fmt.Errorf("unknown castle side %q", text)
	}
	return nil
}

// Constants for board dimensions.
const (
	BoardSize = 8
	NumPieces = 32

	FirstRank = 1
	LastRank  = BoardSize
	ColBase   = 'a'
	RankBase  = '1'
)
