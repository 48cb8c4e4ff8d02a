package chess

import (
	"fmt"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// Coordinate is a board square. Files run 0 (a) to 7 (h), ranks 1 to 8.
// The zero value is not a square; use IsZero to detect it.
type Coordinate struct {
	file int8
	rank int8
}

// NewCoordinate builds a coordinate from a 0-based file and a 1-based rank.
func NewCoordinate(file, rank int) (Coordinate, error) {
	if file < 0 || file >= BoardSize {
		return Coordinate{}, fmt.Errorf("file %d out of bounds: %w", file, errors.ErrInvalidCoordinate)
	}
	if rank < FirstRank || rank > LastRank {
		return Coordinate{}, fmt.Errorf("rank %d out of bounds: %w", rank, errors.ErrInvalidCoordinate)
	}
	return Coordinate{file: int8(file), rank: int8(rank)}, nil
}

// ParseCoordinate parses two-character algebraic text such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%q: invalid length: %w", s, errors.ErrInvalidCoordinate)
	}
	if s[1] < RankBase || s[1] > RankBase+BoardSize-1 {
		return Coordinate{}, fmt.Errorf("%q: rank out of bounds: %w", s, errors.ErrInvalidCoordinate)
	}
	if s[0] < ColBase || s[0] > ColBase+BoardSize-1 {
		return Coordinate{}, fmt.Errorf("%q: file out of bounds: %w", s, errors.ErrInvalidCoordinate)
	}
	return Coordinate{file: int8(s[0] - ColBase), rank: int8(s[1]-RankBase) + 1}, nil
}

// MustParseCoordinate is ParseCoordinate for known-good literals. It panics on error.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CoordinateFromIndex converts a 0..63 square index (a1 = 0, h8 = 63).
func CoordinateFromIndex(idx int) (Coordinate, error) {
	if idx < 0 || idx >= BoardSize*BoardSize {
		return Coordinate{}, fmt.Errorf("index %d out of bounds: %w", idx, errors.ErrInvalidCoordinate)
	}
	return NewCoordinate(idx%BoardSize, idx/BoardSize+1)
}

// File returns the 0-based file.
func (c Coordinate) File() int { return int(c.file) }

// Rank returns the 1-based rank.
func (c Coordinate) Rank() int { return int(c.rank) }

// FileLetter returns the file as 'a'..'h'.
func (c Coordinate) FileLetter() byte { return byte(ColBase + c.file) }

// RankDigit returns the rank as '1'..'8'.
func (c Coordinate) RankDigit() byte { return byte(RankBase + c.rank - 1) }

// Index returns the 0..63 square index (a1 = 0, h8 = 63).
func (c Coordinate) Index() int { return int(c.file) + int(c.rank-1)*BoardSize }

// IsZero reports whether c is the zero value rather than a square.
func (c Coordinate) IsZero() bool { return c.rank == 0 }

// String returns the algebraic name, or "-" for the zero value.
func (c Coordinate) String() string {
	if c.IsZero() {
		return "-"
	}
	return string([]byte{c.FileLetter(), c.RankDigit()})
}

// Step moves one square in direction d. It reports false at the board edge.
func (c Coordinate) Step(d Direction) (Coordinate, bool) {
	df, dr := d.Delta()
	file, rank := int(c.file)+df, int(c.rank)+dr
	if c.IsZero() || file < 0 || file >= BoardSize || rank < FirstRank || rank > LastRank {
		return Coordinate{}, false
	}
	return Coordinate{file: int8(file), rank: int8(rank)}, true
}

// North steps toward rank 8.
func (c Coordinate) North() (Coordinate, bool) { return c.Step(North) }

// South steps toward rank 1.
func (c Coordinate) South() (Coordinate, bool) { return c.Step(South) }

// East steps toward the h-file.
func (c Coordinate) East() (Coordinate, bool) { return c.Step(East) }

// West steps toward the a-file.
func (c Coordinate) West() (Coordinate, bool) { return c.Step(West) }

// NorthEast steps diagonally toward h8.
func (c Coordinate) NorthEast() (Coordinate, bool) { return c.Step(NorthEast) }

// NorthWest steps diagonally toward a8.
func (c Coordinate) NorthWest() (Coordinate, bool) { return c.Step(NorthWest) }

// SouthEast steps diagonally toward h1.
func (c Coordinate) SouthEast() (Coordinate, bool) { return c.Step(SouthEast) }

// SouthWest steps diagonally toward a1.
func (c Coordinate) SouthWest() (Coordinate, bool) { return c.Step(SouthWest) }

// MarshalText encodes the coordinate in algebraic form.
func (c Coordinate) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("cannot encode empty coordinate: %w", errors.ErrInvalidCoordinate)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes algebraic text.
func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
