package chess

// Direction is one of the eight compass directions on the board, with
// White's side at the south.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	NorthWest
	SouthWest
)

// Orthogonal lists the four rook directions.
var Orthogonal = []Direction{East, South, West, North}

// Diagonal lists the four bishop directions.
var Diagonal = []Direction{NorthEast, SouthEast, NorthWest, SouthWest}

// AllDirections lists the eight queen and king directions.
var AllDirections = []Direction{NorthEast, SouthEast, NorthWest, SouthWest, East, South, West, North}

var directionDeltas = [...][2]int{
	North:     {0, 1},
	East:      {1, 0},
	South:     {0, -1},
	West:      {-1, 0},
	NorthEast: {1, 1},
	SouthEast: {1, -1},
	NorthWest: {-1, 1},
	SouthWest: {-1, -1},
}

// Delta returns the (file, rank) offset of one step in direction d.
func (d Direction) Delta() (int, int) {
	delta := directionDeltas[d]
	return delta[0], delta[1]
}

// String returns the direction name.
func (d Direction) String() string {
	names := []string{"North", "East", "South", "West", "NorthEast", "SouthEast", "NorthWest", "SouthWest"}
	if d >= 0 && int(d) < len(names) {
		return names[d]
	}
	return "Unknown"
}

// KnightSecondaries returns the two diagonal directions that complete a
// knight's L after one step in cardinal direction d.
func KnightSecondaries(d Direction) [2]Direction {
	switch d {
	case North:
		return [2]Direction{NorthEast, NorthWest}
	case East:
		return [2]Direction{NorthEast, SouthEast}
	case South:
		return [2]Direction{SouthEast, SouthWest}
	default:
		return [2]Direction{NorthWest, SouthWest}
	}
}
