// Package hashing provides duplicate detection for chess matches.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

const squares = chess.BoardSize * chess.BoardSize

var (
	// pieceKeys is indexed by colour, piece type and square.
	pieceKeys [2][chess.King + 1][squares]uint64
	whiteKey  uint64
)

func init() {
	rng := rand.New(rand.NewPCG(0x70676e, 0x636865737321))
	for c := range pieceKeys {
		for pt := chess.Pawn; pt <= chess.King; pt++ {
			for sq := 0; sq < squares; sq++ {
				pieceKeys[c][pt][sq] = rng.Uint64()
			}
		}
	}
	whiteKey = rng.Uint64()
}

// PositionHash returns the Zobrist hash of the pieces in play and the side
// to move.
func PositionHash(m *match.Match) uint64 {
	var hash uint64
	for _, p := range m.Pieces() {
		if p.IsCaptured() {
			continue
		}
		hash ^= pieceKeys[p.Colour][p.Type][p.Location.Index()]
	}
	if _, turn := m.CurrentTurn(); turn == chess.White {
		hash ^= whiteKey
	}
	return hash
}

// Signature identifies a match for duplicate detection.
type Signature struct {
	Name string
	Hash uint64
	Ply  int
}

// DuplicateDetector tracks final positions already seen.
type DuplicateDetector struct {
	// seen maps a position hash to the signatures that reached it
	seen map[uint64][]Signature
	// exact also requires the ply counts to agree
	exact          bool
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exact bool) *DuplicateDetector {
	return &DuplicateDetector{
		seen:  make(map[uint64][]Signature),
		exact: exact,
	}
}

// CheckAndAdd records the final position of m under name. If an earlier
// match reached the same position, its signature is returned with true.
func (d *DuplicateDetector) CheckAndAdd(name string, m *match.Match) (Signature, bool) {
	sig := Signature{Name: name, Hash: PositionHash(m), Ply: m.Ply()}

	for _, existing := range d.seen[sig.Hash] {
		if d.exact && existing.Ply != sig.Ply {
			continue
		}
		d.duplicateCount++
		return existing, true
	}

	d.seen[sig.Hash] = append(d.seen[sig.Hash], sig)
	return Signature{}, false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct matches recorded.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.seen {
		count += len(sigs)
	}
	return count
}

// Reset clears the detector.
func (d *DuplicateDetector) Reset() {
	d.seen = make(map[uint64][]Signature)
	d.duplicateCount = 0
}
