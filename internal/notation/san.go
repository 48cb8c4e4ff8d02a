// Package notation renders applied moves as standard algebraic notation.
package notation

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

// SAN renders a move result. rivals are the squares of other pieces of the
// same type and colour that could also have reached the destination; they
// decide file or rank disambiguation.
func SAN(m chess.MoveResult, rivals []chess.Coordinate) string {
	var sb strings.Builder

	switch {
	case m.Castle == chess.KingSide:
		sb.WriteString("O-O")
	case m.Castle == chess.QueenSide:
		sb.WriteString("O-O-O")
	case m.PieceType == chess.Pawn:
		if m.Captured {
			sb.WriteByte(m.From.FileLetter())
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	default:
		sb.WriteByte(m.PieceType.Letter())
		sb.WriteString(disambiguate(m.From, rivals))
		if m.Captured {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	switch {
	case m.IsMate():
		sb.WriteByte('#')
	case m.IsCheck():
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguate prefers the file, then the rank, then the full square.
func disambiguate(from chess.Coordinate, rivals []chess.Coordinate) string {
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, r := range rivals {
		if r.File() == from.File() {
			sameFile = true
		}
		if r.Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string(from.FileLetter())
	case !sameRank:
		return string(from.RankDigit())
	default:
		return from.String()
	}
}

// FormatMoves numbers a sequence of SAN moves, "1. e4 e5 2. Nf3". startPly
// is the zero-based ply of the first move; an odd value starts with "1...".
func FormatMoves(startPly int, moves []string) string {
	var parts []string
	for i, san := range moves {
		ply := startPly + i
		moveNumber := strconv.Itoa(ply/2 + 1)
		switch {
		case ply%2 == 0:
			parts = append(parts, moveNumber+".", san)
		case i == 0:
			parts = append(parts, moveNumber+"...", san)
		default:
			parts = append(parts, san)
		}
	}
	return strings.Join(parts, " ")
}
