package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENState holds the FEN fields that are not piece placement.
type FENState struct {
	ToMove        chess.Colour
	HalfmoveClock int
	MoveNumber    int
}

// Ply converts the side to move and move number to a zero-based ply count.
func (s FENState) Ply() int {
	ply := (s.MoveNumber - 1) * 2
	if s.ToMove == chess.Black {
		ply++
	}
	return ply
}

// NewPositionFromFEN builds a position from a FEN string. First-move flags
// come from castling availability for kings and rooks and from the home
// rank for pawns. The en passant field is accepted but ignored.
func NewPositionFromFEN(fen string) (*Position, FENState, error) {
	state := FENState{ToMove: chess.White, MoveNumber: 1}
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, state, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	pos := NewPosition()
	if err := parsePiecePositions(pos, parts[0]); err != nil {
		return nil, state, err
	}
	if err := parseSideToMove(&state, parts); err != nil {
		return nil, state, err
	}
	if err := parseClocks(&state, parts); err != nil {
		return nil, state, err
	}
	if err := pos.Validate(); err != nil {
		return nil, state, fmt.Errorf("%v: %w", err, errors.ErrInvalidFEN)
	}
	if err := pos.ValidateTurn(state.ToMove); err != nil {
		return nil, state, fmt.Errorf("%v: %w", err, errors.ErrInvalidFEN)
	}
	if err := parseCastlingRights(pos, parts); err != nil {
		return nil, state, err
	}
	return pos, state, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	for i, row := range ranks {
		rank := chess.LastRank - i
		file := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt := chess.PieceTypeFromLetter(byte(c))
			if pt == chess.NoPiece {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			loc, err := chess.NewCoordinate(file, rank)
			if err != nil {
				return fmt.Errorf("position out of bounds on rank %d: %w", rank, errors.ErrInvalidFEN)
			}
			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			p := chess.NewPiece(pt, colour, loc)
			p.SetFirstMove(pt == chess.Pawn && rank == pawnHomeRank(colour))
			if err := pos.AddPiece(p); err != nil {
				return fmt.Errorf("%v: %w", err, errors.ErrInvalidFEN)
			}
			file++
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d describes %d files: %w", rank, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

func pawnHomeRank(c chess.Colour) int {
	if c == chess.White {
		return chess.FirstRank + 1
	}
	return chess.LastRank - 1
}

// parseSideToMove parses the side to move field.
func parseSideToMove(state *FENState, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		state.ToMove = chess.White
	case "b":
		state.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights marks the king and the corner rooks named by the
// castling field as unmoved.
func parseCastlingRights(pos *Position, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}
	for _, c := range parts[2] {
		var colour chess.Colour
		var rookFile int
		switch c {
		case 'K':
			colour, rookFile = chess.White, chess.BoardSize-1
		case 'Q':
			colour, rookFile = chess.White, 0
		case 'k':
			colour, rookFile = chess.Black, chess.BoardSize-1
		case 'q':
			colour, rookFile = chess.Black, 0
		default:
			return fmt.Errorf("invalid castling availability: %c: %w", c, errors.ErrInvalidFEN)
		}
		king := pos.King(colour)
		if king.Location.Rank() != chess.HomeRank(colour) {
			continue
		}
		corner, _ := chess.NewCoordinate(rookFile, chess.HomeRank(colour))
		rook, ok := pos.PieceAt(corner)
		if !ok || rook.Type != chess.Rook || rook.Colour != colour {
			continue
		}
		king.SetFirstMove(true)
		rook.SetFirstMove(true)
	}
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(state *FENState, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid halfmove clock: %s: %w", parts[4], errors.ErrInvalidFEN)
		}
		state.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid move number: %s: %w", parts[5], errors.ErrInvalidFEN)
		}
		state.MoveNumber = n
	}
	return nil
}

// PositionToFEN converts a position to a FEN string. Castling availability
// is derived from first-move flags; en passant is always "-".
func PositionToFEN(pos *Position, state FENState) string {
	var sb strings.Builder

	writePiecePositions(&sb, pos)
	sb.WriteByte(' ')
	if state.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos)
	sb.WriteString(" - ")
	fmt.Fprintf(&sb, "%d %d", state.HalfmoveClock, state.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos *Position) {
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			loc, _ := chess.NewCoordinate(file, rank)
			p, ok := pos.PieceAt(loc)
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceLetter(p))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
}

// PieceLetter returns the FEN letter of a piece, lowercase for Black.
func PieceLetter(p *chess.Piece) byte {
	letter := p.Type.Letter()
	if p.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, pos *Position) {
	hasCastling := false
	for _, colour := range chess.Colours {
		kingSide, queenSide := castlingRights(pos, colour)
		letters := []byte{'K', 'Q'}
		if colour == chess.Black {
			letters = []byte{'k', 'q'}
		}
		if kingSide {
			sb.WriteByte(letters[0])
			hasCastling = true
		}
		if queenSide {
			sb.WriteByte(letters[1])
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// castlingRights reports whether colour c keeps an unmoved king with an
// unmoved rook on either side of it.
func castlingRights(pos *Position, c chess.Colour) (kingSide, queenSide bool) {
	king := pos.King(c)
	if king == nil || !king.IsFirstMove() {
		return false, false
	}
	for _, p := range pos.PiecesInPlay(c) {
		if p.Type != chess.Rook || !p.IsFirstMove() || p.Location.Rank() != king.Location.Rank() {
			continue
		}
		if p.Location.File() > king.Location.File() {
			kingSide = true
		} else {
			queenSide = true
		}
	}
	return kingSide, queenSide
}
