package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/engine"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

// RenderBoard draws the position of m, one rank per line. Empty squares
// are dots; White pieces are upper case.
func RenderBoard(w io.Writer, m *match.Match, cfg config.OutputConfig) error {
	var board [chess.BoardSize * chess.BoardSize]byte
	for i := range board {
		board[i] = '.'
	}
	for _, p := range m.Pieces() {
		if !p.IsCaptured() {
			board[p.Location.Index()] = engine.PieceLetter(p)
		}
	}

	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.LastRank - row
		if cfg.Flip {
			rank = row + 1
		}
		if cfg.ShowCoordinates {
			fmt.Fprintf(&sb, "%d ", rank)
		}
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if cfg.Flip {
				file = chess.BoardSize - 1 - col
			}
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(board[file+(rank-1)*chess.BoardSize])
		}
		sb.WriteByte('\n')
	}
	if cfg.ShowCoordinates {
		sb.WriteString(" ")
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if cfg.Flip {
				file = chess.BoardSize - 1 - col
			}
			sb.WriteByte(' ')
			sb.WriteByte(byte(chess.ColBase + file))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteStatus writes whose turn it is and any check or result.
func WriteStatus(w io.Writer, m *match.Match) error {
	number, turn := m.CurrentTurn()
	status := fmt.Sprintf("Move %d, %s to play", number, turn)
	if outcome, ok := m.Outcome(); ok {
		switch outcome.Reason {
		case chess.InCheckMate:
			status = fmt.Sprintf("Checkmate, %s wins (%s)", outcome.Winner, outcome)
		default:
			status = fmt.Sprintf("Stalemate (%s)", outcome)
		}
	} else if m.KingStatus(turn) == chess.InCheck {
		status += ", in check"
	}
	_, err := fmt.Fprintln(w, status)
	return err
}
