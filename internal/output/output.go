// Package output renders matches as text boards, move lists and JSON, and
// saves and loads persisted matches.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lgbarn/chessmatch-go/internal/match"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a token, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line if anything was written on it.
func (o *OutputWriter) NewLine() {
	if o.lineLength == 0 {
		return
	}
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteMoveLog writes the numbered move list of m, wrapped at
// maxLineLength, followed by the result token once the game is over.
func WriteMoveLog(w io.Writer, m *match.Match, maxLineLength int) {
	ow := NewOutputWriter(w, maxLineLength)

	ply := m.StartPly()
	for i, entry := range m.Log() {
		number := strconv.Itoa(ply/2 + 1)
		switch {
		case ply%2 == 0:
			ow.Write(number + ".")
		case i == 0:
			ow.Write(number + "...")
		}
		ow.Write(entry.Notation)
		ply++
	}

	if outcome, ok := m.Outcome(); ok {
		ow.Write(outcome.String())
	} else {
		ow.Write("*")
	}
	ow.NewLine()
}
