package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

// MatchWriter is the interface for writing matches to output.
// Different implementations handle different output formats.
type MatchWriter interface {
	// WriteMatch writes a single match to the output.
	WriteMatch(m *match.Match) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewMatchWriter returns the writer for the configured output format.
func NewMatchWriter(w io.Writer, cfg config.OutputConfig) MatchWriter {
	if cfg.Format == config.JSONFormat {
		return NewJSONWriterSingle(w)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes a board diagram, a status line and the move list.
type TextWriter struct {
	w   io.Writer
	cfg config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg config.OutputConfig) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteMatch writes m as text.
func (tw *TextWriter) WriteMatch(m *match.Match) error {
	if err := RenderBoard(tw.w, m, tw.cfg); err != nil {
		return err
	}
	if err := WriteStatus(tw.w, m); err != nil {
		return err
	}
	if len(m.Log()) > 0 {
		WriteMoveLog(tw.w, m, tw.cfg.MaxLineLength)
	}
	_, err := fmt.Fprintln(tw.w)
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONOutput holds multiple snapshots for array output.
type JSONOutput struct {
	Matches []Snapshot `json:"matches"`
}

// JSONWriter writes match snapshots in JSON format.
// It buffers snapshots and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	matches []Snapshot
	single  bool // If true, write each match immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches matches and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		matches: make([]Snapshot, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each match immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteMatch buffers a snapshot of m (or writes it immediately in single mode).
// The snapshot is taken now, so later moves on m are not reflected.
func (jw *JSONWriter) WriteMatch(m *match.Match) error {
	snap := MatchSnapshot(m)
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	jw.matches = append(jw.matches, snap)
	return nil
}

// Flush writes all buffered snapshots as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.matches) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Matches: jw.matches})

	// Clear buffer after writing
	jw.matches = jw.matches[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
