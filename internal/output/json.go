package output

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

// FormatVersion is written into every saved match.
const FormatVersion = 1

// JSONMatch is the persisted form of a match. It carries the cached legal
// destinations and king states so a loaded match answers queries without
// re-resolving.
type JSONMatch struct {
	Version    int                `json:"version"`
	ID         uuid.UUID          `json:"id"`
	White      uuid.UUID          `json:"white"`
	Black      uuid.UUID          `json:"black"`
	Ply        int                `json:"ply"`
	Turn       chess.Colour       `json:"turn"`
	KingStates JSONKingStates     `json:"king_states"`
	Castles    JSONCastles        `json:"castles"`
	Pieces     []chess.PieceState `json:"pieces"`
	Log        []JSONLogEntry     `json:"log"`
	Outcome    *JSONOutcome       `json:"outcome,omitempty"`
	Started    *time.Time         `json:"started,omitempty"`
	Completed  *time.Time         `json:"completed,omitempty"`
}

// JSONKingStates holds one king state per colour.
type JSONKingStates struct {
	White chess.KingState `json:"white"`
	Black chess.KingState `json:"black"`
}

// JSONCastles holds the castle records open to each colour.
type JSONCastles struct {
	White []chess.CastleRecord `json:"white"`
	Black []chess.CastleRecord `json:"black"`
}

// JSONLogEntry is one applied move.
type JSONLogEntry struct {
	ID       uuid.UUID        `json:"id"`
	Player   uuid.UUID        `json:"player"`
	Ply      int              `json:"ply"`
	Move     chess.MoveResult `json:"move"`
	Notation string           `json:"notation"`
	Time     time.Time        `json:"time"`
}

// JSONOutcome is a finished game's result.
type JSONOutcome struct {
	Reason chess.KingState `json:"reason"`
	Winner chess.Colour    `json:"winner"`
	Result string          `json:"result"`
}

// MatchToJSON converts a match to its persisted form.
func MatchToJSON(m *match.Match) *JSONMatch {
	s := m.State()
	jm := &JSONMatch{
		Version:    FormatVersion,
		ID:         s.ID,
		White:      s.White,
		Black:      s.Black,
		Ply:        s.Ply,
		Turn:       s.Turn,
		KingStates: kingStatesToJSON(s.KingStates),
		Castles: JSONCastles{
			White: nonNil(s.Castles[chess.White]),
			Black: nonNil(s.Castles[chess.Black]),
		},
		Pieces:    s.Pieces,
		Log:       make([]JSONLogEntry, 0, len(s.Log)),
		Outcome:   outcomeToJSON(s.Outcome),
		Started:   timePtr(s.Started),
		Completed: timePtr(s.Completed),
	}
	for _, e := range s.Log {
		jm.Log = append(jm.Log, JSONLogEntry{
			ID:       e.ID,
			Player:   e.Player,
			Ply:      e.Ply,
			Move:     e.Move,
			Notation: e.Notation,
			Time:     e.Time,
		})
	}
	return jm
}

// State converts the persisted form back to a match snapshot.
func (jm *JSONMatch) State() (match.State, error) {
	if jm.Version != FormatVersion {
		return match.State{}, fmt.Errorf("unsupported format version %d: %w", jm.Version, errors.ErrDeserialization)
	}
	s := match.State{
		ID:     jm.ID,
		White:  jm.White,
		Black:  jm.Black,
		Ply:    jm.Ply,
		Turn:   jm.Turn,
		Pieces: jm.Pieces,
	}
	s.KingStates[chess.White] = jm.KingStates.White
	s.KingStates[chess.Black] = jm.KingStates.Black
	s.Castles[chess.White] = jm.Castles.White
	s.Castles[chess.Black] = jm.Castles.Black
	for _, e := range jm.Log {
		s.Log = append(s.Log, match.LogEntry{
			ID:       e.ID,
			Player:   e.Player,
			Ply:      e.Ply,
			Move:     e.Move,
			Notation: e.Notation,
			Time:     e.Time,
		})
	}
	if jm.Outcome != nil {
		s.Outcome = &match.Outcome{Reason: jm.Outcome.Reason, Winner: jm.Outcome.Winner}
	}
	if jm.Started != nil {
		s.Started = *jm.Started
	}
	if jm.Completed != nil {
		s.Completed = *jm.Completed
	}
	return s, nil
}

// MarshalMatch encodes a match as indented JSON.
func MarshalMatch(m *match.Match) ([]byte, error) {
	data, err := json.MarshalIndent(MatchToJSON(m), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding match %s: %w", m.ID(), err)
	}
	return data, nil
}

// SaveMatch writes a match to w.
func SaveMatch(w io.Writer, m *match.Match) error {
	data, err := MarshalMatch(m)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// UnmarshalMatch decodes a saved match. Malformed input yields a
// *errors.ParseError; every failure wraps ErrDeserialization.
func UnmarshalMatch(data []byte, opts ...match.Option) (*match.Match, error) {
	var jm JSONMatch
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jm); err != nil {
		return nil, decodeError(data, err)
	}
	if dec.More() {
		line, col := lineColumn(data, dec.InputOffset())
		return nil, &errors.ParseError{
			Err:    errors.ErrDeserialization,
			Line:   line,
			Column: col,
			Got:    "trailing data",
		}
	}

	s, err := jm.State()
	if err != nil {
		return nil, err
	}
	return match.Restore(s, opts...)
}

// LoadMatch reads a saved match from r.
func LoadMatch(r io.Reader, opts ...match.Option) (*match.Match, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading match: %w", err)
	}
	return UnmarshalMatch(data, opts...)
}

// decodeError locates a JSON error in data where the decoder reports an
// offset.
func decodeError(data []byte, err error) error {
	pe := &errors.ParseError{Err: fmt.Errorf("%w: %v", errors.ErrDeserialization, err)}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		pe.Line, pe.Column = lineColumn(data, syntaxErr.Offset)
	case stderrors.As(err, &typeErr):
		pe.Line, pe.Column = lineColumn(data, typeErr.Offset)
		pe.Expected = typeErr.Type.String()
		pe.Got = typeErr.Value
	case stderrors.Is(err, io.EOF):
		pe.Got = "empty document"
	}
	return pe
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func kingStatesToJSON(ks [2]chess.KingState) JSONKingStates {
	return JSONKingStates{White: ks[chess.White], Black: ks[chess.Black]}
}

func outcomeToJSON(o *match.Outcome) *JSONOutcome {
	if o == nil {
		return nil
	}
	return &JSONOutcome{Reason: o.Reason, Winner: o.Winner, Result: o.String()}
}

func nonNil(recs []chess.CastleRecord) []chess.CastleRecord {
	if recs == nil {
		return []chess.CastleRecord{}
	}
	return recs
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
