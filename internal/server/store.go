package server

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/match"
	"github.com/lgbarn/chessmatch-go/internal/output"
)

// ErrMatchExists is returned when a match id is already stored.
var ErrMatchExists = stderrors.New("match already exists")

// Store holds the live matches by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Add stores m under its id.
func (s *Store) Add(m *match.Match) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[m.ID()]; ok {
		return nil, fmt.Errorf("%s: %w", m.ID(), ErrMatchExists)
	}
	sess := &Session{match: m, clients: make(map[*websocket.Conn]struct{})}
	s.sessions[m.ID()] = sess
	return sess, nil
}

// Get returns the session of match id.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, errors.ErrNotFound)
	}
	return sess, nil
}

// Len returns the number of stored matches.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Session serialises access to one match and fans updates out to its
// WebSocket subscribers.
type Session struct {
	mu      sync.Mutex
	match   *match.Match
	clients map[*websocket.Conn]struct{}
}

// message is what subscribers receive.
type message struct {
	Type     string           `json:"type"`
	Notation string           `json:"notation,omitempty"`
	Snapshot *output.Snapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// View runs fn with the match locked.
func (s *Session) View(fn func(*match.Match) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.match)
}

// Update runs fn with the match locked and, if it succeeds, pushes the
// last move and a fresh snapshot to every subscriber.
func (s *Session) Update(fn func(*match.Match) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.match); err != nil {
		return err
	}

	msg := message{Type: "move", Snapshot: snapshotPtr(s.match)}
	if entries := s.match.Log(); len(entries) > 0 {
		msg.Notation = entries[len(entries)-1].Notation
	}
	for conn := range s.clients {
		if err := conn.WriteJSON(msg); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
	return nil
}

// subscribe registers conn and sends it the current snapshot.
func (s *Session) subscribe(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := conn.WriteJSON(message{Type: "snapshot", Snapshot: snapshotPtr(s.match)}); err != nil {
		return err
	}
	s.clients[conn] = struct{}{}
	return nil
}

func (s *Session) unsubscribe(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, conn)
}

// sendError reports a failure to one subscriber.
func (s *Session) sendError(conn *websocket.Conn, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return conn.WriteJSON(message{Type: "error", Error: err.Error()})
}

// subscribers returns the number of connected clients.
func (s *Session) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func snapshotPtr(m *match.Match) *output.Snapshot {
	snap := output.MatchSnapshot(m)
	return &snap
}
