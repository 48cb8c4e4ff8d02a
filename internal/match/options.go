package match

import (
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/engine"
)

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger for applied and rejected moves. It is also
// handed to the default resolver.
func WithLogger(l log.Interface) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces time.Now for log entry and outcome timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Match) {
		if now != nil {
			m.now = now
		}
	}
}

// WithResolver replaces the move resolver.
func WithResolver(r *engine.Resolver) Option {
	return func(m *Match) {
		m.resolver = r
	}
}

// WithID fixes the match id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(m *Match) {
		m.id = id
	}
}
