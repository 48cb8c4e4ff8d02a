// Package server exposes matches over HTTP with gin and streams board
// updates to WebSocket subscribers.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/logging"
	"github.com/lgbarn/chessmatch-go/internal/match"
)

// Server is the HTTP adapter over a Store.
type Server struct {
	cfg       config.ServerConfig
	store     *Store
	logger    log.Interface
	matchOpts []match.Option
	upgrader  websocket.Upgrader
	router    *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for requests and matches.
func WithLogger(l log.Interface) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMatchOptions sets options applied to every created or imported match.
func WithMatchOptions(opts ...match.Option) Option {
	return func(s *Server) {
		s.matchOpts = append(s.matchOpts, opts...)
	}
}

// WithStore serves an existing store.
func WithStore(st *Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// New creates a server. Routes are registered immediately.
func New(cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		store:  NewStore(),
		logger: logging.Discard(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matchOpts = append([]match.Option{match.WithLogger(s.logger)}, s.matchOpts...)
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the match store.
func (s *Server) Store() *Store {
	return s.store
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.WithField("addr", s.cfg.Addr).Info("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	matches := r.Group("/matches")
	matches.POST("", s.createMatch)
	matches.POST("/import", s.importMatch)
	matches.GET("/:id", s.getMatch)
	matches.GET("/:id/export", s.exportMatch)
	matches.GET("/:id/pieces/:piece/destinations", s.destinations)
	matches.POST("/:id/moves", s.applyMove)
	matches.GET("/:id/ws", s.subscribe)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrIllegalMove), stderrors.Is(err, ErrMatchExists):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidCoordinate),
		stderrors.Is(err, errors.ErrDeserialization),
		stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	entry := s.logger.WithFields(log.Fields{
		"path":   c.Request.URL.Path,
		"status": status,
	}).WithError(err)
	if status == http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
