package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/match"
	"github.com/lgbarn/chessmatch-go/internal/output"
)

type createRequest struct {
	White string `json:"white"`
	Black string `json:"black"`
	FEN   string `json:"fen"`
}

// moveRequest names the mover either by piece id or by source square.
type moveRequest struct {
	Piece string `json:"piece"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type moveResponse struct {
	Result   chess.MoveResult `json:"result"`
	Notation string           `json:"notation"`
	Snapshot output.Snapshot  `json:"snapshot"`
}

func (s *Server) createMatch(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		s.fail(c, fmt.Errorf("create request: %v: %w", err, errors.ErrDeserialization))
		return
	}

	mc := config.MatchConfig{White: req.White, Black: req.Black, FEN: req.FEN}
	white, black, err := mc.Players()
	if err != nil {
		s.fail(c, err)
		return
	}

	var m *match.Match
	if req.FEN == "" {
		m = match.NewMatch(white, black, s.matchOpts...)
	} else if m, err = match.NewMatchFromFEN(req.FEN, white, black, s.matchOpts...); err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.store.Add(m); err != nil {
		s.fail(c, err)
		return
	}

	s.logger.WithFields(log.Fields{
		"match": m.ID().String(),
		"fen":   m.FEN(),
	}).Info("match created")
	c.JSON(http.StatusCreated, output.MatchSnapshot(m))
}

func (s *Server) importMatch(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		s.fail(c, fmt.Errorf("reading body: %v: %w", err, errors.ErrDeserialization))
		return
	}
	m, err := output.UnmarshalMatch(data, s.matchOpts...)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := s.store.Add(m); err != nil {
		s.fail(c, err)
		return
	}

	s.logger.WithFields(log.Fields{
		"match": m.ID().String(),
		"ply":   m.Ply(),
	}).Info("match imported")
	c.JSON(http.StatusCreated, output.MatchSnapshot(m))
}

func (s *Server) getMatch(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var snap output.Snapshot
	_ = sess.View(func(m *match.Match) error {
		snap = output.MatchSnapshot(m)
		return nil
	})
	c.JSON(http.StatusOK, snap)
}

func (s *Server) exportMatch(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var data []byte
	err = sess.View(func(m *match.Match) error {
		data, err = output.MarshalMatch(m)
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) destinations(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	pieceID, err := uuid.Parse(c.Param("piece"))
	if err != nil {
		s.fail(c, fmt.Errorf("piece %q: %w", c.Param("piece"), errors.ErrNotFound))
		return
	}

	var dest match.Destinations
	err = sess.View(func(m *match.Match) error {
		dest, err = m.LegalDestinationsFor(pieceID)
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if dest.Moves == nil {
		dest.Moves = []chess.Coordinate{}
	}
	if dest.Captures == nil {
		dest.Captures = []chess.Coordinate{}
	}
	c.JSON(http.StatusOK, dest)
}

func (s *Server) applyMove(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("move request: %v: %w", err, errors.ErrDeserialization))
		return
	}

	var resp moveResponse
	err = sess.Update(func(m *match.Match) error {
		resp, err = play(m, req)
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) subscribe(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	if err := sess.subscribe(conn); err != nil {
		return
	}
	defer sess.unsubscribe(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req moveRequest
		if err := json.Unmarshal(data, &req); err != nil {
			err = fmt.Errorf("move request: %v: %w", err, errors.ErrDeserialization)
			if sess.sendError(conn, err) != nil {
				return
			}
			continue
		}
		err = sess.Update(func(m *match.Match) error {
			_, err := play(m, req)
			return err
		})
		if err != nil {
			if sess.sendError(conn, err) != nil {
				return
			}
		}
	}
}

// session looks up the match named by the :id parameter.
func (s *Server) session(c *gin.Context) (*Session, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", c.Param("id"), errors.ErrNotFound)
	}
	return s.store.Get(id)
}

// play applies one requested move to m.
func play(m *match.Match, req moveRequest) (moveResponse, error) {
	to, err := chess.ParseCoordinate(req.To)
	if err != nil {
		return moveResponse{}, err
	}

	var result chess.MoveResult
	if req.Piece != "" {
		pieceID, perr := uuid.Parse(req.Piece)
		if perr != nil {
			return moveResponse{}, fmt.Errorf("piece %q: %w", req.Piece, errors.ErrNotFound)
		}
		result, err = m.ApplyMove(pieceID, to)
	} else {
		from, ferr := chess.ParseCoordinate(req.From)
		if ferr != nil {
			return moveResponse{}, ferr
		}
		result, err = m.ApplyMoveFrom(from, to)
	}
	if err != nil {
		return moveResponse{}, err
	}

	entries := m.Log()
	return moveResponse{
		Result:   result,
		Notation: entries[len(entries)-1].Notation,
		Snapshot: output.MatchSnapshot(m),
	}, nil
}
