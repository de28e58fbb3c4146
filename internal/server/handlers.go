package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/kalah"
	"github.com/bft-labs/kalah/pkg/layout"
)

type clickRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type layoutCell struct {
	Position int         `json:"position"`
	Rect     layout.Rect `json:"rect"`
}

type layoutResponse struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Cells  []layoutCell `json:"cells"`
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	extent := s.layout.Extent()
	resp := layoutResponse{Width: extent.Width(), Height: extent.Height()}
	for i, c := range s.layout.Cells() {
		resp.Cells = append(resp.Cells, layoutCell{Position: i, Rect: c})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSow(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position")
		return
	}
	s.submit(w, position)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeError(w, http.StatusBadRequest, "surface size must be positive")
		return
	}
	sx, sy := s.layout.ScaleToFill(req.Width, req.Height)
	position, ok := s.layout.HitTest(layout.Point{X: req.X, Y: req.Y}, sx, sy)
	if !ok {
		writeError(w, http.StatusConflict, "no pit at point")
		return
	}
	s.submit(w, position)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Restart(); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) submit(w http.ResponseWriter, position int) {
	err := s.session.Submit(position)
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, s.session.Snapshot())
	case errors.Is(err, session.ErrClosed), errors.Is(err, kalah.ErrBoardClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusConflict, err.Error())
	}
}
