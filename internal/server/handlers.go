package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tileboard/pkg/board"
	"github.com/matzehuels/tileboard/pkg/errors"
	"github.com/matzehuels/tileboard/pkg/geom"
)

// tileResponse adds the gesture state to a tile.
type tileResponse struct {
	board.Tile
	State string `json:"state"`
}

// updateRequest is the PATCH body. Omitted geometry fields keep their
// stored value.
type updateRequest struct {
	Top    *float64 `json:"top"`
	Left   *float64 `json:"left"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Final  bool     `json:"final"`
}

func (u updateRequest) apply(g geom.Geometry) geom.Geometry {
	if u.Top != nil {
		g.Top = *u.Top
	}
	if u.Left != nil {
		g.Left = *u.Left
	}
	if u.Width != nil {
		g.Width = *u.Width
	}
	if u.Height != nil {
		g.Height = *u.Height
	}
	return g
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.photos)
}

func (s *Server) handleListTiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tiles := s.board.Tiles()
	out := make([]tileResponse, len(tiles))
	for i, t := range tiles {
		out[i] = s.response(t)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	t, ok := s.board.Tile(id)
	resp := s.response(t)
	s.mu.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "tile %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddTile(w http.ResponseWriter, r *http.Request) {
	// The fetch runs unlocked; only the insert is serialized.
	t, err := s.board.NewTile(r.Context())
	if err != nil {
		s.logger.Error("fetch image", "err", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mu.Lock()
	ok := s.board.Insert(t)
	if ok {
		t, _ = s.board.Tile(t.ID)
	}
	resp := s.response(t)
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateTile(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.board.Tile(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	proposed := req.apply(cur.Geometry)
	if err := errors.ValidateOffset(proposed.Top, proposed.Left); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateSize(proposed.Width, proposed.Height); err != nil {
		writeError(w, err)
		return
	}

	t, _ := s.board.UpdateTile(id, proposed, req.Final)
	writeJSON(w, http.StatusOK, s.response(t))
}

func (s *Server) handleDeleteTile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.board.DeleteTile(chi.URLParam(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.board.Select(chi.URLParam(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.clicks.Click()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetBounds(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b, ok := s.board.Bounds()
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handlePutBounds(w http.ResponseWriter, r *http.Request) {
	var b geom.Bounds
	if err := decodeJSON(w, r, &b); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateSize(b.Width, b.Height); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	s.sizes.Publish(b)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, b)
}

// response must be called with s.mu held.
func (s *Server) response(t board.Tile) tileResponse {
	return tileResponse{Tile: t, State: s.board.State(t.ID).String()}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	})
}
