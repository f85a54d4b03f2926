package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/procview/internal/workspace"
	"github.com/matzehuels/procview/pkg/buildinfo"
	"github.com/matzehuels/procview/pkg/document"
	perrors "github.com/matzehuels/procview/pkg/errors"
	pio "github.com/matzehuels/procview/pkg/io"
)

// stateResponse is returned by every endpoint that changes a document.
type stateResponse struct {
	ID       string            `json:"id"`
	Document document.Document `json:"document"`
	CanUndo  bool              `json:"canUndo"`
	CanRedo  bool              `json:"canRedo"`
}

func newState(id string, ed *document.Editor) stateResponse {
	return stateResponse{
		ID:       id,
		Document: ed.Document(),
		CanUndo:  ed.CanUndo(),
		CanRedo:  ed.CanRedo(),
	}
}

type jumpRequest struct {
	Direction string `json:"direction"`
	Index     int    `json:"index"`
}

type connectRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := pio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.svc.Create(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/documents/"+id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ed, err := s.svc.Open(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newState(id, ed))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	merge := false
	if v := r.URL.Query().Get("merge"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "merge"))
			return
		}
		merge = b
	}
	g, err := s.svc.Display(r.Context(), chi.URLParam(r, "id"), merge)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var env document.Envelope
	if err := readJSON(w, r, &env); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := document.Decode(env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r, func(id string) (*document.Editor, error) {
		return s.svc.Dispatch(r.Context(), id, a)
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func(id string) (*document.Editor, error) { return s.svc.Undo(r.Context(), id) })
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func(id string) (*document.Editor, error) { return s.svc.Redo(r.Context(), id) })
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func(id string) (*document.Editor, error) { return s.svc.Clear(r.Context(), id) })
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	dir, err := workspace.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r, func(id string) (*document.Editor, error) {
		return s.svc.Jump(r.Context(), id, dir, req.Index)
	})
}

func (s *Server) respondState(w http.ResponseWriter, r *http.Request, fn func(id string) (*document.Editor, error)) {
	id := chi.URLParam(r, "id")
	ed, err := fn(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newState(id, ed))
}

func (s *Server) handleConnectors(w http.ResponseWriter, r *http.Request) {
	avail, err := s.svc.Connectors(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "nodeID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avail)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	edge, err := s.svc.Connect(r.Context(), chi.URLParam(r, "id"), req.From, req.To)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}
