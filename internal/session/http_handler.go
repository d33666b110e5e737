package session

import (
	"errors"
	"io"
	"log"
	"net/http"

	"bookbrowser/internal/book"
	"bookbrowser/internal/browser"
	"bookbrowser/internal/httpx"
	"bookbrowser/internal/view"
)

type HTTPHandler struct {
	store *Store
	names view.Names
}

func NewHTTPHandler(store *Store, names view.Names) *HTTPHandler {
	return &HTTPHandler{store: store, names: names}
}

type CreateRequest struct {
	Theme string `json:"theme" validate:"omitempty,oneof=day night"`
}

type CommandRequest struct {
	Type    string `json:"type" validate:"required,oneof=search reveal_more select close_detail toggle_theme open_overlay close_overlay"`
	Title   string `json:"title" validate:"max=200"`
	Author  string `json:"author" validate:"max=64"`
	Genre   string `json:"genre" validate:"max=64"`
	ID      string `json:"id" validate:"omitempty,record_id"`
	Theme   string `json:"theme" validate:"omitempty,oneof=day night"`
	Overlay string `json:"overlay" validate:"omitempty,oneof=search settings"`
}

type SessionResponse struct {
	ID    string    `json:"id"`
	State view.Page `json:"state"`
}

var errMissingField = errors.New("missing field")

// Command maps the request onto a browser command.
func (req CommandRequest) Command() (browser.Command, error) {
	switch req.Type {
	case "search":
		return browser.Search{Criteria: book.Criteria{Title: req.Title, Author: req.Author, Genre: req.Genre}}, nil
	case "reveal_more":
		return browser.RevealMore{}, nil
	case "select":
		if req.ID == "" {
			return nil, errMissingField
		}
		return browser.Select{ID: req.ID}, nil
	case "close_detail":
		return browser.CloseDetail{}, nil
	case "toggle_theme":
		return browser.ToggleTheme{Theme: browser.Theme(req.Theme)}, nil
	case "open_overlay", "close_overlay":
		if req.Overlay == "" {
			return nil, errMissingField
		}
		if req.Type == "open_overlay" {
			return browser.OpenOverlay{Overlay: browser.Overlay(req.Overlay)}, nil
		}
		return browser.CloseOverlay{Overlay: browser.Overlay(req.Overlay)}, nil
	default:
		return nil, browser.ErrUnknownCommand
	}
}

// Create handles POST /v1/sessions
// @Summary Open a browse session
// @Tags sessions
// @Accept json
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/sessions [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	theme, _ := browser.ParseTheme(req.Theme)
	sess := h.store.Create(theme)
	httpx.SetSessionID(r, sess.ID)
	log.Printf("session created: session_id=%s theme=%s live=%d", sess.ID, theme, h.store.Len())

	var resp SessionResponse
	_ = sess.Do(func(b *browser.Browser) error {
		resp = SessionResponse{ID: sess.ID, State: view.FromState(b.State(), h.names)}
		return nil
	})
	httpx.JSONSuccessCreated(w, r, resp)
}

// Get handles GET /v1/sessions/{id}
// @Summary Current state of a browse session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/sessions/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var resp SessionResponse
	_ = sess.Do(func(b *browser.Browser) error {
		resp = SessionResponse{ID: sess.ID, State: view.FromState(b.State(), h.names)}
		return nil
	})
	httpx.JSONSuccess(w, r, resp, nil)
}

// Dispatch handles POST /v1/sessions/{id}/commands
// @Summary Apply a command to a browse session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body CommandRequest true "Command"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/sessions/{id}/commands [post]
func (h *HTTPHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req CommandRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	cmd, err := req.Command()
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Incomplete command: "+req.Type, nil)
		return
	}

	var resp SessionResponse
	err = sess.Do(func(b *browser.Browser) error {
		state, err := b.Dispatch(cmd)
		if err != nil {
			return err
		}
		resp = SessionResponse{ID: sess.ID, State: view.FromState(state, h.names)}
		return nil
	})
	if err != nil {
		log.Printf("command rejected: session_id=%s type=%s error=%v", sess.ID, req.Type, err)
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, resp, nil)
}

// Delete handles DELETE /v1/sessions/{id}
// @Summary Close a browse session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/sessions/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	httpx.SetSessionID(r, id)
	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Session not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := r.PathValue("id")
	httpx.SetSessionID(r, id)
	sess, err := h.store.Get(id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Session not found", nil)
		return nil, false
	}
	return sess, true
}
