// Package catalog serves the read-only book catalog over HTTP.
package catalog

import (
	"errors"
	"log"
	"net/http"

	"bookbrowser/internal/book"
	"bookbrowser/internal/httpx"
	"bookbrowser/internal/view"
)

type HTTPHandler struct {
	svc *book.Service
}

func NewHTTPHandler(svc *book.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// List handles GET /v1/books
// @Summary Search the catalog
// @Description Filter by title substring, author and genre; pass next_cursor back to reveal the next page
// @Tags books
// @Produce json
// @Param title query string false "Case-insensitive title substring"
// @Param author query string false "Author id or any"
// @Param genre query string false "Genre id or any"
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	c := book.Criteria{
		Title:  query.Get("title"),
		Author: query.Get("author"),
		Genre:  query.Get("genre"),
	}
	if details := httpx.ValidateStruct(c); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search criteria", details)
		return
	}

	page, err := h.svc.Page(c, query.Get("cursor"))
	if err != nil {
		if errors.Is(err, book.ErrInvalidCursor) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid cursor", nil)
			return
		}
		log.Printf("catalog list failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	meta := map[string]interface{}{
		"total":     page.Total,
		"revealed":  page.Revealed,
		"remaining": page.Remaining,
	}
	if page.NextCursor != "" {
		meta["next_cursor"] = page.NextCursor
		meta["show_more"] = view.ShowMoreLabel(page.Remaining)
	}
	httpx.JSONSuccess(w, r, view.Cards(page.Books, h.svc.Catalog()), meta)
}

// Get handles GET /v1/books/{id}
// @Summary Get book detail
// @Tags books
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Book id is required", nil)
		return
	}

	b, err := h.svc.Resolve(id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	httpx.JSONSuccess(w, r, view.NewDetail(b, h.svc.Catalog().AuthorName(b.AuthorID)), nil)
}

// Authors handles GET /v1/authors
func (h *HTTPHandler) Authors(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, h.svc.Catalog().AuthorOptions(), nil)
}

// Genres handles GET /v1/genres
func (h *HTTPHandler) Genres(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, h.svc.Catalog().GenreOptions(), nil)
}
