package main

import (
	"context"
	"net/http"
	"time"

	"bookbrowser/internal/catalog"
	"bookbrowser/internal/session"
)

type server struct {
	books    *catalog.HTTPHandler
	sessions *session.HTTPHandler
	ready    func(ctx context.Context) error
}

func routes(s server) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/books", s.books.List)
	router.HandleFunc("GET /v1/books/{id}", s.books.Get)
	router.HandleFunc("GET /v1/authors", s.books.Authors)
	router.HandleFunc("GET /v1/genres", s.books.Genres)

	router.HandleFunc("POST /v1/sessions", s.sessions.Create)
	router.HandleFunc("GET /v1/sessions/{id}", s.sessions.Get)
	router.HandleFunc("POST /v1/sessions/{id}/commands", s.sessions.Dispatch)
	router.HandleFunc("DELETE /v1/sessions/{id}", s.sessions.Delete)

	return router
}
