package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookbrowser/internal/book"
	"bookbrowser/internal/catalog"
	"bookbrowser/internal/config"
	"bookbrowser/internal/httpx"
	"bookbrowser/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repo  book.Repository
		ready = func(context.Context) error { return nil }
	)
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		dbPool := mustOpenDB(cfg.DatabaseDSN)
		defer dbPool.Close()
		repo = book.NewPostgresRepo(dbPool, cfg.DBTimeout, cfg.PageSize)
		ready = dbPool.Ping
	default:
		repo = book.NewJSONRepo(cfg.CatalogFile, cfg.PageSize)
	}

	bookService, err := book.NewService(ctx, repo)
	if err != nil {
		log.Fatalf("cannot load catalog: %v", err)
	}
	log.Printf("catalog loaded: source=%s books=%d page_size=%d", cfg.CatalogSource, bookService.Catalog().Len(), bookService.PageSize())

	sessionStore := session.NewStore(bookService, cfg.SessionTTL)
	defer sessionStore.Close()

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Close()

	router := routes(server{
		books:    catalog.NewHTTPHandler(bookService),
		sessions: session.NewHTTPHandler(sessionStore, bookService.Catalog()),
		ready:    ready,
	})

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
