package book

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo loads the catalog from the authors, genres, books and
// book_genres tables.
type PostgresRepo struct {
	db       *pgxpool.Pool
	timeout  time.Duration
	pageSize int
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration, pageSize int) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, pageSize: pageSize}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Load(ctx context.Context) (*Catalog, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	authors, err := r.names(timeoutCtx, "SELECT id, name FROM authors")
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	genres, err := r.names(timeoutCtx, "SELECT id, name FROM genres")
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	const booksSQL = `
		SELECT b.id, b.title, b.author_id, b.image, b.description, b.published,
		       COALESCE(array_agg(bg.genre_id ORDER BY bg.position) FILTER (WHERE bg.genre_id IS NOT NULL), '{}')
		FROM books b
		LEFT JOIN book_genres bg ON bg.book_id = b.id
		GROUP BY b.id
		ORDER BY b.position ASC`

	rows, err := r.db.Query(timeoutCtx, booksSQL)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Book, error) {
		var b Book
		err := row.Scan(&b.ID, &b.Title, &b.AuthorID, &b.Image, &b.Description, &b.Published, &b.GenreIDs)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}

	return NewCatalog(books, authors, genres, r.pageSize)
}

func (r *PostgresRepo) names(ctx context.Context, query string) (map[string]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

// Save writes a catalog into the tables, replacing any previous content.
func (r *PostgresRepo) Save(ctx context.Context, c *Catalog) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, "TRUNCATE book_genres, books, genres, authors"); err != nil {
		return fmt.Errorf("truncate catalog: %w", err)
	}

	for id, name := range c.authors {
		if _, err := tx.Exec(timeoutCtx, "INSERT INTO authors (id, name) VALUES ($1, $2)", id, name); err != nil {
			return fmt.Errorf("insert author %s: %w", id, err)
		}
	}
	for id, name := range c.genres {
		if _, err := tx.Exec(timeoutCtx, "INSERT INTO genres (id, name) VALUES ($1, $2)", id, name); err != nil {
			return fmt.Errorf("insert genre %s: %w", id, err)
		}
	}

	const bookSQL = `
		INSERT INTO books (id, position, title, author_id, image, description, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, b := range c.books {
		if _, err := tx.Exec(timeoutCtx, bookSQL, b.ID, i, b.Title, b.AuthorID, b.Image, b.Description, b.Published); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ID, err)
		}
		for pos, g := range b.GenreIDs {
			if _, err := tx.Exec(timeoutCtx,
				"INSERT INTO book_genres (book_id, genre_id, position) VALUES ($1, $2, $3)",
				b.ID, g, pos); err != nil {
				return fmt.Errorf("insert genre link %s/%s: %w", b.ID, g, err)
			}
		}
	}

	return tx.Commit(timeoutCtx)
}
