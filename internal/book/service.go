package book

import (
	"context"
	"fmt"
)

// Service provides catalog search, paging and lookup over a catalog loaded
// once at start-up.
type Service struct {
	catalog *Catalog
}

// NewService loads the catalog from repo.
func NewService(ctx context.Context, repo Repository) (*Service, error) {
	c, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return &Service{catalog: c}, nil
}

// Catalog returns the loaded catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// PageSize is the catalog's reveal increment.
func (s *Service) PageSize() int {
	return s.catalog.PageSize()
}

// Search returns every book matching c in catalog order.
func (s *Service) Search(c Criteria) []Book {
	return Filter(s.catalog.Books(), c)
}

// Resolve returns the book with the given id.
func (s *Service) Resolve(id string) (Book, error) {
	b, ok := s.catalog.Get(id)
	if !ok {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// Page is one reveal step of a filtered result set.
type Page struct {
	Criteria   Criteria
	Books      []Book
	Total      int
	Revealed   int
	Remaining  int
	NextCursor string
}

// Page reveals the next page of the result set for c. An empty token, or a
// token issued for different criteria, starts over at the first page.
func (s *Service) Page(c Criteria, token string) (Page, error) {
	data, err := DecodeCursor(token)
	if err != nil {
		return Page{}, err
	}

	c = c.Normalize()
	results := s.Search(c)

	pageSize := s.catalog.PageSize()
	cur := Cursor{PageSize: pageSize, Revealed: data.Revealed}
	start := 0
	if token == "" || data.Criteria() != c {
		cur.Reset(pageSize)
	} else {
		// tokens are only issued while records remain hidden
		if data.Revealed >= len(results) {
			return Page{}, fmt.Errorf("%w: %d of %d already revealed", ErrInvalidCursor, data.Revealed, len(results))
		}
		start = cur.Window(len(results))
		cur.Advance()
	}

	end := cur.Window(len(results))
	p := Page{
		Criteria:  c,
		Books:     results[start:end],
		Total:     len(results),
		Revealed:  end,
		Remaining: cur.Remaining(len(results)),
	}
	if p.Remaining > 0 {
		p.NextCursor = EncodeCursor(CursorData{
			Title:    c.Title,
			Author:   c.Author,
			Genre:    c.Genre,
			Revealed: cur.Revealed,
		})
	}
	return p, nil
}
