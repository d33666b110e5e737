package book

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"time"
)

// Wildcard is the criteria value meaning "no constraint on this field".
const Wildcard = "any"

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrDanglingReference is returned when a book points at an unknown author or genre.
	ErrDanglingReference = errors.New("dangling catalog reference")
	// ErrDuplicateID is returned when two books share an id.
	ErrDuplicateID = errors.New("duplicate book id")
	// ErrInvalidID is returned for an id outside ValidID's alphabet.
	ErrInvalidID = errors.New("invalid book id")
	// ErrInvalidPageSize is returned for a page size below one.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidID reports whether id may name a book: letters, digits, '-' and '_'.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Book is one catalog entry.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	AuthorID    string    `json:"author"`
	GenreIDs    []string  `json:"genres"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Published   time.Time `json:"published"`
}

// Year is the publication year shown on the detail view.
func (b Book) Year() int {
	return b.Published.Year()
}

// HasGenre reports whether the book is tagged with the genre id.
func (b Book) HasGenre(genreID string) bool {
	return slices.Contains(b.GenreIDs, genreID)
}

func (b Book) clone() Book {
	b.GenreIDs = slices.Clone(b.GenreIDs)
	return b
}

// Option is one entry of an author or genre select list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog is the read-only set of books plus the author and genre lookups.
type Catalog struct {
	books    []Book
	byID     map[string]int
	authors  map[string]string
	genres   map[string]string
	pageSize int
}

// NewCatalog validates the records and builds the id index.
func NewCatalog(books []Book, authors, genres map[string]string, pageSize int) (*Catalog, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	c := &Catalog{
		books:    make([]Book, 0, len(books)),
		byID:     make(map[string]int, len(books)),
		authors:  make(map[string]string, len(authors)),
		genres:   make(map[string]string, len(genres)),
		pageSize: pageSize,
	}
	for k, v := range authors {
		c.authors[k] = v
	}
	for k, v := range genres {
		c.genres[k] = v
	}

	for _, b := range books {
		if !ValidID(b.ID) {
			return nil, fmt.Errorf("%w: %q for %q", ErrInvalidID, b.ID, b.Title)
		}
		if _, ok := c.byID[b.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		if _, ok := c.authors[b.AuthorID]; !ok {
			return nil, fmt.Errorf("%w: book %s author %s", ErrDanglingReference, b.ID, b.AuthorID)
		}
		for _, g := range b.GenreIDs {
			if _, ok := c.genres[g]; !ok {
				return nil, fmt.Errorf("%w: book %s genre %s", ErrDanglingReference, b.ID, g)
			}
		}
		c.byID[b.ID] = len(c.books)
		c.books = append(c.books, b.clone())
	}
	return c, nil
}

// Books returns a copy of every record in catalog order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	for i, b := range c.books {
		out[i] = b.clone()
	}
	return out
}

// Len is the number of records.
func (c *Catalog) Len() int { return len(c.books) }

// PageSize is the fixed reveal increment.
func (c *Catalog) PageSize() int { return c.pageSize }

// Get looks a record up by id.
func (c *Catalog) Get(id string) (Book, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Book{}, false
	}
	return c.books[i].clone(), true
}

// AuthorName returns the display name for an author id, or "" when unknown.
func (c *Catalog) AuthorName(id string) string { return c.authors[id] }

// GenreName returns the display name for a genre id, or "" when unknown.
func (c *Catalog) GenreName(id string) string { return c.genres[id] }

// AuthorOptions lists the authors for a select input, wildcard first.
func (c *Catalog) AuthorOptions() []Option {
	return options(c.authors, "All Authors")
}

// GenreOptions lists the genres for a select input, wildcard first.
func (c *Catalog) GenreOptions() []Option {
	return options(c.genres, "All Genres")
}

func options(names map[string]string, anyLabel string) []Option {
	out := make([]Option, 0, len(names)+1)
	for id, name := range names {
		out = append(out, Option{Value: id, Label: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label == out[j].Label {
			return out[i].Value < out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return append([]Option{{Value: Wildcard, Label: anyLabel}}, out...)
}
