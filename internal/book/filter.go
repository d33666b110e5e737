package book

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Criteria is one search submission.
type Criteria struct {
	Title  string `json:"title" validate:"max=200"`
	Author string `json:"author" validate:"max=64"`
	Genre  string `json:"genre" validate:"max=64"`
}

// MatchAll is the identity filter.
var MatchAll = Criteria{Author: Wildcard, Genre: Wildcard}

// Normalize clears a blank title and maps empty selects to the wildcard.
// A non-blank title is kept as typed, surrounding spaces included.
func (c Criteria) Normalize() Criteria {
	if strings.TrimSpace(c.Title) == "" {
		c.Title = ""
	}
	if c.Author == "" {
		c.Author = Wildcard
	}
	if c.Genre == "" {
		c.Genre = Wildcard
	}
	return c
}

// Validate checks request-supplied criteria.
func (c Criteria) Validate() error {
	return validate.Struct(c)
}

// Matches reports whether a book satisfies all three predicates.
func (c Criteria) Matches(b Book) bool {
	c = c.Normalize()
	if c.Title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(c.Title)) {
		return false
	}
	if c.Author != Wildcard && c.Author != b.AuthorID {
		return false
	}
	if c.Genre != Wildcard && !b.HasGenre(c.Genre) {
		return false
	}
	return true
}

// Filter returns the books matching c, in input order. The result never
// shares its backing array with books.
func Filter(books []Book, c Criteria) []Book {
	c = c.Normalize()
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if c.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
