package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAuthors = map[string]string{"A1": "Frank Herbert", "A2": "J.R.R. Tolkien", "A3": "Ursula K. Le Guin"}
	testGenres  = map[string]string{"sci-fi": "Science Fiction", "fantasy": "Fantasy", "classic": "Classic"}
)

func testBooks() []Book {
	return []Book{
		{ID: "a", Title: "Dune", AuthorID: "A1", GenreIDs: []string{"sci-fi"}, Published: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "Hobbit", AuthorID: "A2", GenreIDs: []string{"fantasy"}, Published: time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Title: "A Wizard of Earthsea", AuthorID: "A3", GenreIDs: []string{"fantasy", "classic"}, Published: time.Date(1968, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "d", Title: "Dune Messiah", AuthorID: "A1", GenreIDs: []string{"sci-fi", "classic"}, Published: time.Date(1969, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "e", Title: "The Left Hand of Darkness", AuthorID: "A3", GenreIDs: []string{"sci-fi"}, Published: time.Date(1969, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func newTestCatalog(t *testing.T, pageSize int) *Catalog {
	t.Helper()
	c, err := NewCatalog(testBooks(), testAuthors, testGenres, pageSize)
	require.NoError(t, err)
	return c
}

func TestNewCatalog(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := newTestCatalog(t, 2)
		assert.Equal(t, 5, c.Len())
		assert.Equal(t, 2, c.PageSize())
		assert.Equal(t, "Frank Herbert", c.AuthorName("A1"))
		assert.Equal(t, "Fantasy", c.GenreName("fantasy"))
		assert.Empty(t, c.AuthorName("nobody"))
	})

	t.Run("dangling author", func(t *testing.T) {
		books := testBooks()
		books[1].AuthorID = "A9"
		_, err := NewCatalog(books, testAuthors, testGenres, 2)
		assert.ErrorIs(t, err, ErrDanglingReference)
	})

	t.Run("dangling genre", func(t *testing.T) {
		books := testBooks()
		books[0].GenreIDs = []string{"horror"}
		_, err := NewCatalog(books, testAuthors, testGenres, 2)
		assert.ErrorIs(t, err, ErrDanglingReference)
	})

	t.Run("duplicate id", func(t *testing.T) {
		books := append(testBooks(), Book{ID: "a", Title: "Again", AuthorID: "A1"})
		_, err := NewCatalog(books, testAuthors, testGenres, 2)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"", "a.b", "x:y", "has space"} {
			books := append(testBooks(), Book{ID: id, Title: "Odd", AuthorID: "A1"})
			_, err := NewCatalog(books, testAuthors, testGenres, 2)
			assert.ErrorIs(t, err, ErrInvalidID, id)
		}
	})

	t.Run("page size", func(t *testing.T) {
		_, err := NewCatalog(testBooks(), testAuthors, testGenres, 0)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	})
}

func TestCatalog_RecordsAreNotShared(t *testing.T) {
	books := testBooks()
	c, err := NewCatalog(books, testAuthors, testGenres, 2)
	require.NoError(t, err)

	books[0].GenreIDs[0] = "fantasy"
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"sci-fi"}, got.GenreIDs)

	got.GenreIDs[0] = "classic"
	again, _ := c.Get("a")
	assert.Equal(t, []string{"sci-fi"}, again.GenreIDs)

	all := c.Books()
	all[0].Title = "changed"
	assert.Equal(t, "Dune", c.Books()[0].Title)
}

func TestCatalog_Options(t *testing.T) {
	c := newTestCatalog(t, 2)

	authors := c.AuthorOptions()
	require.Len(t, authors, 4)
	assert.Equal(t, Option{Value: Wildcard, Label: "All Authors"}, authors[0])
	assert.Equal(t, "Frank Herbert", authors[1].Label)
	assert.Equal(t, "Ursula K. Le Guin", authors[3].Label)

	genres := c.GenreOptions()
	require.Len(t, genres, 4)
	assert.Equal(t, Option{Value: Wildcard, Label: "All Genres"}, genres[0])
	assert.Equal(t, "Classic", genres[1].Label)
}

func TestBook_Year(t *testing.T) {
	assert.Equal(t, 1965, testBooks()[0].Year())
}
