package view

import (
	"bytes"
	"testing"
	"time"

	"bookbrowser/internal/book"
	"bookbrowser/internal/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type names map[string]string

func (n names) AuthorName(id string) string { return n[id] }

var dune = book.Book{
	ID:          "a",
	Title:       "Dune",
	AuthorID:    "A1",
	Image:       "/covers/a.jpg",
	Description: "Spice must flow.",
	Published:   time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
}

func TestNewCard(t *testing.T) {
	t.Run("populated", func(t *testing.T) {
		c := NewCard(dune, "Frank Herbert")
		assert.Equal(t, CardView{ID: "a", Title: "Dune", Author: "Frank Herbert", Image: "/covers/a.jpg"}, c)
		assert.Equal(t, "by Frank Herbert", c.Byline())
	})

	t.Run("placeholders", func(t *testing.T) {
		c := NewCard(book.Book{ID: "x"}, "")
		assert.Equal(t, DefaultTitle, c.Title)
		assert.Equal(t, "by Unknown Author", c.Byline())
	})
}

func TestNewDetail(t *testing.T) {
	d := NewDetail(dune, "Frank Herbert")
	assert.Equal(t, "Frank Herbert (1965)", d.Subtitle)
	assert.Equal(t, "Spice must flow.", d.Description)

	undated := NewDetail(book.Book{ID: "x", Title: "Untitled draft"}, "")
	assert.Equal(t, DefaultAuthor, undated.Subtitle)
}

func TestFromState(t *testing.T) {
	sel := dune
	s := browser.State{
		Criteria:      book.MatchAll,
		Visible:       []book.Book{dune},
		Total:         3,
		Revealed:      1,
		Remaining:     2,
		CanRevealMore: true,
		Selected:      &sel,
		Theme:         browser.Night,
	}

	p := FromState(s, names{"A1": "Frank Herbert"})
	require.Len(t, p.Cards, 1)
	assert.Equal(t, "Frank Herbert", p.Cards[0].Author)
	assert.Equal(t, "Show more (2)", p.ShowMore)
	require.NotNil(t, p.Detail)
	assert.Equal(t, "Frank Herbert (1965)", p.Detail.Subtitle)
	assert.Equal(t, "255, 255, 255", p.Theme.Color.Dark)
}

func TestRenderPage(t *testing.T) {
	n := names{"A1": "Frank Herbert"}

	t.Run("cards and show more", func(t *testing.T) {
		var buf bytes.Buffer
		p := Page{
			Cards:         Cards([]book.Book{dune}, n),
			ShowMore:      ShowMoreLabel(4),
			CanRevealMore: true,
		}
		require.NoError(t, RenderPage(&buf, TextRenderer{}, p))
		assert.Contains(t, buf.String(), "[a] Dune")
		assert.Contains(t, buf.String(), "by Frank Herbert")
		assert.Contains(t, buf.String(), "Show more (4)")
	})

	t.Run("no results", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderPage(&buf, TextRenderer{}, Page{NoResults: true}))
		assert.Equal(t, NoResultsMessage+"\n", buf.String())
	})

	t.Run("detail stays open over no results", func(t *testing.T) {
		var buf bytes.Buffer
		d := NewDetail(dune, "Frank Herbert")
		require.NoError(t, RenderPage(&buf, TextRenderer{}, Page{NoResults: true, Detail: &d}))
		assert.Contains(t, buf.String(), NoResultsMessage)
		assert.Contains(t, buf.String(), "Frank Herbert (1965)")
	})

	t.Run("detail", func(t *testing.T) {
		var buf bytes.Buffer
		d := NewDetail(dune, "Frank Herbert")
		require.NoError(t, RenderPage(&buf, TextRenderer{Width: 10}, Page{Detail: &d}))
		assert.Contains(t, buf.String(), "Frank Herbert (1965)")
		assert.Contains(t, buf.String(), "Spice must\nflow.")
		assert.NotContains(t, buf.String(), "Show more")
	})
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 7))
	assert.Equal(t, "one two three", wrap("one two three", 0))
}
