// Package view turns catalog records and browser state into display models.
//
// A View is either a CardView (one entry of the result list) or a DetailView
// (the open record). Renderers decide how views reach the screen; the JSON
// API serialises them directly.
package view

import (
	"fmt"
	"io"
	"strconv"

	"bookbrowser/internal/book"
	"bookbrowser/internal/browser"
)

const (
	DefaultTitle  = "Unknown Title"
	DefaultAuthor = "Unknown Author"
)

// View is a renderable display element.
type View interface {
	Render(r Renderer, w io.Writer) error
}

// Renderer draws each view variant.
type Renderer interface {
	Card(w io.Writer, c CardView) error
	Detail(w io.Writer, d DetailView) error
}

// CardView is one clickable preview in the result list, tagged with the
// record id so a click maps back to Select.
type CardView struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Image  string `json:"image"`
}

// Byline is the "by <author>" caption under the title.
func (c CardView) Byline() string {
	return "by " + c.Author
}

func (c CardView) Render(r Renderer, w io.Writer) error {
	return r.Card(w, c)
}

// DetailView is the content of the detail dialog.
type DetailView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

func (d DetailView) Render(r Renderer, w io.Writer) error {
	return r.Detail(w, d)
}

// NewCard builds the preview for b, substituting placeholders for a missing
// title or author.
func NewCard(b book.Book, authorName string) CardView {
	return CardView{
		ID:     b.ID,
		Title:  orDefault(b.Title, DefaultTitle),
		Author: orDefault(authorName, DefaultAuthor),
		Image:  b.Image,
	}
}

// NewDetail builds the detail dialog content for b.
func NewDetail(b book.Book, authorName string) DetailView {
	subtitle := orDefault(authorName, DefaultAuthor)
	if !b.Published.IsZero() {
		subtitle = fmt.Sprintf("%s (%d)", subtitle, b.Year())
	}
	return DetailView{
		ID:          b.ID,
		Title:       orDefault(b.Title, DefaultTitle),
		Subtitle:    subtitle,
		Image:       b.Image,
		Description: b.Description,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Names resolves author ids to display names.
type Names interface {
	AuthorName(id string) string
}

// Cards builds the previews for books in order.
func Cards(books []book.Book, names Names) []CardView {
	out := make([]CardView, 0, len(books))
	for _, b := range books {
		out = append(out, NewCard(b, names.AuthorName(b.AuthorID)))
	}
	return out
}

// ShowMoreLabel is the caption of the reveal-more control.
func ShowMoreLabel(remaining int) string {
	return "Show more (" + strconv.Itoa(remaining) + ")"
}

// ThemeView carries the two color variables for the active theme.
type ThemeView struct {
	Name  browser.Theme  `json:"name"`
	Color browser.Colors `json:"colors"`
}

// Page is the whole screen derived from a browser state.
type Page struct {
	Criteria      book.Criteria    `json:"criteria"`
	Cards         []CardView       `json:"cards"`
	Total         int              `json:"total"`
	Remaining     int              `json:"remaining"`
	ShowMore      string           `json:"show_more"`
	CanRevealMore bool             `json:"can_reveal_more"`
	NoResults     bool             `json:"no_results"`
	Detail        *DetailView      `json:"detail,omitempty"`
	Theme         ThemeView        `json:"theme"`
	Overlays      browser.Overlays `json:"overlays"`
}

// FromState converts a browser snapshot into a page model.
func FromState(s browser.State, names Names) Page {
	p := Page{
		Criteria:      s.Criteria,
		Cards:         Cards(s.Visible, names),
		Total:         s.Total,
		Remaining:     s.Remaining,
		ShowMore:      ShowMoreLabel(s.Remaining),
		CanRevealMore: s.CanRevealMore,
		NoResults:     s.NoResults,
		Theme:         ThemeView{Name: s.Theme, Color: s.Theme.Colors()},
		Overlays:      s.Overlays,
	}
	if s.Selected != nil {
		d := NewDetail(*s.Selected, names.AuthorName(s.Selected.AuthorID))
		p.Detail = &d
	}
	return p
}
