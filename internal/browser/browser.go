// Package browser turns user interactions into state changes over the book
// catalog. A Browser is a single-threaded state machine: callers serialise
// Dispatch calls.
package browser

import (
	"errors"
	"fmt"
	"slices"

	"bookbrowser/internal/book"
)

var (
	// ErrUnknownCommand is returned for a command type Dispatch does not handle.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownOverlay is returned for an overlay other than search or settings.
	ErrUnknownOverlay = errors.New("unknown overlay")
)

// Catalog is what the browser needs from the catalog service.
type Catalog interface {
	Search(c book.Criteria) []book.Book
	Resolve(id string) (book.Book, error)
	PageSize() int
}

// Browser holds the active result set, the pagination cursor, the selection
// and the display preferences of one browsing client.
type Browser struct {
	catalog     Catalog
	criteria    book.Criteria
	results     []book.Book
	cursor      book.Cursor
	selected    *book.Book
	theme       Theme
	overlays    Overlays
	subscribers []func(State)
}

// New starts a browser on the unfiltered catalog with one page revealed.
func New(catalog Catalog, theme Theme) *Browser {
	b := &Browser{catalog: catalog, theme: theme}
	b.search(book.MatchAll)
	return b
}

// Subscribe registers fn to receive the state after every change.
func (b *Browser) Subscribe(fn func(State)) {
	b.subscribers = append(b.subscribers, fn)
}

// State returns the current snapshot.
func (b *Browser) State() State {
	n := len(b.results)
	window := b.cursor.Window(n)
	remaining := b.cursor.Remaining(n)

	s := State{
		Criteria:      b.criteria,
		Visible:       slices.Clone(b.results[:window]),
		Total:         n,
		Revealed:      window,
		Remaining:     remaining,
		NoResults:     n == 0,
		CanRevealMore: remaining > 0,
		Theme:         b.theme,
		Overlays:      b.overlays,
	}
	if b.selected != nil {
		sel := *b.selected
		s.Selected = &sel
	}
	return s
}

// Dispatch applies cmd. Commands that change nothing, like selecting an
// unknown id or revealing past the end, return the unchanged state without
// notifying subscribers.
func (b *Browser) Dispatch(cmd Command) (State, error) {
	changed, err := b.apply(cmd)
	if err != nil {
		return b.State(), err
	}
	s := b.State()
	if changed {
		for _, fn := range b.subscribers {
			fn(s)
		}
	}
	return s, nil
}

func (b *Browser) apply(cmd Command) (bool, error) {
	switch c := cmd.(type) {
	case Search:
		if err := c.Criteria.Validate(); err != nil {
			return false, fmt.Errorf("search: %w", err)
		}
		b.search(c.Criteria)
		b.overlays.Search = false
		return true, nil

	case RevealMore:
		if b.cursor.Remaining(len(b.results)) == 0 {
			return false, nil
		}
		b.cursor.Advance()
		return true, nil

	case Select:
		rec, err := b.catalog.Resolve(c.ID)
		if err != nil {
			return false, nil
		}
		b.selected = &rec
		b.overlays.Detail = true
		return true, nil

	case CloseDetail:
		if !b.overlays.Detail {
			return false, nil
		}
		b.selected = nil
		b.overlays.Detail = false
		return true, nil

	case ToggleTheme:
		next := c.Theme
		if next == "" {
			next = b.theme.Other()
		} else if _, err := ParseTheme(string(next)); err != nil {
			return false, err
		}
		b.theme = next
		b.overlays.Settings = false
		return true, nil

	case OpenOverlay:
		return b.setOverlay(c.Overlay, true)

	case CloseOverlay:
		return b.setOverlay(c.Overlay, false)

	default:
		return false, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (b *Browser) search(c book.Criteria) {
	b.criteria = c.Normalize()
	b.results = b.catalog.Search(b.criteria)
	b.cursor.Reset(b.catalog.PageSize())
}

func (b *Browser) setOverlay(o Overlay, open bool) (bool, error) {
	var flag *bool
	switch o {
	case OverlaySearch:
		flag = &b.overlays.Search
	case OverlaySettings:
		flag = &b.overlays.Settings
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownOverlay, o)
	}
	if *flag == open {
		return false, nil
	}
	*flag = open
	return true, nil
}
