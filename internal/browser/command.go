package browser

import (
	"bookbrowser/internal/book"
)

// Command is one user interaction.
type Command interface {
	command()
}

// Search replaces the active result set and resets pagination.
type Search struct {
	Criteria book.Criteria
}

// RevealMore shows the next page of the active result set.
type RevealMore struct{}

// Select opens the detail view for a record id.
type Select struct {
	ID string
}

// CloseDetail dismisses the detail view.
type CloseDetail struct{}

// ToggleTheme applies Theme, or flips the current theme when Theme is empty.
type ToggleTheme struct {
	Theme Theme
}

// Overlay names a dialog the view layer can show.
type Overlay string

const (
	OverlaySearch   Overlay = "search"
	OverlaySettings Overlay = "settings"
)

// OpenOverlay shows the search or settings dialog.
type OpenOverlay struct {
	Overlay Overlay
}

// CloseOverlay hides the search or settings dialog.
type CloseOverlay struct {
	Overlay Overlay
}

func (Search) command()       {}
func (RevealMore) command()   {}
func (Select) command()       {}
func (CloseDetail) command()  {}
func (ToggleTheme) command()  {}
func (OpenOverlay) command()  {}
func (CloseOverlay) command() {}
