package browser

import (
	"bookbrowser/internal/book"
)

// Overlays tracks which dialogs are open.
type Overlays struct {
	Search   bool `json:"search"`
	Settings bool `json:"settings"`
	Detail   bool `json:"detail"`
}

// State is a snapshot handed to the view layer after each command.
type State struct {
	Criteria      book.Criteria
	Visible       []book.Book
	Total         int
	Revealed      int
	Remaining     int
	NoResults     bool
	CanRevealMore bool
	Selected      *book.Book
	Theme         Theme
	Overlays      Overlays
}
