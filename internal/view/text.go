package view

import (
	"fmt"
	"io"
	"strings"
)

// NoResultsMessage is shown when a search matches nothing.
const NoResultsMessage = "No results found. Your filters might be too narrow."

// TextRenderer draws views as plain text for a terminal.
type TextRenderer struct {
	// Width wraps detail descriptions; zero disables wrapping.
	Width int
}

func (t TextRenderer) Card(w io.Writer, c CardView) error {
	_, err := fmt.Fprintf(w, "[%s] %s\n      %s\n", c.ID, c.Title, c.Byline())
	return err
}

func (t TextRenderer) Detail(w io.Writer, d DetailView) error {
	bar := strings.Repeat("=", max(len(d.Title), len(d.Subtitle)))
	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n", bar, d.Title, d.Subtitle, bar); err != nil {
		return err
	}
	if d.Image != "" {
		if _, err := fmt.Fprintf(w, "cover: %s\n", d.Image); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n", wrap(d.Description, t.Width))
	return err
}

// RenderPage writes the result list, the reveal-more control and, when a
// record is selected, its detail.
func RenderPage(w io.Writer, r Renderer, p Page) error {
	if p.NoResults {
		if _, err := fmt.Fprintln(w, NoResultsMessage); err != nil {
			return err
		}
	}
	for _, c := range p.Cards {
		if err := c.Render(r, w); err != nil {
			return err
		}
	}
	if p.CanRevealMore {
		if _, err := fmt.Fprintf(w, "\n%s\n", p.ShowMore); err != nil {
			return err
		}
	}
	if p.Detail != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return p.Detail.Render(r, w)
	}
	return nil
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var b strings.Builder
	line := 0
	for i, word := range strings.Fields(s) {
		if i > 0 {
			if line+1+len(word) > width {
				b.WriteByte('\n')
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
