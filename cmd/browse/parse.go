package main

import (
	"errors"
	"fmt"
	"strings"

	"bookbrowser/internal/book"
	"bookbrowser/internal/browser"
)

var errEmptyLine = errors.New("empty line")

// action is a parsed REPL line: either a browser command or a local verb.
type action struct {
	cmd  browser.Command
	verb string
}

const helpText = `commands:
  search [title words] [author=<id>] [genre=<id>]   filter the catalog
  more                                               show the next page
  show <id>                                          open a book
  close                                              close the open book
  theme [day|night]                                  switch theme
  authors | genres                                   list filter values
  help | quit`

func parseLine(line string) (action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return action{}, errEmptyLine
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "search", "s":
		return action{cmd: browser.Search{Criteria: parseCriteria(args)}}, nil
	case "more", "m":
		return action{cmd: browser.RevealMore{}}, nil
	case "show", "select":
		if len(args) != 1 {
			return action{}, fmt.Errorf("usage: %s <id>", verb)
		}
		return action{cmd: browser.Select{ID: args[0]}}, nil
	case "close":
		return action{cmd: browser.CloseDetail{}}, nil
	case "theme":
		if len(args) > 1 {
			return action{}, errors.New("usage: theme [day|night]")
		}
		var t browser.Theme
		if len(args) == 1 {
			parsed, err := browser.ParseTheme(strings.ToLower(args[0]))
			if err != nil {
				return action{}, err
			}
			t = parsed
		}
		return action{cmd: browser.ToggleTheme{Theme: t}}, nil
	case "authors", "genres", "help", "quit", "exit":
		return action{verb: verb}, nil
	default:
		return action{}, fmt.Errorf("unknown command %q, try help", verb)
	}
}

// parseCriteria reads author=/genre= pairs; every other word joins the title.
func parseCriteria(args []string) book.Criteria {
	var c book.Criteria
	var title []string
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		switch {
		case ok && key == "author":
			c.Author = value
		case ok && key == "genre":
			c.Genre = value
		case ok && key == "title":
			title = append(title, value)
		default:
			title = append(title, a)
		}
	}
	c.Title = strings.Join(title, " ")
	return c
}
