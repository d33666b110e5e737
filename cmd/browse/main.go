package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"bookbrowser/internal/book"
	"bookbrowser/internal/browser"
	"bookbrowser/internal/view"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "browse",
		Usage: "Browse the book catalog from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Path to the catalog JSON file",
				Value:   "data/catalog.json",
				EnvVars: []string{"CATALOG_FILE"},
			},
			&cli.IntFlag{
				Name:    "page-size",
				Usage:   "Books revealed per page (0 = value stored in the catalog)",
				EnvVars: []string{"PAGE_SIZE"},
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "Initial theme: day or night",
				Value: string(browser.Day),
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Wrap descriptions at this many columns (0 = no wrapping)",
				Value: 72,
			},
		},
		Action: func(c *cli.Context) error {
			s, err := open(c)
			if err != nil {
				return err
			}
			return s.repl(os.Stdin)
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print the first page of a search and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "author", Value: book.Wildcard},
					&cli.StringFlag{Name: "genre", Value: book.Wildcard},
				},
				Action: func(c *cli.Context) error {
					s, err := open(c)
					if err != nil {
						return err
					}
					return s.run(browser.Search{Criteria: book.Criteria{
						Title:  c.String("title"),
						Author: c.String("author"),
						Genre:  c.String("genre"),
					}})
				},
			},
			{
				Name:      "show",
				Usage:     "Print one book and exit",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: browse show <id>", 2)
					}
					s, err := open(c)
					if err != nil {
						return err
					}
					if _, err := s.svc.Resolve(c.Args().First()); err != nil {
						return err
					}
					return s.run(browser.Select{ID: c.Args().First()})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type shell struct {
	svc      *book.Service
	browser  *browser.Browser
	renderer view.TextRenderer
	out      io.Writer
	renders  int
}

func open(c *cli.Context) (*shell, error) {
	theme, err := browser.ParseTheme(c.String("theme"))
	if err != nil {
		return nil, err
	}
	svc, err := book.NewService(c.Context, book.NewJSONRepo(c.String("catalog"), c.Int("page-size")))
	if err != nil {
		return nil, err
	}
	return newShell(svc, theme, c.Int("width"), os.Stdout), nil
}

func newShell(svc *book.Service, theme browser.Theme, width int, out io.Writer) *shell {
	s := &shell{
		svc:      svc,
		browser:  browser.New(svc, theme),
		renderer: view.TextRenderer{Width: width},
		out:      out,
	}
	s.browser.Subscribe(func(st browser.State) {
		s.renders++
		if err := s.render(st); err != nil {
			log.Printf("render failed: %v", err)
		}
	})
	return s
}

func (s *shell) render(st browser.State) error {
	return view.RenderPage(s.out, s.renderer, view.FromState(st, s.svc.Catalog()))
}

// run applies one command and renders the result even when nothing changed.
func (s *shell) run(cmd browser.Command) error {
	before := s.renders
	st, err := s.browser.Dispatch(cmd)
	if err != nil {
		return err
	}
	if s.renders == before {
		return s.render(st)
	}
	return nil
}

func (s *shell) repl(in io.Reader) error {
	if err := s.render(s.browser.State()); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		a, err := parseLine(scanner.Text())
		if errors.Is(err, errEmptyLine) {
			continue
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if quit := s.exec(a); quit {
			return nil
		}
	}
}

func (s *shell) exec(a action) (quit bool) {
	switch a.verb {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, helpText)
		return false
	case "authors":
		printOptions(s.out, s.svc.Catalog().AuthorOptions())
		return false
	case "genres":
		printOptions(s.out, s.svc.Catalog().GenreOptions())
		return false
	}

	before := s.renders
	if _, err := s.browser.Dispatch(a.cmd); err != nil {
		fmt.Fprintln(s.out, err)
		return false
	}
	if s.renders == before {
		fmt.Fprintln(s.out, "(no change)")
	}
	return false
}

func printOptions(w io.Writer, opts []book.Option) {
	for _, o := range opts {
		fmt.Fprintf(w, "  %-24s %s\n", o.Value, o.Label)
	}
}
