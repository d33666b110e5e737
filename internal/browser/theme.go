package browser

import (
	"errors"
	"fmt"
)

// ErrUnknownTheme is returned for a theme name other than day or night.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is the settings-form color scheme.
type Theme string

const (
	Day   Theme = "day"
	Night Theme = "night"
)

// Colors is the pair of RGB triplets the view layer exposes as
// --color-dark and --color-light.
type Colors struct {
	Dark  string `json:"dark"`
	Light string `json:"light"`
}

const (
	rgbWhite = "255, 255, 255"
	rgbInk   = "10, 10, 20"
)

// Colors returns the color pair for the theme.
func (t Theme) Colors() Colors {
	if t == Night {
		return Colors{Dark: rgbWhite, Light: rgbInk}
	}
	return Colors{Dark: rgbInk, Light: rgbWhite}
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == Night {
		return Day
	}
	return Night
}

// ParseTheme maps a form value to a Theme. The empty string means day.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case "", Day:
		return Day, nil
	case Night:
		return Night, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}
