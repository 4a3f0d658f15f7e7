// Package color maps color names to the ANSI escape codes wrapped around
// colored table cells.
package color

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mgutz/ansi"
)

// ErrUnknownColor is returned for names that are neither a palette entry nor
// a valid ansi style.
var ErrUnknownColor = errors.New("unknown color")

// Source resolves named colors to opaque start codes and provides the code
// that resets the terminal afterwards.
type Source interface {
	Code(name string) (string, error)
	Reset() string
}

// Palette is the default Source. It knows the sixteen standard terminal
// colors by name and also accepts raw ansi style strings such as "cyan+b" or
// "white+h:blue".
type Palette struct {
	styles map[string]string
	reset  string
}

var _ Source = (*Palette)(nil)

var standardStyles = map[string]string{
	"black":         "black",
	"red":           "red",
	"green":         "green",
	"yellow":        "yellow",
	"blue":          "blue",
	"magenta":       "magenta",
	"cyan":          "cyan",
	"white":         "white",
	"gray":          "black+h",
	"light-red":     "red+h",
	"light-green":   "green+h",
	"light-yellow":  "yellow+h",
	"light-blue":    "blue+h",
	"light-magenta": "magenta+h",
	"light-cyan":    "cyan+h",
	"light-white":   "white+h",
	"bold":          "default+b",
}

// NewPalette returns the standard palette. Extra entries map additional
// names to ansi style strings and take precedence over the standard ones.
func NewPalette(extra map[string]string) *Palette {
	styles := make(map[string]string, len(standardStyles)+len(extra))
	for k, v := range standardStyles {
		styles[k] = v
	}
	for k, v := range extra {
		styles[normalize(k)] = v
	}
	return &Palette{styles: styles, reset: ansi.Reset}
}

func normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", " ", "-").Replace(n)
}

// Code returns the escape sequence that starts the named color. The names
// "" and "none" resolve to an empty code; "reset" and "normal" resolve to
// the reset code.
func (p *Palette) Code(name string) (string, error) {
	n := normalize(name)
	switch n {
	case "", "none", "off":
		return "", nil
	case "reset", "normal":
		return p.reset, nil
	}
	if style, ok := p.styles[n]; ok {
		return ansi.ColorCode(style), nil
	}
	if validStyle(n) {
		return ansi.ColorCode(n), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownColor, name)
}

// Reset returns the code that restores the default terminal colors.
func (p *Palette) Reset() string {
	return p.reset
}

// Names returns the palette entries in sorted order.
func (p *Palette) Names() []string {
	names := make([]string, 0, len(p.styles))
	for k := range p.styles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Wrap surrounds text with the named color and the reset code. Text is
// returned unchanged for names that resolve to no code.
func Wrap(src Source, text, name string) (string, error) {
	code, err := src.Code(name)
	if err != nil {
		return "", err
	}
	if code == "" {
		return text, nil
	}
	return code + text + src.Reset(), nil
}

// validStyle reports whether s is an ansi style string ("fg+attrs:bg+attrs")
// whose color names ansi knows about.
func validStyle(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return false
	}
	for _, part := range parts {
		key := strings.SplitN(part, "+", 2)[0]
		if key == "" {
			continue
		}
		if _, ok := ansi.Colors[key]; !ok {
			return false
		}
	}
	return true
}

type none struct{}

// None returns a Source that resolves every name to no code at all.
func None() Source { return none{} }

func (none) Code(string) (string, error) { return "", nil }

func (none) Reset() string { return "" }
