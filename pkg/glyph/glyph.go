// Package glyph resolves symbolic border names to the box-drawing characters
// that are written to the terminal.
package glyph

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// Name identifies a border or line glyph.
type Name string

const (
	TopLeft         Name = "top-left"
	TopRight        Name = "top-right"
	TopCross        Name = "top-cross"
	BottomLeft      Name = "bottom-left"
	BottomRight     Name = "bottom-right"
	BottomCross     Name = "bottom-cross"
	LeftCross       Name = "left-cross"
	RightCross      Name = "right-cross"
	MiddleCross     Name = "middle-cross"
	HorizontalHeavy Name = "horizontal-heavy"
	HorizontalLight Name = "horizontal-light"
	VerticalLight   Name = "vertical-light"
	VerticalHeavy   Name = "vertical-heavy"
)

// narrow measures glyphs as a western terminal would; box-drawing characters
// are East Asian ambiguous width.
var narrow = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

var (
	// ErrUnknownGlyph is returned when a name is not part of a set.
	ErrUnknownGlyph = errors.New("unknown glyph")
	// ErrInvalidGlyph is returned for glyphs that are not a single-cell character.
	ErrInvalidGlyph = errors.New("invalid glyph")
)

// Names lists every glyph a Source must be able to resolve, in a stable order.
func Names() []Name {
	return []Name{
		TopLeft, TopRight, TopCross,
		BottomLeft, BottomRight, BottomCross,
		LeftCross, RightCross, MiddleCross,
		HorizontalHeavy, HorizontalLight,
		VerticalLight, VerticalHeavy,
	}
}

// ParseName validates s as a glyph name.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Names() {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownGlyph, s)
}

// Source resolves glyph names to characters.
type Source interface {
	Resolve(name Name) (rune, error)
}

// Set is an immutable Source backed by a map.
type Set struct {
	name   string
	glyphs map[Name]rune
}

var _ Source = (*Set)(nil)

// New builds a Set from base with overrides applied on top. Every required
// name must end up present and every glyph must occupy one terminal cell.
func New(name string, base map[Name]rune, overrides map[Name]rune) (*Set, error) {
	glyphs := make(map[Name]rune, len(base))
	for k, v := range base {
		glyphs[k] = v
	}
	for k, v := range overrides {
		if _, err := ParseName(string(k)); err != nil {
			return nil, err
		}
		glyphs[k] = v
	}

	var errs []error
	for _, n := range Names() {
		r, ok := glyphs[n]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s is missing", ErrUnknownGlyph, n))
			continue
		}
		if narrow.RuneWidth(r) != 1 {
			errs = append(errs, fmt.Errorf("%w: %s (%U) is not a single-cell character", ErrInvalidGlyph, n, r))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("glyph set %q: %w", name, err)
	}
	return &Set{name: name, glyphs: glyphs}, nil
}

// Resolve returns the character for name.
func (s *Set) Resolve(name Name) (rune, error) {
	r, ok := s.glyphs[name]
	if !ok {
		return 0, fmt.Errorf("%w %q in set %q", ErrUnknownGlyph, name, s.name)
	}
	return r, nil
}

// Name returns the set's name.
func (s *Set) Name() string {
	return s.name
}

// With returns a copy of s with overrides applied.
func (s *Set) With(overrides map[Name]rune) (*Set, error) {
	return New(s.name, s.glyphs, overrides)
}

// ParseCodepoint accepts either a single character ("╔") or a hexadecimal
// code point with an optional "U+" or "0x" prefix ("2554", "U+2554").
func ParseCodepoint(s string) (rune, error) {
	if r := []rune(s); len(r) == 1 {
		return r[0], nil
	}
	hex := strings.TrimSpace(s)
	for _, prefix := range []string{"U+", "u+", "0x", "0X"} {
		hex = strings.TrimPrefix(hex, prefix)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected a character or hex code point", ErrInvalidGlyph, s)
	}
	return rune(v), nil
}

// ParseOverrides converts a name → character/code point map, as found in
// configuration files, into glyph overrides.
func ParseOverrides(raw map[string]string) (map[Name]rune, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[Name]rune, len(raw))
	var errs []error
	for _, k := range keys {
		n, err := ParseName(k)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r, err := ParseCodepoint(raw[k])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			continue
		}
		out[n] = r
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
