package glyph

import (
	"fmt"
	"sort"
	"strings"
)

// Double outer borders with single inner lines.
var defaultGlyphs = map[Name]rune{
	TopLeft:         '\u2554', // ╔
	TopRight:        '\u2557', // ╗
	TopCross:        '\u2564', // ╤
	BottomLeft:      '\u255A', // ╚
	BottomRight:     '\u255D', // ╝
	BottomCross:     '\u2567', // ╧
	LeftCross:       '\u255F', // ╟
	RightCross:      '\u2562', // ╢
	MiddleCross:     '\u253C', // ┼
	HorizontalHeavy: '\u2550', // ═
	HorizontalLight: '\u2500', // ─
	VerticalLight:   '\u2502', // │
	VerticalHeavy:   '\u2551', // ║
}

var lightGlyphs = map[Name]rune{
	TopLeft:         '┌',
	TopRight:        '┐',
	TopCross:        '┬',
	BottomLeft:      '└',
	BottomRight:     '┘',
	BottomCross:     '┴',
	LeftCross:       '├',
	RightCross:      '┤',
	MiddleCross:     '┼',
	HorizontalHeavy: '─',
	HorizontalLight: '─',
	VerticalLight:   '│',
	VerticalHeavy:   '│',
}

var asciiGlyphs = map[Name]rune{
	TopLeft:         '+',
	TopRight:        '+',
	TopCross:        '+',
	BottomLeft:      '+',
	BottomRight:     '+',
	BottomCross:     '+',
	LeftCross:       '+',
	RightCross:      '+',
	MiddleCross:     '+',
	HorizontalHeavy: '=',
	HorizontalLight: '-',
	VerticalLight:   '|',
	VerticalHeavy:   '|',
}

var builtin = map[string]map[Name]rune{
	"default": defaultGlyphs,
	"light":   lightGlyphs,
	"ascii":   asciiGlyphs,
}

func mustSet(name string) *Set {
	s, err := New(name, builtin[name], nil)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the double-outline set: double borders around the table,
// single lines between rows and columns.
func Default() *Set { return mustSet("default") }

// Light returns a set drawn entirely with single lines.
func Light() *Set { return mustSet("light") }

// ASCII returns a set using only 7-bit characters.
func ASCII() *Set { return mustSet("ascii") }

// SetNames returns the names accepted by Lookup.
func SetNames() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a built-in set by name. An empty name yields Default.
func Lookup(name string) (*Set, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "default"
	}
	if _, ok := builtin[key]; !ok {
		return nil, fmt.Errorf("unknown glyph set %q (available: %s)", name, strings.Join(SetNames(), ", "))
	}
	return mustSet(key), nil
}
