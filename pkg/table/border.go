package table

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/boxtable/pkg/glyph"
)

// Position selects which horizontal border is drawn.
type Position int

const (
	PositionTop Position = iota
	PositionMiddle
	PositionBottom
)

func (p Position) String() string {
	switch p {
	case PositionTop:
		return "top"
	case PositionMiddle:
		return "middle"
	case PositionBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// BorderPolicy says where Row draws middle borders. It is a bit set.
type BorderPolicy int

const (
	BorderNone   BorderPolicy = 0
	BorderBefore BorderPolicy = 1 << 0
	BorderAfter  BorderPolicy = 1 << 1
	BorderBoth                = BorderBefore | BorderAfter
)

// ParseBorderPolicy accepts none, before, after and both.
func ParseBorderPolicy(s string) (BorderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BorderNone, nil
	case "before":
		return BorderBefore, nil
	case "after":
		return BorderAfter, nil
	case "both":
		return BorderBoth, nil
	}
	return BorderNone, fmt.Errorf("%w: border policy %q (expected none, before, after or both)", ErrInvalidConfig, s)
}

func (b BorderPolicy) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderBefore:
		return "before"
	case BorderAfter:
		return "after"
	case BorderBoth:
		return "both"
	default:
		return fmt.Sprintf("BorderPolicy(%d)", int(b))
	}
}

// glyphs holds the characters resolved once at construction.
type glyphs struct {
	topLeft, topRight, topCross          string
	bottomLeft, bottomRight, bottomCross string
	leftCross, rightCross, middleCross   string
	hHeavy, hLight, vLight, vHeavy       string
}

func resolveGlyphs(src glyph.Source) (glyphs, error) {
	var g glyphs
	targets := map[glyph.Name]*string{
		glyph.TopLeft:         &g.topLeft,
		glyph.TopRight:        &g.topRight,
		glyph.TopCross:        &g.topCross,
		glyph.BottomLeft:      &g.bottomLeft,
		glyph.BottomRight:     &g.bottomRight,
		glyph.BottomCross:     &g.bottomCross,
		glyph.LeftCross:       &g.leftCross,
		glyph.RightCross:      &g.rightCross,
		glyph.MiddleCross:     &g.middleCross,
		glyph.HorizontalHeavy: &g.hHeavy,
		glyph.HorizontalLight: &g.hLight,
		glyph.VerticalLight:   &g.vLight,
		glyph.VerticalHeavy:   &g.vHeavy,
	}
	for _, name := range glyph.Names() {
		r, err := src.Resolve(name)
		if err != nil {
			return g, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		*targets[name] = string(r)
	}
	return g, nil
}

// edges returns the fill, left, cross and right glyphs for a border.
func (g glyphs) edges(pos Position) (fill, left, cross, right string) {
	switch pos {
	case PositionTop:
		return g.hHeavy, g.topLeft, g.topCross, g.topRight
	case PositionBottom:
		return g.hHeavy, g.bottomLeft, g.bottomCross, g.bottomRight
	default:
		return g.hLight, g.leftCross, g.middleCross, g.rightCross
	}
}

// Border draws a horizontal line across all columns. Each column spans its
// width plus the two spaces around cell content.
func (t *Table) Border(pos Position) string {
	fill, left, cross, right := t.glyphs.edges(pos)

	var b strings.Builder
	for i, col := range t.columns {
		if i == 0 {
			b.WriteString(left)
		} else {
			b.WriteString(cross)
		}
		b.WriteString(strings.Repeat(fill, col.width+2))
		if i == len(t.columns)-1 {
			b.WriteString(right)
		}
	}
	b.WriteString(t.cfg.Terminator)
	return b.String()
}

// Top draws the border above the first row.
func (t *Table) Top() string {
	return t.Border(PositionTop)
}

// Bottom draws the border below the last row.
func (t *Table) Bottom() string {
	return t.Border(PositionBottom)
}
