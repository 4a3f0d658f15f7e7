// Package shaper provides the positional truncation and padding primitives
// used to fit text into fixed-width columns.
//
// Lengths are counted in Unicode code points, not display cells. Truncation
// is purely positional and never looks at word boundaries.
package shaper

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultThreshold is the number of characters a string may exceed its
// maximum length before middle-of-string truncation is used.
const DefaultThreshold = 5

// DefaultJoin is the join text conventionally used for middle truncation.
const DefaultJoin = "..."

// ErrInvalidAlignment is returned by ParseAlignment for unknown names.
var ErrInvalidAlignment = errors.New("invalid alignment")

// Alignment controls where padding goes when text is shorter than its field.
type Alignment int

const (
	// AlignLeft keeps text on the left and pads on the right.
	AlignLeft Alignment = iota
	// AlignRight keeps text on the right and pads on the left.
	AlignRight
	// AlignCenter splits padding between both sides, extra on the right.
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment converts "left", "right" or "center" (case-insensitive) to
// an Alignment. An empty string yields AlignLeft.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center", "centre":
		return AlignCenter, nil
	}
	return AlignLeft, fmt.Errorf("%w %q (expected left, right or center)", ErrInvalidAlignment, s)
}

// Options holds the optional knobs of Truncate and Pad.
type Options struct {
	// Offset is the position in the string to start from.
	Offset int
	// Join enables middle-of-string truncation when non-empty.
	Join string
	// Threshold is how far past the maximum length a string must be before
	// middle truncation kicks in. Zero means DefaultThreshold.
	Threshold int
	// Append is added after end-of-string truncation.
	Append string
	// Align is used by Pad.
	Align Alignment
	// Pad is the padding character used by Pad. Zero means a space.
	Pad rune
}

func (o Options) threshold() int {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

func (o Options) padRune() rune {
	if o.Pad == 0 {
		return ' '
	}
	return o.Pad
}

// Len returns the length of s in code points.
func Len(s string) int {
	return len([]rune(s))
}

// slice returns up to n runes of r starting at start, clamped to r's bounds.
func slice(r []rune, start, n int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(r) || n <= 0 {
		return ""
	}
	end := start + n
	if end > len(r) {
		end = len(r)
	}
	return string(r[start:end])
}

// TruncateEnd returns the part of s that starts at offset and is
// maxLen-len(appendText) characters long, followed by appendText.
//
// If appendText does not fit into maxLen at all it is dropped and s is cut
// to maxLen instead. A non-positive maxLen yields an empty string.
func TruncateEnd(s string, maxLen, offset int, appendText string) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	alen := Len(appendText)
	if alen > maxLen {
		return slice(r, offset, maxLen)
	}
	return slice(r, offset, maxLen-alen) + appendText
}

// TruncateMiddle shortens s by keeping a prefix and a suffix joined by join,
// as long as s is more than threshold characters over maxLen. Strings within
// the threshold are cut at the end instead, and strings that already fit are
// returned unchanged.
func TruncateMiddle(s string, maxLen, offset int, join string, threshold int) string {
	return Truncate(s, maxLen, Options{Offset: offset, Join: join, Threshold: threshold})
}

// Truncate shortens s to at most maxLen characters using the options.
//
// When s is more than opts.Threshold characters over maxLen, the first half
// (starting at opts.Offset) and the last half of s are kept with opts.Join in
// between. Each half is floor(maxLen/2) - (1 + len(join)) characters long.
// Otherwise s is end-truncated from opts.Offset with opts.Append.
func Truncate(s string, maxLen int, opts Options) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if len(r)-maxLen <= opts.threshold() {
		return TruncateEnd(s, maxLen, opts.Offset, opts.Append)
	}

	margin := 1 + Len(opts.Join)
	half := maxLen/2 - margin
	if half < 0 {
		half = 0
	}
	head := slice(r, opts.Offset, half)
	tail := slice(r, len(r)-half, half)
	return head + opts.Join + tail
}

// Pad fits s into a field of exactly length characters.
//
// An offset at or past the end of s produces a blank field. Otherwise s is
// truncated (middle truncation when opts.Join is set, end truncation when s
// is longer than length) and then padded according to opts.Align.
func Pad(s string, length int, opts Options) string {
	if length <= 0 {
		return ""
	}
	if opts.Offset >= Len(s) {
		return fill(length, opts.padRune())
	}

	switch {
	case opts.Join != "":
		s = Truncate(s, length, opts)
	case Len(s) > length:
		s = TruncateEnd(s, length, opts.Offset, opts.Append)
	}
	if Len(s) > length {
		s = slice([]rune(s), 0, length)
	}
	return align(s, length, opts.Align, opts.padRune())
}

func align(s string, length int, a Alignment, pad rune) string {
	missing := length - Len(s)
	if missing <= 0 {
		return s
	}
	switch a {
	case AlignRight:
		return fill(missing, pad) + s
	case AlignCenter:
		left := missing / 2
		return fill(left, pad) + s + fill(missing-left, pad)
	default:
		return s + fill(missing, pad)
	}
}

func fill(n int, pad rune) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(pad), n)
}
