package shaper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in      string
		want    Alignment
		wantErr bool
	}{
		{in: "", want: AlignLeft},
		{in: "left", want: AlignLeft},
		{in: "RIGHT", want: AlignRight},
		{in: " center ", want: AlignCenter},
		{in: "middle", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlignment(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAlignment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "center", AlignCenter.String())
	assert.Equal(t, "Alignment(9)", Alignment(9).String())
}

func TestTruncateEnd(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		offset int
		append string
		want   string
	}{
		{name: "hard cut", s: "Hello world", maxLen: 5, want: "Hello"},
		{name: "with marker", s: "Hello world", maxLen: 8, append: "~", want: "Hello w~"},
		{name: "offset", s: "Hello world", maxLen: 5, offset: 6, want: "world"},
		{name: "offset near end", s: "Hello world", maxLen: 5, offset: 9, want: "ld"},
		{name: "offset past end keeps marker", s: "abc", maxLen: 3, offset: 5, append: "~", want: "~"},
		{name: "marker fills budget", s: "abcdef", maxLen: 2, append: "..", want: ".."},
		{name: "marker too long is dropped", s: "abcdef", maxLen: 2, append: "...", want: "ab"},
		{name: "zero budget", s: "abcdef", maxLen: 0, append: "~", want: ""},
		{name: "runes", s: "héllo wörld", maxLen: 6, append: "~", want: "héllo~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateEnd(tt.s, tt.maxLen, tt.offset, tt.append))
		})
	}
}

func TestTruncateEndBudget(t *testing.T) {
	s := "The quick brown fox jumps over the lazy dog"
	for maxLen := 3; maxLen <= Len(s); maxLen++ {
		for _, marker := range []string{"", "~", "..."} {
			got := TruncateEnd(s, maxLen, 0, marker)
			require.Equal(t, maxLen, Len(got), "maxLen=%d marker=%q", maxLen, marker)
			assert.True(t, strings.HasSuffix(got, marker))
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	t.Run("alphabet over threshold", func(t *testing.T) {
		got := TruncateMiddle("abcdefghijklmnopqrstuvwxyz", 10, 0, "...", 5)
		assert.Contains(t, got, "...")
		assert.LessOrEqual(t, Len(got), 10)
		assert.Equal(t, "a...z", got)
	})

	t.Run("keeps prefix and suffix", func(t *testing.T) {
		got := TruncateMiddle("/usr/local/share/applications/boxtable.desktop", 20, 0, "..", 5)
		// half = 20/2 - (1+2) = 7
		assert.Equal(t, "/usr/lo..desktop", got)
	})

	t.Run("prefix honours offset", func(t *testing.T) {
		got := TruncateMiddle("0123456789abcdefghijklmnop", 14, 2, "-", 5)
		// half = 14/2 - 2 = 5
		assert.Equal(t, "23456-lmnop", got)
	})

	t.Run("fits unchanged", func(t *testing.T) {
		assert.Equal(t, "short", TruncateMiddle("short", 10, 3, "...", 5))
	})

	t.Run("within threshold falls back to end cut", func(t *testing.T) {
		got := TruncateMiddle("abcdefghijklm", 10, 0, "...", 5)
		assert.Equal(t, "abcdefghij", got)
	})

	t.Run("tiny width clamps half", func(t *testing.T) {
		got := TruncateMiddle("abcdefghijklmnopqrstuvwxyz", 4, 0, "...", 1)
		assert.Equal(t, "...", got)
	})
}

func TestTruncateKeepsAppendOnFallback(t *testing.T) {
	got := Truncate("abcdefghijkl", 10, Options{Join: "...", Append: "~"})
	assert.Equal(t, "abcdefghi~", got)
}

func TestPad(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		length int
		opts   Options
		want   string
	}{
		{name: "left", s: "One", length: 8, want: "One     "},
		{name: "right", s: "First one", length: 12, opts: Options{Align: AlignRight}, want: "   First one"},
		{name: "center even", s: "ab", length: 6, opts: Options{Align: AlignCenter}, want: "  ab  "},
		{name: "center odd extra right", s: "Foo bar", length: 16, opts: Options{Align: AlignCenter}, want: "    Foo bar     "},
		{name: "pad char", s: "x", length: 4, opts: Options{Pad: '.'}, want: "x..."},
		{name: "end truncation with marker", s: "Hello world", length: 8, opts: Options{Append: "~"}, want: "Hello w~"},
		{name: "offset page", s: "Hello world", length: 5, opts: Options{Offset: 5}, want: " worl"},
		{name: "last page", s: "Hello world", length: 5, opts: Options{Offset: 10}, want: "d    "},
		{name: "offset past end is blank", s: "Hello", length: 5, opts: Options{Offset: 5}, want: "     "},
		{name: "blank uses pad char", s: "", length: 3, opts: Options{Pad: '-'}, want: "---"},
		{name: "middle truncation", s: "abcdefghijklmnopqrstuvwxyz", length: 10, opts: Options{Join: "..."}, want: "a...z     "},
		{name: "middle truncation right", s: "abcdefghijklmnopqrstuvwxyz", length: 10, opts: Options{Join: "...", Align: AlignRight}, want: "     a...z"},
		{name: "oversized join is cut", s: "abcdefghijklmnopqrstuvwxyz", length: 2, opts: Options{Join: "...", Threshold: 1}, want: ".."},
		{name: "zero length", s: "abc", length: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pad(tt.s, tt.length, tt.opts))
		})
	}
}

func TestPadAlwaysExactWidth(t *testing.T) {
	inputs := []string{"", "a", "Hello world", "It's the end of the", strings.Repeat("x", 100), "ünïcödé"}
	aligns := []Alignment{AlignLeft, AlignRight, AlignCenter}
	optionSets := []Options{
		{},
		{Append: "~"},
		{Append: "[...]"},
		{Join: "..."},
		{Join: "...", Threshold: 1, Append: "~"},
		{Offset: 3},
		{Offset: 50},
	}
	for _, s := range inputs {
		for width := 1; width <= 20; width++ {
			for _, a := range aligns {
				for _, o := range optionSets {
					o.Align = a
					got := Pad(s, width, o)
					require.Equal(t, width, Len(got), "s=%q width=%d opts=%+v", s, width, o)
				}
			}
		}
	}
}

func TestPadShortStrings(t *testing.T) {
	s := "boxtable"
	for width := Len(s); width < 20; width++ {
		assert.Equal(t, s+strings.Repeat(" ", width-Len(s)), Pad(s, width, Options{Align: AlignLeft}))
		assert.Equal(t, strings.Repeat(" ", width-Len(s))+s, Pad(s, width, Options{Align: AlignRight}))
	}
}
