// Package config reads declarative table documents (YAML, TOML or JSON) and
// turns them into validated tables.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/boxtable/pkg/color"
	"github.com/oakwood-commons/boxtable/pkg/glyph"
	"github.com/oakwood-commons/boxtable/pkg/logger"
	"github.com/oakwood-commons/boxtable/pkg/shaper"
	"github.com/oakwood-commons/boxtable/pkg/table"
)

// ErrInvalidDocument wraps every validation failure.
var ErrInvalidDocument = errors.New("invalid table document")

// Format names a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Document is the on-disk description of a table and, optionally, its data.
type Document struct {
	Table   TableSettings `yaml:"table" toml:"table" json:"table"`
	Columns []ColumnDef   `yaml:"columns" toml:"columns" json:"columns"`
	Header  []string      `yaml:"header,omitempty" toml:"header,omitempty" json:"header,omitempty"`
	Rows    [][]string    `yaml:"rows,omitempty" toml:"rows,omitempty" json:"rows,omitempty"`
}

// TableSettings mirrors table.Config with every field optional.
type TableSettings struct {
	Pad            *string           `yaml:"pad,omitempty" toml:"pad,omitempty" json:"pad,omitempty"`
	Marker         *string           `yaml:"marker,omitempty" toml:"marker,omitempty" json:"marker,omitempty"`
	Terminator     *string           `yaml:"terminator,omitempty" toml:"terminator,omitempty" json:"terminator,omitempty"`
	Border         string            `yaml:"border,omitempty" toml:"border,omitempty" json:"border,omitempty"`
	Multiline      bool              `yaml:"multiline,omitempty" toml:"multiline,omitempty" json:"multiline,omitempty"`
	HeaderColor    string            `yaml:"header_color,omitempty" toml:"header_color,omitempty" json:"header_color,omitempty"`
	NormalColor    string            `yaml:"normal_color,omitempty" toml:"normal_color,omitempty" json:"normal_color,omitempty"`
	Join           string            `yaml:"join,omitempty" toml:"join,omitempty" json:"join,omitempty"`
	Threshold      *int              `yaml:"threshold,omitempty" toml:"threshold,omitempty" json:"threshold,omitempty"`
	Glyphs         string            `yaml:"glyphs,omitempty" toml:"glyphs,omitempty" json:"glyphs,omitempty"`
	GlyphOverrides map[string]string `yaml:"glyph_overrides,omitempty" toml:"glyph_overrides,omitempty" json:"glyph_overrides,omitempty"`
	Colors         map[string]string `yaml:"colors,omitempty" toml:"colors,omitempty" json:"colors,omitempty"`
}

// ColumnDef describes one column. A missing width means table.DefaultWidth.
type ColumnDef struct {
	Width *int   `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty"`
	Align string `yaml:"align,omitempty" toml:"align,omitempty" json:"align,omitempty"`
}

// Load reads and parses the document at path.
func Load(ctx context.Context, path string) (*Document, error) {
	lgr := logger.FromContext(ctx)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table document: %w", err)
	}
	format := FormatFromPath(path)
	lgr.V(1).Info("loading table document", "path", path, "format", format, "bytes", len(data))

	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes data in the given format. It does not validate.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	data = trimBOM(data)
	switch format {
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s document: %w", format, err)
	}
	return &doc, nil
}

// Validate reports every problem in the document at once.
func (d *Document) Validate() error {
	var errs []error
	if len(d.Columns) == 0 {
		errs = append(errs, errors.New("at least one column is required"))
	}
	for i, c := range d.Columns {
		if c.Width != nil && *c.Width <= 0 {
			errs = append(errs, fmt.Errorf("column %d: width must be positive, got %d", i+1, *c.Width))
		}
		if _, err := shaper.ParseAlignment(c.Align); err != nil {
			errs = append(errs, fmt.Errorf("column %d: %w", i+1, err))
		}
	}

	s := d.Table
	if s.Pad != nil && shaper.Len(*s.Pad) != 1 {
		errs = append(errs, fmt.Errorf("pad must be exactly one character, got %q", *s.Pad))
	}
	if _, err := table.ParseBorderPolicy(s.Border); err != nil {
		errs = append(errs, err)
	}
	if s.Threshold != nil && *s.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must not be negative, got %d", *s.Threshold))
	}
	if _, err := glyph.Lookup(s.Glyphs); err != nil {
		errs = append(errs, err)
	}
	if _, err := glyph.ParseOverrides(s.GlyphOverrides); err != nil {
		errs = append(errs, err)
	}
	palette := color.NewPalette(s.Colors)
	for _, c := range []struct{ key, value string }{{"header_color", s.HeaderColor}, {"normal_color", s.NormalColor}} {
		if _, err := palette.Code(c.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.key, err))
		}
	}

	want := len(d.Columns)
	if d.Header != nil && len(d.Header) != want {
		errs = append(errs, fmt.Errorf("header: %w", &table.RowArityError{Got: len(d.Header), Want: want}))
	}
	for i, row := range d.Rows {
		if len(row) != want {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, &table.RowArityError{Got: len(row), Want: want}))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// TableConfig converts the settings into a table.Config, resolving color
// names through src.
func (d *Document) TableConfig(src color.Source) (table.Config, error) {
	cfg := table.DefaultConfig()
	s := d.Table
	if s.Pad != nil {
		if r := []rune(*s.Pad); len(r) == 1 {
			cfg.Pad = r[0]
		}
	}
	if s.Marker != nil {
		cfg.Marker = *s.Marker
	}
	if s.Terminator != nil {
		cfg.Terminator = *s.Terminator
	}
	border, err := table.ParseBorderPolicy(s.Border)
	if err != nil {
		return cfg, err
	}
	cfg.Border = border
	cfg.Multiline = s.Multiline
	cfg.Join = s.Join
	if s.Threshold != nil {
		cfg.Threshold = *s.Threshold
	}

	if cfg.HeaderColor, err = src.Code(s.HeaderColor); err != nil {
		return cfg, fmt.Errorf("header_color: %w", err)
	}
	if s.NormalColor != "" {
		if cfg.NormalColor, err = src.Code(s.NormalColor); err != nil {
			return cfg, fmt.Errorf("normal_color: %w", err)
		}
	} else {
		cfg.NormalColor = src.Reset()
	}
	return cfg, nil
}

// Palette returns the color palette extended with the document's colors.
func (d *Document) Palette() *color.Palette {
	return color.NewPalette(d.Table.Colors)
}

// GlyphSet returns the named glyph set with the document's overrides.
func (d *Document) GlyphSet() (*glyph.Set, error) {
	set, err := glyph.Lookup(d.Table.Glyphs)
	if err != nil {
		return nil, err
	}
	overrides, err := glyph.ParseOverrides(d.Table.GlyphOverrides)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return set, nil
	}
	return set.With(overrides)
}

// ColumnSpecs converts the column definitions.
func (d *Document) ColumnSpecs() ([]table.ColumnSpec, error) {
	specs := make([]table.ColumnSpec, 0, len(d.Columns))
	for i, c := range d.Columns {
		align, err := shaper.ParseAlignment(c.Align)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		spec := table.ColumnSpec{Width: table.DefaultWidth, Align: align}
		if c.Width != nil {
			if *c.Width <= 0 {
				return nil, fmt.Errorf("column %d: %w: %d", i+1, table.ErrInvalidWidth, *c.Width)
			}
			spec.Width = *c.Width
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Build validates the document and returns a table ready to render. A nil
// src uses the document's palette.
func (d *Document) Build(src color.Source) (*table.Table, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = d.Palette()
	}
	cfg, err := d.TableConfig(src)
	if err != nil {
		return nil, err
	}
	set, err := d.GlyphSet()
	if err != nil {
		return nil, err
	}
	specs, err := d.ColumnSpecs()
	if err != nil {
		return nil, err
	}
	return table.New(cfg, table.WithGlyphs(set), table.WithColumns(specs...))
}
