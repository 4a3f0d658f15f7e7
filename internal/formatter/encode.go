// Package formatter encodes table documents for display.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/boxtable/pkg/config"
)

// Options control encoding.
type Options struct {
	// Indent is the YAML and JSON indent width. Zero means 2.
	Indent int
	// FlowRows writes each YAML row on one line, as [a, b, c].
	FlowRows bool
}

// ParseFormat accepts yaml, yml, toml and json in any case.
func ParseFormat(s string) (config.Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return config.FormatYAML, nil
	case "toml":
		return config.FormatTOML, nil
	case "json":
		return config.FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output %q (expected yaml, toml or json)", s)
	}
}

// Encode renders v in format. The result always ends with a newline.
func Encode(v any, format config.Format, opts Options) ([]byte, error) {
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	switch format {
	case config.FormatYAML, "":
		return encodeYAML(v, indent, opts.FlowRows)
	case config.FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output %q", format)
	}
}

func encodeYAML(v any, indent int, flowRows bool) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if flowRows {
		applyFlowStyle(&node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// applyFlowStyle puts sequences of scalars, such as a header or a row, in
// flow style. Scalars holding newlines stay in block style.
func applyFlowStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.SequenceNode && len(n.Content) > 0 && allInline(n.Content) {
		n.Style = yaml.FlowStyle
		return
	}
	for _, c := range n.Content {
		applyFlowStyle(c)
	}
}

func allInline(nodes []*yaml.Node) bool {
	for _, c := range nodes {
		if c.Kind != yaml.ScalarNode || strings.Contains(c.Value, "\n") {
			return false
		}
	}
	return true
}
