package config

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	// [table] or [[columns]], with bare, quoted or dotted keys. JSON arrays
	// such as [1, 2] do not match.
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, as opposed to the YAML key: value.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// DetectFormat guesses the encoding of a document read without a file
// name. TOML is checked before JSON since a [section] header also starts
// with a bracket. Anything else is YAML.
func DetectFormat(data []byte) Format {
	text := strings.TrimSpace(string(trimBOM(data)))
	if isLikelyTOML(text) {
		return FormatTOML
	}
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return FormatJSON
	}
	return FormatYAML
}

func isLikelyTOML(text string) bool {
	sections, pairs, lines := 0, 0, 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (lines > 0 && pairs > lines/2)
}

var utf8BOM = []byte("\xef\xbb\xbf")

// trimBOM drops a leading UTF-8 byte order mark, which some editors write
// in front of JSON and CSV exports.
func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
