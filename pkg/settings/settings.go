// Package settings holds build metadata and the options of a single CLI run.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "boxtable"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-dev",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, version and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options of one invocation, after flags and config file have
// been merged. Empty strings mean "use the document's value".
type Run struct {
	MinLogLevel int8
	NoColor     bool
	Multiline   bool
	Glyphs      string
	Border      string
	Marker      *string
	Join        string
	Widths      []int
	Aligns      []string
	HeaderColor string
	CSV         bool
	NoHeader    bool
	Markdown    bool
	Defaults    string
	Where       string
	Limit       int
	Offset      int
	Tail        int
}

// NewCliParams returns the defaults used by the CLI before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		HeaderColor: "light-white",
	}
}
