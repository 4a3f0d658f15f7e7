// Package limiter selects the subset of table rows the CLI renders.
package limiter

import (
	"fmt"
)

// Config holds the row-limiting parameters.
type Config struct {
	Limit  int // Show only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Show only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations.
// Limit and Tail are mutually exclusive, Offset is ignored with Tail and
// every value must be non-negative.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// bounds returns the half-open range of a length-n slice to keep.
func (c Config) bounds(n int) (int, int) {
	if c.Tail > 0 {
		start := n - c.Tail
		if start < 0 {
			start = 0
		}
		return start, n
	}

	start := c.Offset
	if start > n {
		start = n
	}
	end := n
	if c.Limit > 0 && start+c.Limit < n {
		end = start + c.Limit
	}
	return start, end
}

// Apply returns the selected rows. The result shares rows' backing array.
func Apply[T any](c Config, rows []T) []T {
	if !c.IsActive() {
		return rows
	}
	start, end := c.bounds(len(rows))
	return rows[start:end]
}

// Summary describes what was dropped, for debug logging.
func (c Config) Summary(total int) string {
	start, end := c.bounds(total)
	return fmt.Sprintf("rows %d-%d of %d", start+1, end, total)
}
