package format

import (
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/mattn/go-runewidth"
)

// HumanSize renders a byte count in a compact human-readable form (e.g. "1.2MB").
func HumanSize(bytes int64) string {
	return units.HumanSize(float64(bytes))
}

// Timestamp renders t in the local timezone for table output.
func Timestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// PadRight pads s with spaces so its terminal display width reaches width.
// Wide runes (CJK, emoji) count as their rendered width, not their rune count.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// Truncate shortens s to at most maxWidth display columns, appending an
// ellipsis when anything was cut.
func Truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
