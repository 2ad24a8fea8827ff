package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed. Wide runes count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 1 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "…")
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// pluralize returns "n noun" with a trailing s unless n is one.
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// clamp limits v to [lo, hi]. When hi < lo the result is lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
