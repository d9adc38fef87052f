package diagnostics

import (
	"strings"
	"unicode/utf8"

	"eel/interpreter-go/pkg/token"
)

// Excerpt renders the source lines covered by start..end with a caret row
// under each one. Tabs are dropped so the carets stay aligned.
func Excerpt(start, end token.Position) string {
	text := start.Text
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	first := clamp(start.Line, 0, len(lines)-1)
	last := clamp(end.Line, first, len(lines)-1)

	var b strings.Builder
	for ln := first; ln <= last; ln++ {
		line := strings.ReplaceAll(strings.TrimRight(lines[ln], "\r"), "\t", "")
		width := utf8.RuneCountInString(line)
		colStart := 0
		if ln == first {
			colStart = clamp(start.Column, 0, width)
		}
		colEnd := width
		if ln == last {
			colEnd = clamp(end.Column, colStart, width+1)
		}
		carets := colEnd - colStart
		if carets < 1 {
			carets = 1
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", colStart))
		b.WriteString(strings.Repeat("^", carets))
		if ln != last {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
