// Package diff compares previously generated code with a fresh rendering.
package diff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Compare returns a line diff from existing to generated and whether the two
// differ. Removed lines are prefixed with "-", added lines with "+" and
// unchanged lines with a space. With colored set the diff is rendered as
// ANSI-coloured text instead.
func Compare(existing, generated string, colored bool) (string, bool) {
	if existing == generated {
		return "", false
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(existing, generated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	if colored {
		return dmp.DiffPrettyText(diffs), true
	}

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			out.WriteString(prefix)
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	return out.String(), true
}

// splitLines splits text into lines without their terminators. A missing
// final newline still yields the last line.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" {
			continue
		}
		out = append(out, strings.TrimSuffix(l, "\n"))
	}
	return out
}
