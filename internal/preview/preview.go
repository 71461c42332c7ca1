// Package preview renders the line diff shown by a dry run.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/vvka-141/buildmeta/internal/tui"
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 2

const elision = "  ..."

type op int

const (
	opEqual op = iota
	opDelete
	opInsert
)

type line struct {
	op   op
	text string
}

// Render returns a line diff of before and after. Removed lines start with
// "- ", added lines with "+ " and context lines with two spaces. Runs of
// unchanged lines longer than the context are elided. Identical inputs
// render as the empty string.
func Render(before, after string, styled bool) string {
	lines := diffLines(before, after)

	show := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.op == opEqual {
			continue
		}
		changed = true
		lo, hi := max(0, i-ContextLines), min(len(lines)-1, i+ContextLines)
		for j := lo; j <= hi; j++ {
			show[j] = true
		}
	}
	if !changed {
		return ""
	}

	var b strings.Builder
	skipped := false
	for i, l := range lines {
		if !show[i] {
			skipped = true
			continue
		}
		if skipped {
			writeLine(&b, elision, tui.ContextStyle, styled)
			skipped = false
		}
		switch l.op {
		case opDelete:
			writeLine(&b, "- "+l.text, tui.RemovedStyle, styled)
		case opInsert:
			writeLine(&b, "+ "+l.text, tui.AddedStyle, styled)
		default:
			writeLine(&b, "  "+l.text, tui.ContextStyle, styled)
		}
	}
	if skipped {
		writeLine(&b, elision, tui.ContextStyle, styled)
	}
	return b.String()
}

func diffLines(before, after string) []line {
	dmp := diffpatch.New()
	a, b, index := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out []line
	for _, d := range diffs {
		kind := opEqual
		switch d.Type {
		case diffpatch.DiffDelete:
			kind = opDelete
		case diffpatch.DiffInsert:
			kind = opInsert
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, line{op: kind, text: text})
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimRight(p, "\r\n")
	}
	return parts
}

func writeLine(b *strings.Builder, s string, style lipgloss.Style, styled bool) {
	if styled {
		s = style.Render(s)
	}
	b.WriteString(s)
	b.WriteByte('\n')
}
