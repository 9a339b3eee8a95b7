// Package observability renders analysis results for terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/skills"
)

const (
	// boxWidth is the total width of a rendered box, borders included.
	boxWidth = 60
	// barWidth is the number of cells in the similarity bar.
	barWidth = 40
)

// Printer writes boxed, human-readable summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a titled box. Lines wider than the box are word-wrapped.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", inner, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %-*s │\n", inner, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs the score, tier, feedback and skill breakdown of an analysis.
func (p *Printer) PrintMatchResult(result *matching.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match:    %.2f%%\n", result.SimilarityPercent)
	fmt.Fprintf(&sb, "          %s\n", bar(result.SimilarityPercent))
	fmt.Fprintf(&sb, "Tier:     %s\n", result.Tier)
	sb.WriteString("\n")
	sb.WriteString(result.Message)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Resume skills:      %s\n", joinSkills(result.DocumentSkills))
	fmt.Fprintf(&sb, "Job skills:         %s\n", joinSkills(result.DescriptionSkills))
	fmt.Fprintf(&sb, "Missing skills:     %s", joinSkills(result.MissingSkills))

	if len(result.Warnings) > 0 {
		sb.WriteString("\n\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(&sb, "\n  ! %s", w)
		}
	}

	p.printBox("RESUME MATCH", sb.String())
}

// PrintSkills outputs a titled list of skills, one per line.
func (p *Printer) PrintSkills(title string, items []string) {
	if len(items) == 0 {
		p.printBox(title, "(none)")
		return
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "• %s", item)
	}
	p.printBox(title, sb.String())
}

func joinSkills(set skills.Set) string {
	if set.Len() == 0 {
		return "(none)"
	}
	return strings.Join(set.Slice(), ", ")
}

func bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// wrap splits line into chunks of at most width runes, breaking on spaces where
// possible.
func wrap(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}

	var out []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				out = append(out, string(current))
				current = nil
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			out = append(out, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}
