// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// sectionPreviewLen truncates section content in the report
	sectionPreviewLen = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLayout outputs a summary of the detected page layout.
func (p *Printer) PrintLayout(l *types.Layout) {
	if l == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:     %dx%d px\n", l.PageWidth, l.PageHeight))
	sb.WriteString(fmt.Sprintf("Columns:  %d", l.Columns))
	if l.Columns == 2 {
		sb.WriteString(fmt.Sprintf(" (divider at x=%d)", l.Divider))
	}
	sb.WriteString("\n\n")

	count := min(len(l.Zones), maxItemsToShow)
	for i := 0; i < count; i++ {
		z := l.Zones[i]
		sb.WriteString(fmt.Sprintf("%-4s %-14s col %d  rank %d  %dx%d@%d,%d\n",
			z.ID, z.Kind, z.Column, z.ReadingRank, z.Bounds.Width, z.Bounds.Height, z.Bounds.X, z.Bounds.Y))
	}
	if len(l.Zones) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more zones\n", len(l.Zones)-maxItemsToShow))
	}

	p.printBox("PAGE LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSectionSet outputs the identified sections with block counts and
// confidences.
func (p *Printer) PrintSectionSet(set *types.SectionSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	for _, label := range set.Labels() {
		rec := set.Records[label]
		flagged := 0
		for _, b := range rec.Blocks {
			if b.Flagged {
				flagged++
			}
		}
		sb.WriteString(fmt.Sprintf("%-15s %d blocks  conf %.2f", label, len(rec.Blocks), rec.Confidence))
		if flagged > 0 {
			sb.WriteString(fmt.Sprintf("  (%d flagged)", flagged))
		}
		sb.WriteString("\n")
	}
	if len(set.Overflow) > 0 {
		sb.WriteString(fmt.Sprintf("%-15s %d blocks\n", "overflow", len(set.Overflow)))
	}
	if sb.Len() == 0 {
		sb.WriteString("no sections identified\n")
	}

	p.printBox("IDENTIFIED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidate outputs the extracted candidate fields.
func (p *Printer) PrintCandidate(info *types.CandidateInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	fields := []struct{ name, value string }{
		{"Name", info.Name},
		{"Title", info.Title},
		{"Email", info.Email},
		{"Phone", info.Phone},
		{"LinkedIn", info.LinkedIn},
		{"GitHub", info.GitHub},
		{"Location", info.Location},
	}
	for _, f := range fields {
		if f.value != "" {
			sb.WriteString(fmt.Sprintf("%-9s %s\n", f.name+":", f.value))
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("no candidate fields extracted\n")
	}

	p.printBox("CANDIDATE INFO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport renders the user-facing extraction report: quality scores
// with their band, section previews, warnings and recommendations.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(result *types.PipelineResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Overall:  %.2f (%s)\n", result.Overall(), result.QualityBand()))
	sb.WriteString(fmt.Sprintf("Time:     %.2fs\n", result.ProcessingTime))

	if result.CandidateInfo.Name != "" {
		sb.WriteString(fmt.Sprintf("\nCandidate: %s", result.CandidateInfo.Name))
		if result.CandidateInfo.Email != "" {
			sb.WriteString(fmt.Sprintf(" <%s>", result.CandidateInfo.Email))
		}
		sb.WriteString("\n")
	}

	if len(result.Sections) > 0 {
		sb.WriteString("\nSections:\n")
		for _, label := range types.AllSectionLabels() {
			content, ok := result.Sections[label]
			if !ok {
				continue
			}
			preview := strings.ReplaceAll(content, "\n", " ")
			if len(preview) > sectionPreviewLen {
				preview = preview[:sectionPreviewLen-3] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %-15s %s\n", label, preview))
		}
	}
	if len(result.Overflow) > 0 {
		sb.WriteString(fmt.Sprintf("\nOverflow blocks: %d\n", len(result.Overflow)))
	}

	p.printBox("EXTRACTION REPORT", strings.TrimSuffix(sb.String(), "\n"))

	for _, w := range result.Warnings {
		fmt.Fprintf(p.out, "⚠ %s\n", w)
	}
	for _, rec := range result.Recommendations {
		fmt.Fprintf(p.out, "→ %s\n", rec)
	}
}
