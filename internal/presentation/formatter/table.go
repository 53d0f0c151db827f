package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
)

const messageColumn = 4

type TableFormatter struct {
	headers []string
	opts    Options
}

func NewTableFormatter(opts Options) *TableFormatter {
	return &TableFormatter{
		headers: []string{"Severity", "Section", "Rule", "Field", "Message"},
		opts:    opts,
	}
}

func (f *TableFormatter) Format(w io.Writer, report *model.Report) error {
	findings := report.Sorted()

	title := fmt.Sprintf("Project: %s", report.Project)
	if len(report.Sections) > 0 {
		title += fmt.Sprintf(" (%s)", strings.Join(report.Sections, ", "))
	}
	fmt.Fprintln(w, util.Colorize(title, util.ColorBold, f.opts.Color))

	if len(findings) == 0 {
		fmt.Fprintln(w, util.Colorize("✓ No findings", util.ColorGreen, f.opts.Color))
		return nil
	}

	rows := make([][]string, 0, len(findings))
	for _, finding := range findings {
		rows = append(rows, []string{
			finding.Severity.String(),
			finding.Section,
			finding.Rule,
			finding.Field,
			finding.Message,
		})
	}

	widths := f.calculateColumnWidths(rows)
	for _, row := range rows {
		row[messageColumn] = util.Truncate(row[messageColumn], widths[messageColumn])
	}

	f.printBorder(w, widths, "top")
	f.printRow(w, f.headers, widths, "")
	f.printBorder(w, widths, "middle")
	for i, row := range rows {
		f.printRow(w, row, widths, severityColor(findings[i].Severity))
	}
	f.printBorder(w, widths, "bottom")

	fmt.Fprintln(w, summaryLine(report))
	return nil
}

// calculateColumnWidths sizes every column to its content, then shrinks
// the message column to fit the configured width
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if f.opts.Width > 0 {
		// Each column carries two spaces of padding plus one border
		total := 1
		for _, w := range widths {
			total += w + 3
		}
		if over := total - f.opts.Width; over > 0 {
			widths[messageColumn] -= over
			if widths[messageColumn] < 20 {
				widths[messageColumn] = 20
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(w io.Writer, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(w, b.String())
}

// printRow pads before colorizing so escape codes don't skew alignment
func (f *TableFormatter) printRow(w io.Writer, values []string, widths []int, color string) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		cell := util.PadRight(value, widths[i])
		if i == 0 && color != "" {
			cell = util.Colorize(cell, color, f.opts.Color)
		}
		b.WriteString(" " + cell + " │")
	}
	fmt.Fprintln(w, b.String())
}

func severityColor(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return util.ColorRed
	case model.SeverityWarning:
		return util.ColorYellow
	default:
		return util.ColorCyan
	}
}

func summaryLine(report *model.Report) string {
	return fmt.Sprintf("%d errors, %d warnings, %d info",
		report.Count(model.SeverityError),
		report.Count(model.SeverityWarning),
		report.Count(model.SeverityInfo))
}
