package formatter

import (
	"encoding/csv"
	"io"

	"github.com/penwyp/cydconf/internal/core/model"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, report *model.Report) error {
	cw := csv.NewWriter(w)

	headers := []string{"Project", "Severity", "Section", "Rule", "Field", "Message"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, finding := range report.Sorted() {
		record := []string{
			report.Project,
			finding.Severity.String(),
			finding.Section,
			finding.Rule,
			finding.Field,
			finding.Message,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
