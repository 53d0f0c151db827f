package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/cydconf/internal/core/model"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ReportFormatter writes a validation report
type ReportFormatter interface {
	Format(w io.Writer, report *model.Report) error
}

// Options tune the table output
type Options struct {
	Color bool
	// Width caps the table width; 0 means unlimited
	Width int
}

// New returns the formatter for the named output format
func New(format string, opts Options) (ReportFormatter, error) {
	switch format {
	case FormatTable, "":
		return NewTableFormatter(opts), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatCSV:
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", format)
	}
}
