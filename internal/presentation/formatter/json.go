package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/cydconf/internal/core/model"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonReport struct {
	Project  string          `json:"project"`
	Sections []string        `json:"sections"`
	Errors   int             `json:"errors"`
	Warnings int             `json:"warnings"`
	Info     int             `json:"info"`
	Findings []model.Finding `json:"findings"`
}

func (f *JSONFormatter) Format(w io.Writer, report *model.Report) error {
	out := jsonReport{
		Project:  report.Project,
		Sections: report.Sections,
		Errors:   report.Count(model.SeverityError),
		Warnings: report.Count(model.SeverityWarning),
		Info:     report.Count(model.SeverityInfo),
		Findings: report.Sorted(),
	}
	if out.Sections == nil {
		out.Sections = []string{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
