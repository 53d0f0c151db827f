package rules

import (
	"fmt"

	"github.com/penwyp/cydconf/internal/core/model"
)

// Rule checks one property of a project
type Rule interface {
	// Name returns the unique rule name used in findings and --skip
	Name() string

	// Section returns the project section the rule inspects
	Section() string

	// Description returns a human-readable summary of the property
	Description() string

	// Check returns the findings for p. Rules ignore sections that are absent.
	Check(p *model.Project) []model.Finding
}

// funcRule adapts a check function to the Rule interface
type funcRule struct {
	name        string
	section     string
	description string
	check       func(p *model.Project) []model.Finding
}

func (r *funcRule) Name() string        { return r.name }
func (r *funcRule) Section() string     { return r.section }
func (r *funcRule) Description() string { return r.description }

func (r *funcRule) Check(p *model.Project) []model.Finding {
	if p == nil {
		return nil
	}
	return r.check(p)
}

// findings accumulates results for a single rule
type findings struct {
	rule    string
	section string
	out     []model.Finding
}

func newFindings(rule, section string) *findings {
	return &findings{rule: rule, section: section}
}

func (f *findings) add(sev model.Severity, field, format string, args ...interface{}) {
	f.out = append(f.out, model.Finding{
		Rule:     f.rule,
		Section:  f.section,
		Field:    field,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (f *findings) errorf(field, format string, args ...interface{}) {
	f.add(model.SeverityError, field, format, args...)
}

func (f *findings) warnf(field, format string, args ...interface{}) {
	f.add(model.SeverityWarning, field, format, args...)
}

func (f *findings) infof(field, format string, args ...interface{}) {
	f.add(model.SeverityInfo, field, format, args...)
}

func (f *findings) result() []model.Finding {
	return f.out
}
