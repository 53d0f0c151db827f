package model

import "sort"

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is a single validation result.
type Finding struct {
	Rule     string   `json:"rule"`
	Section  string   `json:"section"`
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report collects the findings for one project.
type Report struct {
	Project  string    `json:"project"`
	Sections []string  `json:"sections"`
	Findings []Finding `json:"findings"`
}

func (r *Report) Add(f ...Finding) {
	r.Findings = append(r.Findings, f...)
}

func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Sorted returns the findings ordered by severity (errors first), then
// section, rule and field.
func (r *Report) Sorted() []Finding {
	out := make([]Finding, len(r.Findings))
	copy(out, r.Findings)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Field < b.Field
	})
	return out
}
