package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
)

// Registry holds the validation rules and their enabled state
type Registry struct {
	mu       sync.RWMutex
	rules    []Rule
	disabled map[string]bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rules:    make([]Rule, 0),
		disabled: make(map[string]bool),
	}
}

// DefaultRegistry returns a registry with every built-in rule registered
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rule := range monitorRules() {
		r.Register(rule)
	}
	for _, rule := range displayRules() {
		r.Register(rule)
	}
	for _, rule := range uiRules() {
		r.Register(rule)
	}
	return r
}

// Register adds a rule, replacing any rule with the same name
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.rules {
		if existing.Name() == rule.Name() {
			r.rules[i] = rule
			util.LogDebugf("Registry: replaced rule '%s'", rule.Name())
			return
		}
	}
	r.rules = append(r.rules, rule)
}

// Disable turns off the named rules. Unknown names are reported as an error.
func (r *Registry) Disable(names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		if !r.hasLocked(name) {
			return fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		r.disabled[name] = true
	}
	return nil
}

// Enable turns the named rule back on
func (r *Registry) Enable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.disabled, name)
}

// IsEnabled reports whether a rule is registered and enabled
func (r *Registry) IsEnabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasLocked(name) && !r.disabled[name]
}

func (r *Registry) hasLocked(name string) bool {
	for _, rule := range r.rules {
		if rule.Name() == name {
			return true
		}
	}
	return false
}

// Rules returns the registered rules sorted by section, then name
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Section() != out[j].Section() {
			return out[i].Section() < out[j].Section()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Run executes every enabled rule against p
func (r *Registry) Run(p *model.Project) []model.Finding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []model.Finding
	for _, rule := range r.rules {
		if r.disabled[rule.Name()] {
			util.LogDebugf("Registry: skipping disabled rule '%s'", rule.Name())
			continue
		}
		found := rule.Check(p)
		if len(found) > 0 {
			util.LogDebug("rule reported findings", util.F("rule", rule.Name()), util.F("count", len(found)))
		}
		all = append(all, found...)
	}
	return all
}

// Validate runs the registry and combines the result with findings
// produced elsewhere (e.g. while decoding headers). Findings from disabled
// rules are dropped.
func (r *Registry) Validate(p *model.Project, extra ...model.Finding) *model.Report {
	report := &model.Report{}
	if p != nil {
		report.Project = p.Name
		report.Sections = p.Sections()
	}

	for _, f := range extra {
		if r.isDisabled(f.Rule) {
			continue
		}
		report.Add(f)
	}
	report.Add(r.Run(p)...)

	util.LogInfo("validation finished",
		util.F("project", report.Project),
		util.F("errors", report.Count(model.SeverityError)),
		util.F("warnings", report.Count(model.SeverityWarning)))
	return report
}

func (r *Registry) isDisabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disabled[name]
}

// Validate checks p with the default rule set
func Validate(p *model.Project, extra ...model.Finding) *model.Report {
	return DefaultRegistry().Validate(p, extra...)
}
