package model

// Project groups the three configuration artifacts of a CYD build. Any
// section may be absent.
type Project struct {
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Display *DisplayConfig `json:"display,omitempty" yaml:"display,omitempty"`
	UI      *UIConfig      `json:"ui,omitempty" yaml:"ui,omitempty"`
	Monitor *MonitorConfig `json:"monitor,omitempty" yaml:"monitor,omitempty"`
}

// DefaultProject returns a project with every section at its stock values.
func DefaultProject(name string) *Project {
	return &Project{
		Name:    name,
		Display: DefaultDisplay(),
		UI:      DefaultUI(),
		Monitor: DefaultMonitor(),
	}
}

// Sections returns the names of the sections present.
func (p *Project) Sections() []string {
	var sections []string
	if p.Display != nil {
		sections = append(sections, SectionDisplay)
	}
	if p.UI != nil {
		sections = append(sections, SectionUI)
	}
	if p.Monitor != nil {
		sections = append(sections, SectionMonitor)
	}
	return sections
}

// Merge fills sections missing from p with those of other.
func (p *Project) Merge(other *Project) {
	if other == nil {
		return
	}
	if p.Name == "" {
		p.Name = other.Name
	}
	if p.Display == nil {
		p.Display = other.Display
	}
	if p.UI == nil {
		p.UI = other.UI
	}
	if p.Monitor == nil {
		p.Monitor = other.Monitor
	}
}

// Section identifiers
const (
	SectionDisplay = "display"
	SectionUI      = "ui"
	SectionMonitor = "monitor"
	SectionProject = "project"
)
