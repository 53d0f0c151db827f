package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/penwyp/cydconf/internal/core/constants"
	"github.com/penwyp/cydconf/internal/core/model"
)

// widgetDependencies lists the widgets each widget is built from
var widgetDependencies = map[string][]string{
	"keyboard": {"btnmatrix", "textarea"},
	"calendar": {"btnmatrix"},
	"msgbox":   {"btnmatrix", "label"},
	"tabview":  {"btnmatrix"},
	"dropdown": {"label"},
	"roller":   {"label"},
	"checkbox": {"label"},
	"textarea": {"label"},
	"table":    {"label"},
	"spinbox":  {"textarea"},
	"list":     {"btn", "label"},
	"win":      {"btn", "label"},
	"imgbtn":   {"img"},
}

var validColorDepths = map[int]bool{1: true, 8: true, 16: true, 32: true}

func uiRule(name, description string, check func(u *model.UIConfig, f *findings)) Rule {
	return &funcRule{
		name:        name,
		section:     model.SectionUI,
		description: description,
		check: func(p *model.Project) []model.Finding {
			if p.UI == nil {
				return nil
			}
			f := newFindings(name, model.SectionUI)
			check(p.UI, f)
			return f.result()
		},
	}
}

func uiRules() []Rule {
	return []Rule{
		uiRule(RuleUIColor, "color depth is supported and byte swap is only used with 16-bit color", checkUIColor),
		uiRule(RuleUIMemory, "memory pool size is within the device budget", checkUIMemory),
		uiRule(RuleUIFonts, "enabled fonts exist and include the default font", checkUIFonts),
		uiRule(RuleUIWidgets, "every enabled widget has its building blocks enabled", checkUIWidgets),
		uiRule(RuleUITheme, "theme settings are consistent", checkUITheme),
		uiRule(RuleUITick, "a custom tick source names its include and time expression", checkUITick),
	}
}

func checkUIColor(u *model.UIConfig, f *findings) {
	if !validColorDepths[u.ColorDepth] {
		f.errorf("color_depth", "color depth %d is not one of 1, 8, 16, 32", u.ColorDepth)
	}
	if u.Color16Swap && u.ColorDepth != 16 {
		f.errorf("color_16_swap", "byte swap only applies to 16-bit color, depth is %d", u.ColorDepth)
	}
}

func checkUIMemory(u *model.UIConfig, f *findings) {
	if u.MemCustom {
		return
	}
	if u.MemSize < constants.MinUIMemSize || u.MemSize > constants.MaxUIMemSize {
		f.errorf("mem_size", "memory pool %d bytes is outside %d..%d",
			u.MemSize, constants.MinUIMemSize, constants.MaxUIMemSize)
	}
}

func checkUIFonts(u *model.UIConfig, f *findings) {
	known := make(map[int]bool, len(model.MontserratSizes))
	for _, size := range model.MontserratSizes {
		known[size] = true
	}
	for i, size := range u.Fonts {
		if !known[size] {
			f.errorf(fmt.Sprintf("fonts[%d]", i), "no built-in font of size %d", size)
		}
	}
	if !u.HasFont(u.DefaultFontSize) {
		f.errorf("default_font_size", "default font size %d is not enabled", u.DefaultFontSize)
	}
}

func checkUIWidgets(u *model.UIConfig, f *findings) {
	known := make(map[string]bool, len(model.KnownWidgets))
	for _, w := range model.KnownWidgets {
		known[w] = true
	}

	names := make([]string, 0, len(u.Widgets))
	for name := range u.Widgets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			f.warnf("widgets."+name, "unknown widget %q", name)
			continue
		}
		if !u.Widgets[name] {
			continue
		}
		var missing []string
		for _, dep := range widgetDependencies[name] {
			if !u.WidgetEnabled(dep) {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			f.errorf("widgets."+name, "%s requires %s", name, strings.Join(missing, ", "))
		}
	}
}

func checkUITheme(u *model.UIConfig, f *findings) {
	if u.Theme.TransitionMS < 0 {
		f.errorf("theme.transition_ms", "transition time must not be negative")
	}
	if !u.Theme.Enabled && (u.Theme.Dark || u.Theme.Grow) {
		f.warnf("theme", "theme options are set but the default theme is disabled")
	}
}

func checkUITick(u *model.UIConfig, f *findings) {
	if !u.Tick.Custom {
		return
	}
	if u.Tick.Include == "" {
		f.errorf("tick.include", "custom tick needs the header that declares the time function")
	}
	if u.Tick.SysTimeExpr == "" {
		f.errorf("tick.sys_time_expr", "custom tick needs a system time expression")
	}
}
