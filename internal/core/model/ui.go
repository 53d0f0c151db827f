package model

import "sort"

// UITheme configures the default widget theme.
type UITheme struct {
	Enabled      bool `json:"enabled" yaml:"enabled"`
	Dark         bool `json:"dark" yaml:"dark"`
	Grow         bool `json:"grow" yaml:"grow"`
	TransitionMS int  `json:"transition_ms" yaml:"transition_ms"`
}

// UITick selects the time source. A custom tick reads the system
// time through an expression from the named include.
type UITick struct {
	Custom      bool   `json:"custom" yaml:"custom"`
	Include     string `json:"include,omitempty" yaml:"include,omitempty"`
	SysTimeExpr string `json:"sys_time_expr,omitempty" yaml:"sys_time_expr,omitempty"`
}

// UIConfig is the widget library feature table.
type UIConfig struct {
	ColorDepth      int             `json:"color_depth" yaml:"color_depth"`
	Color16Swap     bool            `json:"color_16_swap" yaml:"color_16_swap"`
	MemCustom       bool            `json:"mem_custom" yaml:"mem_custom"`
	MemSize         int             `json:"mem_size" yaml:"mem_size"`
	DPI             int             `json:"dpi" yaml:"dpi"`
	GPU             bool            `json:"gpu" yaml:"gpu"`
	Log             bool            `json:"log" yaml:"log"`
	Fonts           []int           `json:"fonts" yaml:"fonts"`
	DefaultFontSize int             `json:"default_font_size" yaml:"default_font_size"`
	Theme           UITheme         `json:"theme" yaml:"theme"`
	Widgets         map[string]bool `json:"widgets" yaml:"widgets"`
	Flex            bool            `json:"flex" yaml:"flex"`
	Grid            bool            `json:"grid" yaml:"grid"`
	Animation       bool            `json:"animation" yaml:"animation"`
	Shadow          bool            `json:"shadow" yaml:"shadow"`
	Group           bool            `json:"group" yaml:"group"`
	Tick            UITick          `json:"tick" yaml:"tick"`
}

// KnownWidgets lists every widget toggle, in header order.
var KnownWidgets = []string{
	"arc", "bar", "btn", "btnmatrix", "canvas", "checkbox", "dropdown", "img",
	"label", "line", "roller", "slider", "switch", "textarea", "table",
	"animimg", "calendar", "chart", "colorwheel", "imgbtn", "keyboard", "led",
	"list", "menu", "meter", "msgbox", "span", "spinbox", "spinner", "tabview",
	"tileview", "win",
}

// MontserratSizes are the built-in font sizes.
var MontserratSizes = []int{8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36, 38, 40, 42, 44, 46, 48}

// HasFont reports whether the Montserrat font of the given size is compiled in.
func (u *UIConfig) HasFont(size int) bool {
	for _, s := range u.Fonts {
		if s == size {
			return true
		}
	}
	return false
}

// WidgetEnabled reports whether a widget is compiled in. Unknown widgets are off.
func (u *UIConfig) WidgetEnabled(name string) bool {
	return u.Widgets[name]
}

// EnabledWidgets returns the enabled widget names sorted alphabetically.
func (u *UIConfig) EnabledWidgets() []string {
	var names []string
	for name, on := range u.Widgets {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// DefaultUI returns the dashboard's stock feature table.
func DefaultUI() *UIConfig {
	widgets := make(map[string]bool, len(KnownWidgets))
	for _, w := range KnownWidgets {
		widgets[w] = true
	}
	for _, off := range []string{"canvas", "animimg", "calendar", "imgbtn", "menu", "tileview", "win"} {
		widgets[off] = false
	}

	return &UIConfig{
		ColorDepth:      16,
		Color16Swap:     true,
		MemCustom:       false,
		MemSize:         56 * 1024,
		DPI:             130,
		Fonts:           []int{10, 12, 14, 16, 20, 24},
		DefaultFontSize: 14,
		Theme: UITheme{
			Enabled:      true,
			Dark:         true,
			Grow:         true,
			TransitionMS: 80,
		},
		Widgets:   widgets,
		Flex:      true,
		Grid:      true,
		Animation: true,
		Shadow:    true,
		Group:     true,
		Tick: UITick{
			Custom:      true,
			Include:     "Arduino.h",
			SysTimeExpr: "(millis())",
		},
	}
}
