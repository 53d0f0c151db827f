package header

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/penwyp/cydconf/internal/core/constants"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/core/rules"
	"github.com/penwyp/cydconf/internal/util"
)

// RuleHeaderImport names findings about values that could not be read
const RuleHeaderImport = "header-import"

// Kind identifies which configuration artifact a header holds
type Kind string

const (
	KindUnknown Kind = ""
	KindDisplay Kind = model.SectionDisplay
	KindUI      Kind = model.SectionUI
	KindMonitor Kind = model.SectionMonitor
)

// Canonical file names
const (
	FileDisplay = "User_Setup.h"
	FileUI      = "lv_conf.h"
	FileMonitor = "config.h"
)

// FileName returns the canonical header name for k
func (k Kind) FileName() string {
	switch k {
	case KindDisplay:
		return FileDisplay
	case KindUI:
		return FileUI
	case KindMonitor:
		return FileMonitor
	default:
		return ""
	}
}

// DetectKind classifies a header by file name, falling back to its content
func DetectKind(h *Header) Kind {
	switch strings.ToLower(filepath.Base(h.Path)) {
	case strings.ToLower(FileDisplay):
		return KindDisplay
	case strings.ToLower(FileUI):
		return KindUI
	case strings.ToLower(FileMonitor):
		return KindMonitor
	}

	switch {
	case h.Has("LV_COLOR_DEPTH"):
		return KindUI
	case h.Has("TFT_WIDTH") || driverName(h) != "":
		return KindDisplay
	case h.Has("TEMP_ALERT_F") || len(h.Arrays) > 0:
		return KindMonitor
	default:
		return KindUnknown
	}
}

// Decode converts a header into the matching project section
func Decode(h *Header) (*model.Project, []model.Finding, error) {
	p := &model.Project{}
	var findings []model.Finding

	switch kind := DetectKind(h); kind {
	case KindDisplay:
		p.Display, findings = DecodeDisplay(h)
	case KindUI:
		p.UI, findings = DecodeUI(h)
	case KindMonitor:
		p.Monitor, findings = DecodeMonitor(h)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownKind, h.Path)
	}
	return p, findings, nil
}

// DecodeFiles parses and decodes each header and merges the sections into
// one project. Later files do not override sections already decoded.
func DecodeFiles(paths ...string) (*model.Project, []model.Finding, error) {
	project := &model.Project{}
	var all []model.Finding

	for _, path := range paths {
		h, err := ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		p, findings, err := Decode(h)
		if err != nil {
			return nil, nil, err
		}
		util.LogDebug("decoded header", util.F("path", path), util.F("sections", strings.Join(p.Sections(), ",")))
		project.Merge(p)
		all = append(all, findings...)
	}
	return project, all, nil
}

// decoder reads typed values out of a header and records problems
type decoder struct {
	h        *Header
	section  string
	findings []model.Finding
}

func newDecoder(h *Header, section string) *decoder {
	return &decoder{h: h, section: section}
}

func (d *decoder) report(sev model.Severity, rule, field, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if d.h.Path != "" {
		msg = fmt.Sprintf("%s: %s", filepath.Base(d.h.Path), msg)
	}
	d.findings = append(d.findings, model.Finding{
		Rule:     rule,
		Section:  d.section,
		Field:    field,
		Severity: sev,
		Message:  msg,
	})
}

func (d *decoder) lookup(name, field string, required bool) (Define, bool) {
	def, ok := d.h.Lookup(name)
	if !ok && required {
		d.report(model.SeverityWarning, RuleHeaderImport, field, "%s is not defined", name)
	}
	return def, ok
}

// invalid reports an unreadable value. Parse errors quote the raw text, so
// for secret fields only the position is reported.
func (d *decoder) invalid(def Define, field string, err error) {
	if model.IsSensitiveField(field) {
		d.report(model.SeverityError, RuleHeaderImport, field, "line %d: %s: %v", def.Line, def.Name, ErrInvalidValue)
		return
	}
	d.report(model.SeverityError, RuleHeaderImport, field, "line %d: %s: %v", def.Line, def.Name, err)
}

func (d *decoder) str(name, field string, dst *string) {
	if def, ok := d.lookup(name, field, true); ok {
		v, err := ParseString(def.Value)
		if err != nil {
			d.invalid(def, field, err)
			return
		}
		*dst = v
	}
}

func (d *decoder) integer(name, field string, required bool, dst *int) {
	if def, ok := d.lookup(name, field, required); ok {
		v, err := ParseInt(def.Value)
		if err != nil {
			d.invalid(def, field, err)
			return
		}
		*dst = int(v)
	}
}

func (d *decoder) unsigned(name, field string, dst *uint64) {
	if def, ok := d.lookup(name, field, true); ok {
		v, err := ParseUint(def.Value)
		if err != nil {
			d.invalid(def, field, err)
			return
		}
		*dst = v
	}
}

func (d *decoder) float(name, field string, dst *float64) {
	if def, ok := d.lookup(name, field, true); ok {
		v, err := ParseFloat(def.Value)
		if err != nil {
			d.invalid(def, field, err)
			return
		}
		*dst = v
	}
}

// flag reads a 0/1 toggle. Absent toggles keep their zero value.
func (d *decoder) flag(name, field string, dst *bool) {
	if def, ok := d.h.Lookup(name); ok {
		v, err := ParseBool(def.Value)
		if err != nil {
			d.invalid(def, field, err)
			return
		}
		*dst = v
	}
}

// DecodeMonitor reads the monitor secrets/thresholds header. A declared
// recipient count that disagrees with the recipient list is reported;
// the list wins.
func DecodeMonitor(h *Header) (*model.MonitorConfig, []model.Finding) {
	d := newDecoder(h, model.SectionMonitor)
	m := &model.MonitorConfig{}

	d.str("WIFI_SSID", "wifi.ssid", &m.WiFi.SSID)
	d.str("WIFI_PASSWORD", "wifi.password", &m.WiFi.Password)
	d.str("TWILIO_ACCOUNT_SID", "sms.account_sid", &m.SMS.AccountSID)
	d.str("TWILIO_AUTH_TOKEN", "sms.auth_token", &m.SMS.AuthToken)
	d.str("TWILIO_FROM_NUMBER", "sms.from_number", &m.SMS.FromNumber)
	d.str("LOCATION_NAME", "location", &m.Location)

	d.float("TEMP_ALERT_F", "thresholds.alert_f", &m.Thresholds.AlertF)
	d.float("TEMP_CLEAR_F", "thresholds.clear_f", &m.Thresholds.ClearF)
	d.unsigned("READ_INTERVAL_MS", "timing.read_interval_ms", &m.Timing.ReadIntervalMS)
	d.unsigned("ALERT_REPEAT_MS", "timing.alert_repeat_ms", &m.Timing.AlertRepeatMS)

	d.integer("RF_TX_PIN", "rf.tx_pin", true, &m.RF.TxPin)
	d.unsigned("RF_ALARM_CODE", "rf.code", &m.RF.Code)
	d.integer("RF_ALARM_BITLEN", "rf.bit_length", true, &m.RF.BitLength)
	d.integer("RF_ALARM_PROTOCOL", "rf.protocol", true, &m.RF.Protocol)
	d.integer("RF_ALARM_PULSE_US", "rf.pulse_us", true, &m.RF.PulseUS)

	d.recipients(m)
	return m, d.findings
}

func (d *decoder) recipients(m *model.MonitorConfig) {
	arr, ok := d.h.Arrays["ALERT_NUMBERS"]
	if !ok {
		d.report(model.SeverityWarning, RuleHeaderImport, "recipients", "ALERT_NUMBERS is not defined")
		return
	}
	m.Recipients = append([]string(nil), arr.Values...)

	def, ok := d.h.Lookup("NUM_RECIPIENTS")
	if !ok || strings.Contains(def.Value, "sizeof") {
		return
	}
	declared, err := ParseInt(def.Value)
	if err != nil {
		d.invalid(def, "recipients", err)
		return
	}
	if int(declared) != len(arr.Values) {
		d.report(model.SeverityError, rules.RuleRecipientCount, "recipients",
			"line %d: NUM_RECIPIENTS is %d but ALERT_NUMBERS lists %d %s",
			def.Line, declared, len(arr.Values), pluralEntries(len(arr.Values)))
	}
}

func pluralEntries(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

var driverPattern = regexp.MustCompile(`^([A-Z0-9]+)_DRIVER$`)

func driverName(h *Header) string {
	for _, name := range h.Names() {
		if m := driverPattern.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return ""
}

// DecodeDisplay reads the display driver setup header. Pins that are not
// defined are treated as not connected.
func DecodeDisplay(h *Header) (*model.DisplayConfig, []model.Finding) {
	d := newDecoder(h, model.SectionDisplay)
	c := &model.DisplayConfig{}

	if def, ok := h.Lookup("USER_SETUP_INFO"); ok {
		if v, err := ParseString(def.Value); err == nil {
			c.Info = v
		} else {
			d.invalid(def, "info", err)
		}
	}

	var drivers []string
	for _, name := range h.Names() {
		if m := driverPattern.FindStringSubmatch(name); m != nil {
			drivers = append(drivers, m[1])
		}
	}
	switch len(drivers) {
	case 0:
		d.report(model.SeverityWarning, RuleHeaderImport, "driver", "no *_DRIVER macro defined")
	case 1:
		c.Driver = drivers[0]
	default:
		c.Driver = drivers[0]
		d.report(model.SeverityError, RuleHeaderImport, "driver", "multiple drivers defined: %s", strings.Join(drivers, ", "))
	}

	d.integer("TFT_WIDTH", "width", true, &c.Width)
	d.integer("TFT_HEIGHT", "height", true, &c.Height)
	d.flag("USE_HSPI_PORT", "hspi", &c.HSPI)

	pins := []struct {
		name  string
		field string
		dst   *int
	}{
		{"TFT_MOSI", "pins.mosi", &c.Pins.MOSI},
		{"TFT_MISO", "pins.miso", &c.Pins.MISO},
		{"TFT_SCLK", "pins.sclk", &c.Pins.SCLK},
		{"TFT_CS", "pins.cs", &c.Pins.CS},
		{"TFT_DC", "pins.dc", &c.Pins.DC},
		{"TFT_RST", "pins.rst", &c.Pins.RST},
		{"TFT_BL", "pins.bl", &c.Pins.BL},
	}
	for _, pin := range pins {
		*pin.dst = constants.NotConnectedPin
		d.integer(pin.name, pin.field, false, pin.dst)
	}

	d.integer("SPI_FREQUENCY", "spi_frequency", true, &c.SPIFrequency)
	d.integer("SPI_READ_FREQUENCY", "spi_read_frequency", true, &c.SPIReadFrequency)

	for _, font := range model.KnownFonts {
		if h.Has("LOAD_" + font) {
			c.Fonts = append(c.Fonts, font)
		}
	}
	d.flag("SMOOTH_FONT", "smooth_font", &c.SmoothFont)

	return c, d.findings
}

var defaultFontPattern = regexp.MustCompile(`lv_font_montserrat_(\d+)`)

// DecodeUI reads the UI library feature header
func DecodeUI(h *Header) (*model.UIConfig, []model.Finding) {
	d := newDecoder(h, model.SectionUI)
	u := &model.UIConfig{Widgets: make(map[string]bool)}

	d.integer("LV_COLOR_DEPTH", "color_depth", true, &u.ColorDepth)
	d.flag("LV_COLOR_16_SWAP", "color_16_swap", &u.Color16Swap)
	d.flag("LV_MEM_CUSTOM", "mem_custom", &u.MemCustom)
	d.integer("LV_MEM_SIZE", "mem_size", !u.MemCustom, &u.MemSize)
	d.integer("LV_DPI_DEF", "dpi", false, &u.DPI)
	d.flag("LV_USE_GPU_ESP32", "gpu", &u.GPU)
	d.flag("LV_USE_LOG", "log", &u.Log)

	for _, size := range model.MontserratSizes {
		var on bool
		d.flag(fmt.Sprintf("LV_FONT_MONTSERRAT_%d", size), "fonts", &on)
		if on {
			u.Fonts = append(u.Fonts, size)
		}
	}
	if def, ok := d.lookup("LV_FONT_DEFAULT", "default_font_size", true); ok {
		if m := defaultFontPattern.FindStringSubmatch(def.Value); m != nil {
			v, _ := ParseInt(m[1])
			u.DefaultFontSize = int(v)
		} else {
			d.report(model.SeverityWarning, RuleHeaderImport, "default_font_size",
				"line %d: default font %s is not a built-in Montserrat font", def.Line, def.Value)
		}
	}

	d.flag("LV_USE_THEME_DEFAULT", "theme.enabled", &u.Theme.Enabled)
	d.flag("LV_THEME_DEFAULT_DARK", "theme.dark", &u.Theme.Dark)
	d.flag("LV_THEME_DEFAULT_GROW", "theme.grow", &u.Theme.Grow)
	d.integer("LV_THEME_DEFAULT_TRANSITION_TIME", "theme.transition_ms", false, &u.Theme.TransitionMS)

	for _, widget := range model.KnownWidgets {
		name := "LV_USE_" + strings.ToUpper(widget)
		if !h.Has(name) {
			continue
		}
		var on bool
		d.flag(name, "widgets."+widget, &on)
		u.Widgets[widget] = on
	}

	d.flag("LV_USE_FLEX", "flex", &u.Flex)
	d.flag("LV_USE_GRID", "grid", &u.Grid)
	d.flag("LV_USE_ANIMATION", "animation", &u.Animation)
	d.flag("LV_USE_SHADOW", "shadow", &u.Shadow)
	d.flag("LV_USE_GROUP", "group", &u.Group)

	d.flag("LV_TICK_CUSTOM", "tick.custom", &u.Tick.Custom)
	if u.Tick.Custom {
		d.str("LV_TICK_CUSTOM_INCLUDE", "tick.include", &u.Tick.Include)
		if def, ok := d.lookup("LV_TICK_CUSTOM_SYS_TIME_EXPR", "tick.sys_time_expr", true); ok {
			u.Tick.SysTimeExpr = def.Value
		}
	}

	return u, d.findings
}
