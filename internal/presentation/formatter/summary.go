package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
)

// SummaryFormatter prints a human-readable project overview with every
// credential masked.
type SummaryFormatter struct {
	color bool
}

func NewSummaryFormatter(color bool) *SummaryFormatter {
	return &SummaryFormatter{color: color}
}

func (f *SummaryFormatter) Format(w io.Writer, p *model.Project) error {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, util.Colorize("CYD Project: "+p.Name, util.ColorBold, f.color))
	fmt.Fprintln(w, rule)

	if len(p.Sections()) == 0 {
		fmt.Fprintln(w, "\nNo sections configured")
	}
	if p.Display != nil {
		f.display(w, p.Display)
	}
	if p.UI != nil {
		f.ui(w, p.UI)
	}
	if p.Monitor != nil {
		f.monitor(w, p.Monitor)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	return nil
}

func (f *SummaryFormatter) heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, util.Colorize(title+":", util.ColorCyan, f.color))
}

func field(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "  %s %v\n", util.PadRight(label+":", 18), value)
}

func (f *SummaryFormatter) display(w io.Writer, d *model.DisplayConfig) {
	f.heading(w, "Display")
	field(w, "Driver", fmt.Sprintf("%s %dx%d", d.Driver, d.Width, d.Height))
	if d.Info != "" {
		field(w, "Info", d.Info)
	}
	bus := "VSPI"
	if d.HSPI {
		bus = "HSPI"
	}
	field(w, "SPI", fmt.Sprintf("%s, write %s, read %s", bus,
		util.FormatFrequency(d.SPIFrequency), util.FormatFrequency(d.SPIReadFrequency)))

	pins := d.Pins.All()
	names := make([]string, 0, len(pins))
	for name := range pins {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		pin := "nc"
		if pins[name] >= 0 {
			pin = fmt.Sprintf("%d", pins[name])
		}
		parts = append(parts, name+"="+pin)
	}
	field(w, "Pins", strings.Join(parts, " "))
	field(w, "Fonts", strings.Join(d.Fonts, ", "))
	field(w, "Smooth font", d.SmoothFont)
}

func (f *SummaryFormatter) ui(w io.Writer, u *model.UIConfig) {
	f.heading(w, "UI")
	field(w, "Color depth", fmt.Sprintf("%d bit (swap %v)", u.ColorDepth, u.Color16Swap))
	if u.MemCustom {
		field(w, "Memory", "custom allocator")
	} else {
		field(w, "Memory", fmt.Sprintf("%d KiB pool", u.MemSize/1024))
	}
	field(w, "DPI", u.DPI)

	sizes := make([]string, 0, len(u.Fonts))
	for _, size := range u.Fonts {
		sizes = append(sizes, fmt.Sprintf("%d", size))
	}
	field(w, "Fonts", fmt.Sprintf("%s (default %d)", strings.Join(sizes, ", "), u.DefaultFontSize))

	theme := "off"
	if u.Theme.Enabled {
		mode := "light"
		if u.Theme.Dark {
			mode = "dark"
		}
		theme = fmt.Sprintf("%s, transition %dms", mode, u.Theme.TransitionMS)
	}
	field(w, "Theme", theme)
	field(w, "Widgets", fmt.Sprintf("%d of %d enabled", len(u.EnabledWidgets()), len(model.KnownWidgets)))
}

func (f *SummaryFormatter) monitor(w io.Writer, m *model.MonitorConfig) {
	f.heading(w, "Monitor")
	field(w, "Location", m.Location)
	field(w, "WiFi", fmt.Sprintf("%s / %s", m.WiFi.SSID, util.MaskSecret(m.WiFi.Password)))
	field(w, "SMS account", util.MaskSecret(m.SMS.AccountSID))
	field(w, "SMS token", util.MaskSecret(m.SMS.AuthToken))
	field(w, "SMS from", util.MaskPhone(m.SMS.FromNumber))

	masked := make([]string, 0, len(m.Recipients))
	for _, number := range m.Recipients {
		masked = append(masked, util.MaskPhone(number))
	}
	field(w, "Recipients", fmt.Sprintf("%d: %s", m.RecipientCount(), strings.Join(masked, ", ")))

	field(w, "Thresholds", fmt.Sprintf("alert < %.1f°F, clear > %.1f°F (gap %.1f°F)",
		m.Thresholds.AlertF, m.Thresholds.ClearF, m.Thresholds.Gap()))
	field(w, "Timing", fmt.Sprintf("read every %s, repeat every %s",
		util.FormatDuration(m.Timing.ReadInterval()), util.FormatDuration(m.Timing.AlertRepeat())))

	rf := m.RF.State().String()
	if m.RF.State() == model.RFEnabled {
		rf += fmt.Sprintf(" (pin %d, %d-bit, protocol %d, %s pulse)",
			m.RF.TxPin, m.RF.BitLength, m.RF.Protocol, time.Duration(m.RF.PulseUS)*time.Microsecond)
	}
	field(w, "RF", rf)
}
