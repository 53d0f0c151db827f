package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/penwyp/cydconf/internal/core/constants"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
)

var knownDrivers = map[string]bool{
	model.DriverILI9341: true,
	model.DriverST7789:  true,
	model.DriverILI9488: true,
	model.DriverST7735:  true,
}

// Signals that may be left unconnected (-1)
var optionalSignals = map[string]bool{"miso": true, "cs": true, "rst": true, "bl": true}

func displayRule(name, description string, check func(d *model.DisplayConfig, f *findings)) Rule {
	return &funcRule{
		name:        name,
		section:     model.SectionDisplay,
		description: description,
		check: func(p *model.Project) []model.Finding {
			if p.Display == nil {
				return nil
			}
			f := newFindings(name, model.SectionDisplay)
			check(p.Display, f)
			return f.result()
		},
	}
}

func displayRules() []Rule {
	return []Rule{
		displayRule(RuleDisplayGeometry, "driver is known and panel dimensions are positive", checkDisplayGeometry),
		displayRule(RuleDisplayPins, "display pins are valid, distinct ESP32 GPIOs", checkDisplayPins),
		displayRule(RuleSPIFrequency, "SPI read clock does not exceed the write clock or the bus limit", checkSPIFrequency),
		displayRule(RuleDisplayFonts, "only known font groups are loaded", checkDisplayFonts),
		colorOrderRule(),
	}
}

func checkDisplayGeometry(d *model.DisplayConfig, f *findings) {
	if d.Driver == "" {
		f.errorf("driver", "no display driver selected")
	} else if !knownDrivers[strings.ToUpper(d.Driver)] {
		f.warnf("driver", "driver %q is not one of the known panel drivers", d.Driver)
	}
	if d.Width <= 0 || d.Height <= 0 {
		f.errorf("width", "panel dimensions %dx%d must be positive", d.Width, d.Height)
	}
}

func checkDisplayPins(d *model.DisplayConfig, f *findings) {
	pins := d.Pins.All()
	signals := make([]string, 0, len(pins))
	for signal := range pins {
		signals = append(signals, signal)
	}
	sort.Strings(signals)

	owners := make(map[int]string)
	for _, signal := range signals {
		pin := pins[signal]
		field := "pins." + signal

		if pin == constants.NotConnectedPin {
			if !optionalSignals[signal] {
				f.errorf(field, "%s must be connected", strings.ToUpper(signal))
			}
			continue
		}

		var problem string
		if signal == "miso" {
			problem = inputPinProblem(pin)
		} else {
			problem = outputPinProblem(pin)
		}
		if problem != "" {
			f.errorf(field, "%s on GPIO %d: pin %s", strings.ToUpper(signal), pin, problem)
			continue
		}

		if owner, taken := owners[pin]; taken {
			f.errorf(field, "GPIO %d is shared by %s and %s", pin, strings.ToUpper(owner), strings.ToUpper(signal))
			continue
		}
		owners[pin] = signal
	}
}

func checkSPIFrequency(d *model.DisplayConfig, f *findings) {
	if d.SPIFrequency <= 0 || d.SPIFrequency > constants.MaxSPIFrequency {
		f.errorf("spi_frequency", "SPI clock %s is outside 1 Hz..%s",
			util.FormatFrequency(d.SPIFrequency), util.FormatFrequency(constants.MaxSPIFrequency))
	}
	if d.SPIReadFrequency <= 0 {
		f.errorf("spi_read_frequency", "SPI read clock must be positive")
	} else if d.SPIReadFrequency > d.SPIFrequency {
		f.errorf("spi_read_frequency", "SPI read clock %s exceeds the write clock %s",
			util.FormatFrequency(d.SPIReadFrequency), util.FormatFrequency(d.SPIFrequency))
	}
}

func checkDisplayFonts(d *model.DisplayConfig, f *findings) {
	known := make(map[string]bool, len(model.KnownFonts))
	for _, font := range model.KnownFonts {
		known[font] = true
	}
	for i, font := range d.Fonts {
		if !known[strings.ToUpper(font)] {
			f.warnf(fmt.Sprintf("fonts[%d]", i), "unknown font group %q", font)
		}
	}
	if d.SmoothFont && len(d.Fonts) == 0 {
		f.infof("smooth_font", "smooth fonts enabled without any bitmap font groups")
	}
}

// colorOrderRule spans display and UI: the ILI9341 expects big-endian
// RGB565 while the UI library renders little-endian.
func colorOrderRule() Rule {
	return &funcRule{
		name:        RuleDisplayColorOrder,
		section:     model.SectionDisplay,
		description: "16-bit UI color on a big-endian panel enables byte swapping",
		check: func(p *model.Project) []model.Finding {
			if p.Display == nil || p.UI == nil {
				return nil
			}
			f := newFindings(RuleDisplayColorOrder, model.SectionDisplay)
			if strings.EqualFold(p.Display.Driver, model.DriverILI9341) && p.UI.ColorDepth == 16 && !p.UI.Color16Swap {
				f.warnf("ui.color_16_swap", "ILI9341 with 16-bit color needs byte swap or colors render wrong")
			}
			return f.result()
		},
	}
}
