package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFState(t *testing.T) {
	tests := []struct {
		name string
		rf   RFConfig
		want RFState
	}{
		{"stock placeholders", DefaultMonitor().RF, RFDisabled},
		{"all zero", RFConfig{}, RFDisabled},
		{"captured", RFConfig{TxPin: 26, Code: 0xABCDEF, BitLength: 24, Protocol: 1, PulseUS: 305}, RFEnabled},
		{"missing bit length", RFConfig{Code: 1, Protocol: 1, PulseUS: 305}, RFPartial},
		{"missing protocol", RFConfig{Code: 1, BitLength: 24, PulseUS: 305}, RFPartial},
		{"missing pulse", RFConfig{Code: 1, BitLength: 24, Protocol: 1}, RFPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rf.State())
		})
	}
	assert.Equal(t, "partial", RFPartial.String())
}

func TestRecipientCountIsDerived(t *testing.T) {
	m := DefaultMonitor()
	assert.Equal(t, 3, m.RecipientCount())

	m.Recipients = append(m.Recipients, "+15551234567")
	assert.Equal(t, 4, m.RecipientCount())

	m.Recipients = nil
	assert.Zero(t, m.RecipientCount())
}

func TestThresholdsAndTiming(t *testing.T) {
	m := DefaultMonitor()
	assert.InDelta(t, 3.0, m.Thresholds.Gap(), 1e-9)
	assert.Equal(t, 30*time.Second, m.Timing.ReadInterval())
	assert.Equal(t, 30*time.Minute, m.Timing.AlertRepeat())
}

func TestDefaultUI(t *testing.T) {
	u := DefaultUI()
	assert.True(t, u.HasFont(u.DefaultFontSize))
	assert.False(t, u.HasFont(48))
	assert.True(t, u.WidgetEnabled("keyboard"))
	assert.False(t, u.WidgetEnabled("canvas"))
	assert.False(t, u.WidgetEnabled("no-such-widget"))
	assert.Len(t, u.EnabledWidgets(), len(KnownWidgets)-7)
}

func TestDisplayPins(t *testing.T) {
	pins := DefaultDisplay().Pins
	assert.NotContains(t, pins.Outputs(), "miso")
	assert.Equal(t, 12, pins.All()["miso"])
	assert.Equal(t, -1, pins.All()["rst"])
}

func TestProjectSectionsAndMerge(t *testing.T) {
	p := &Project{Monitor: DefaultMonitor()}
	assert.Equal(t, []string{SectionMonitor}, p.Sections())

	p.Merge(&Project{Name: "laundry", Display: DefaultDisplay(), Monitor: &MonitorConfig{Location: "Garage"}})
	assert.Equal(t, "laundry", p.Name)
	assert.Equal(t, []string{SectionDisplay, SectionMonitor}, p.Sections())
	assert.Equal(t, "Laundry Room", p.Monitor.Location, "present sections are kept")

	p.Merge(nil)
	assert.Empty(t, (&Project{}).Sections())
}

func TestReportCountsAndOrder(t *testing.T) {
	r := &Report{Project: "p"}
	r.Add(
		Finding{Rule: "b", Section: SectionUI, Severity: SeverityWarning},
		Finding{Rule: "a", Section: SectionUI, Severity: SeverityInfo},
		Finding{Rule: "z", Section: SectionMonitor, Severity: SeverityError},
		Finding{Rule: "a", Section: SectionDisplay, Severity: SeverityError},
	)

	assert.True(t, r.HasErrors())
	assert.Equal(t, 2, r.Count(SeverityError))
	assert.Equal(t, 1, r.Count(SeverityWarning))

	sorted := r.Sorted()
	require.Len(t, sorted, 4)
	assert.Equal(t, SectionDisplay, sorted[0].Section)
	assert.Equal(t, "z", sorted[1].Rule)
	assert.Equal(t, SeverityWarning, sorted[2].Severity)
	assert.Equal(t, SeverityInfo, sorted[3].Severity)

	assert.Equal(t, "z", r.Findings[2].Rule, "Sorted does not reorder the report")

	text, err := SeverityError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))
}

func TestSensitiveFields(t *testing.T) {
	for _, field := range []string{"wifi.password", "sms.auth_token", "recipients", "recipients[2]", "rf.code"} {
		assert.True(t, IsSensitiveField(field), field)
	}
	for _, field := range []string{"location", "rf.pulse_us", "thresholds.clear_f", ""} {
		assert.False(t, IsSensitiveField(field), field)
	}
}

func TestMonitorSecrets(t *testing.T) {
	m := &MonitorConfig{
		WiFi:       WiFiConfig{SSID: "home-net"},
		Recipients: []string{"+15551110001"},
		RF:         RFConfig{Code: 0xABCDEF12},
	}
	assert.ElementsMatch(t, []string{"home-net", "+15551110001", "2882400018", "abcdef12", "ABCDEF12"}, m.Secrets())

	m.RF.Code = 0
	assert.NotContains(t, m.Secrets(), "0")
}
