package rules

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/penwyp/cydconf/internal/core/constants"
	"github.com/penwyp/cydconf/internal/core/model"
)

var (
	e164Pattern       = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)
	accountSIDPattern = regexp.MustCompile(`^AC[0-9a-fA-F]{32}$`)
	authTokenPattern  = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
	placeholderRun    = regexp.MustCompile(`(?i)x{4,}`)
)

// IsPlaceholder reports whether s is one of the stock fill-me-in values
func IsPlaceholder(s string) bool {
	switch s {
	case constants.PlaceholderSSID, constants.PlaceholderPassword, constants.PlaceholderNumber:
		return true
	}
	return placeholderRun.MatchString(s)
}

func monitorRule(name, description string, check func(m *model.MonitorConfig, f *findings)) Rule {
	return &funcRule{
		name:        name,
		section:     model.SectionMonitor,
		description: description,
		check: func(p *model.Project) []model.Finding {
			if p.Monitor == nil {
				return nil
			}
			f := newFindings(name, model.SectionMonitor)
			check(p.Monitor, f)
			return f.result()
		},
	}
}

func monitorRules() []Rule {
	return []Rule{
		headerOnlyRule{RuleRecipientCount, model.SectionMonitor, "declared recipient count matches the recipient list"},
		monitorRule(RuleHysteresisGap, "clear threshold is strictly above the alert threshold", checkHysteresis),
		monitorRule(RuleAlertStorm, "alert repeat interval is not shorter than the sensor read interval", checkAlertStorm),
		monitorRule(RuleRFConsistency, "RF parameters are all placeholders or all populated", checkRFConsistency),
		monitorRule(RuleRecipientsPresent, "at least one alert recipient is configured", checkRecipientsPresent),
		monitorRule(RuleRecipientsLimit, "recipient list fits the sketch's capacity", checkRecipientsLimit),
		monitorRule(RuleRecipientsE164, "recipient numbers are in E.164 format", checkRecipientsE164),
		monitorRule(RuleRecipientsDuplicate, "recipient numbers are unique", checkRecipientsDuplicate),
		monitorRule(RuleSMSCredentials, "SMS account SID, token and sender number are well formed", checkSMSCredentials),
		monitorRule(RuleWiFiCredentials, "WiFi SSID and passphrase lengths are valid", checkWiFiCredentials),
		monitorRule(RulePlaceholderValues, "no stock placeholder values are left", checkPlaceholders),
		monitorRule(RuleReadInterval, "sensor read interval is positive", checkReadInterval),
		monitorRule(RuleLocation, "location label is set", checkLocation),
		rfPinRule(),
	}
}

// headerOnlyRule names a property that only header decoding can violate.
// The model derives the recipient count from the list, so a project can
// never disagree with itself; header.DecodeMonitor reports a mismatched
// NUM_RECIPIENTS under this name. Registering it keeps the rule listable
// and skippable like any other.
type headerOnlyRule struct {
	name        string
	section     string
	description string
}

func (r headerOnlyRule) Name() string                           { return r.name }
func (r headerOnlyRule) Section() string                        { return r.section }
func (r headerOnlyRule) Description() string                    { return r.description + " (checked on import)" }
func (r headerOnlyRule) Check(p *model.Project) []model.Finding { return nil }

func checkHysteresis(m *model.MonitorConfig, f *findings) {
	t := m.Thresholds
	if math.IsNaN(t.AlertF) || math.IsInf(t.AlertF, 0) || math.IsNaN(t.ClearF) || math.IsInf(t.ClearF, 0) {
		f.errorf("thresholds", "thresholds must be finite numbers")
		return
	}
	if !(t.Gap() > 0) {
		f.errorf("thresholds.clear_f", "clear threshold %.1f°F must be above alert threshold %.1f°F", t.ClearF, t.AlertF)
	}
}

func checkAlertStorm(m *model.MonitorConfig, f *findings) {
	t := m.Timing
	if t.AlertRepeatMS < t.ReadIntervalMS {
		f.errorf("timing.alert_repeat_ms", "alert repeat interval %dms is shorter than the read interval %dms",
			t.AlertRepeatMS, t.ReadIntervalMS)
	}
}

func checkReadInterval(m *model.MonitorConfig, f *findings) {
	if m.Timing.ReadIntervalMS == 0 {
		f.errorf("timing.read_interval_ms", "read interval must be greater than zero")
	}
}

func checkRFConsistency(m *model.MonitorConfig, f *findings) {
	rf := m.RF
	if rf.BitLength < 0 || rf.Protocol < 0 || rf.PulseUS < 0 {
		f.errorf("rf", "RF parameters must not be negative")
		return
	}

	switch rf.State() {
	case model.RFDisabled:
		f.infof("rf.code", "no RF code captured; alarm trigger is disabled")
	case model.RFPartial:
		var missing []string
		if rf.BitLength == 0 {
			missing = append(missing, "bit_length")
		}
		if rf.Protocol == 0 {
			missing = append(missing, "protocol")
		}
		if rf.PulseUS == 0 {
			missing = append(missing, "pulse_us")
		}
		f.errorf("rf", "RF code is set but %s %s missing", strings.Join(missing, ", "), plural(len(missing), "is", "are"))
	case model.RFEnabled:
		if rf.BitLength > constants.MaxRFBitLength {
			f.errorf("rf.bit_length", "bit length %d exceeds %d", rf.BitLength, constants.MaxRFBitLength)
		} else if rf.BitLength < 64 && rf.Code>>uint(rf.BitLength) != 0 {
			f.errorf("rf.code", "code does not fit in %d bits", rf.BitLength)
		}
		if rf.Protocol > constants.MaxRFProtocol {
			f.errorf("rf.protocol", "protocol %d is outside 1..%d", rf.Protocol, constants.MaxRFProtocol)
		}
		if rf.PulseUS < constants.MinRFPulseUS || rf.PulseUS > constants.MaxRFPulseUS {
			f.errorf("rf.pulse_us", "pulse width %dµs is outside %d..%dµs",
				rf.PulseUS, constants.MinRFPulseUS, constants.MaxRFPulseUS)
		}
	}
}

func rfPinRule() Rule {
	return &funcRule{
		name:        RuleRFPin,
		section:     model.SectionMonitor,
		description: "RF transmitter pin is a free, output-capable GPIO",
		check: func(p *model.Project) []model.Finding {
			if p.Monitor == nil || p.Monitor.RF.State() != model.RFEnabled {
				return nil
			}
			f := newFindings(RuleRFPin, model.SectionMonitor)
			pin := p.Monitor.RF.TxPin
			if problem := outputPinProblem(pin); problem != "" {
				f.errorf("rf.tx_pin", "GPIO %d %s", pin, problem)
			}
			if p.Display != nil {
				for signal, used := range p.Display.Pins.All() {
					if used == pin {
						f.errorf("rf.tx_pin", "GPIO %d is already used by the display %s signal", pin, strings.ToUpper(signal))
					}
				}
			}
			return f.result()
		},
	}
}

func checkRecipientsPresent(m *model.MonitorConfig, f *findings) {
	if m.RecipientCount() == 0 {
		f.errorf("recipients", "no alert recipients configured")
	}
}

func checkRecipientsLimit(m *model.MonitorConfig, f *findings) {
	if n := m.RecipientCount(); n > constants.MaxRecipients {
		f.warnf("recipients", "%d recipients configured; the monitor supports up to %d", n, constants.MaxRecipients)
	}
}

func checkRecipientsE164(m *model.MonitorConfig, f *findings) {
	for i, number := range m.Recipients {
		if IsPlaceholder(number) {
			continue
		}
		if !e164Pattern.MatchString(number) {
			f.errorf(fmt.Sprintf("recipients[%d]", i), "recipient is not an E.164 number")
		}
	}
}

func checkRecipientsDuplicate(m *model.MonitorConfig, f *findings) {
	seen := make(map[string]int)
	for i, number := range m.Recipients {
		if IsPlaceholder(number) {
			continue
		}
		if first, ok := seen[number]; ok {
			f.warnf(fmt.Sprintf("recipients[%d]", i), "duplicates recipients[%d]", first)
			continue
		}
		seen[number] = i
	}
}

func checkSMSCredentials(m *model.MonitorConfig, f *findings) {
	sms := m.SMS
	if !IsPlaceholder(sms.AccountSID) && !accountSIDPattern.MatchString(sms.AccountSID) {
		f.errorf("sms.account_sid", "account SID must be AC followed by 32 hex digits")
	}
	if !IsPlaceholder(sms.AuthToken) && !authTokenPattern.MatchString(sms.AuthToken) {
		f.errorf("sms.auth_token", "auth token must be 32 hex digits")
	}
	if !IsPlaceholder(sms.FromNumber) && !e164Pattern.MatchString(sms.FromNumber) {
		f.errorf("sms.from_number", "sender number is not an E.164 number")
	}
}

func checkWiFiCredentials(m *model.MonitorConfig, f *findings) {
	w := m.WiFi
	if w.SSID == "" {
		f.errorf("wifi.ssid", "SSID is empty")
	} else if len(w.SSID) > constants.MaxSSIDLength {
		f.errorf("wifi.ssid", "SSID is %d bytes; the limit is %d", len(w.SSID), constants.MaxSSIDLength)
	}
	if n := len(w.Password); n > 0 && (n < constants.MinWPAPassphraseSize || n > constants.MaxWPAPassphraseSize) {
		f.errorf("wifi.password", "WPA2 passphrase must be %d..%d characters, got %d",
			constants.MinWPAPassphraseSize, constants.MaxWPAPassphraseSize, n)
	}
}

type namedValue struct {
	name  string
	value string
}

func checkPlaceholders(m *model.MonitorConfig, f *findings) {
	fields := []namedValue{
		{"wifi.ssid", m.WiFi.SSID},
		{"wifi.password", m.WiFi.Password},
		{"sms.account_sid", m.SMS.AccountSID},
		{"sms.auth_token", m.SMS.AuthToken},
		{"sms.from_number", m.SMS.FromNumber},
	}
	for i, number := range m.Recipients {
		fields = append(fields, namedValue{fmt.Sprintf("recipients[%d]", i), number})
	}

	for _, field := range fields {
		if IsPlaceholder(field.value) {
			f.errorf(field.name, "stock placeholder value must be replaced before upload")
		}
	}
}

func checkLocation(m *model.MonitorConfig, f *findings) {
	if strings.TrimSpace(m.Location) == "" {
		f.warnf("location", "location label is empty; alerts will not say where the sensor is")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
