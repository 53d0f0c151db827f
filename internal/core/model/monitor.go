package model

import (
	"strconv"
	"strings"
	"time"
)

// MonitorConfig holds everything the appliance-monitor sketch reads at startup.
type MonitorConfig struct {
	WiFi       WiFiConfig `json:"wifi" yaml:"wifi"`
	SMS        SMSConfig  `json:"sms" yaml:"sms"`
	Recipients []string   `json:"recipients" yaml:"recipients"`
	Location   string     `json:"location" yaml:"location"`
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
	Timing     Timing     `json:"timing" yaml:"timing"`
	RF         RFConfig   `json:"rf" yaml:"rf"`
}

type WiFiConfig struct {
	SSID     string `json:"ssid" yaml:"ssid"`
	Password string `json:"password" yaml:"password"`
}

// SMSConfig is the cloud messaging account used for alert delivery.
type SMSConfig struct {
	AccountSID string `json:"account_sid" yaml:"account_sid"`
	AuthToken  string `json:"auth_token" yaml:"auth_token"`
	FromNumber string `json:"from_number" yaml:"from_number"`
}

// Thresholds are in degrees Fahrenheit. An alert fires below AlertF and
// clears above ClearF.
type Thresholds struct {
	AlertF float64 `json:"alert_f" yaml:"alert_f"`
	ClearF float64 `json:"clear_f" yaml:"clear_f"`
}

// Gap returns the hysteresis gap. It must be strictly positive.
func (t Thresholds) Gap() float64 {
	return t.ClearF - t.AlertF
}

type Timing struct {
	ReadIntervalMS uint64 `json:"read_interval_ms" yaml:"read_interval_ms"`
	AlertRepeatMS  uint64 `json:"alert_repeat_ms" yaml:"alert_repeat_ms"`
}

func (t Timing) ReadInterval() time.Duration {
	return time.Duration(t.ReadIntervalMS) * time.Millisecond
}

func (t Timing) AlertRepeat() time.Duration {
	return time.Duration(t.AlertRepeatMS) * time.Millisecond
}

// RFConfig holds the captured 433 MHz alarm code. Code 0 means the
// operator has not captured anything yet and the trigger is skipped.
type RFConfig struct {
	TxPin     int    `json:"tx_pin" yaml:"tx_pin"`
	Code      uint64 `json:"code" yaml:"code"`
	BitLength int    `json:"bit_length" yaml:"bit_length"`
	Protocol  int    `json:"protocol" yaml:"protocol"`
	PulseUS   int    `json:"pulse_us" yaml:"pulse_us"`
}

type RFState int

const (
	RFDisabled RFState = iota
	RFEnabled
	RFPartial
)

func (s RFState) String() string {
	switch s {
	case RFDisabled:
		return "disabled"
	case RFEnabled:
		return "enabled"
	case RFPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// State classifies the RF parameters. With no code captured the remaining
// fields are placeholders and the feature is off; with a code, every
// field must be populated.
func (r RFConfig) State() RFState {
	if r.Code == 0 {
		return RFDisabled
	}
	if r.BitLength == 0 || r.Protocol == 0 || r.PulseUS == 0 {
		return RFPartial
	}
	return RFEnabled
}

// sensitiveFields are the monitor fields whose values must never leave
// the machine: credentials, phone numbers and the captured RF code.
var sensitiveFields = []string{"wifi.", "sms.", "recipients", "rf.code"}

// IsSensitiveField reports whether a finding field names a secret value
func IsSensitiveField(field string) bool {
	for _, prefix := range sensitiveFields {
		if strings.HasPrefix(field, prefix) {
			return true
		}
	}
	return false
}

// Secrets returns the non-empty secret values of m, including the RF
// code in decimal and hex, for redaction.
func (m *MonitorConfig) Secrets() []string {
	var out []string
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	add(m.WiFi.SSID, m.WiFi.Password, m.SMS.AccountSID, m.SMS.AuthToken, m.SMS.FromNumber)
	add(m.Recipients...)
	if m.RF.Code != 0 {
		add(strconv.FormatUint(m.RF.Code, 10), strconv.FormatUint(m.RF.Code, 16), strings.ToUpper(strconv.FormatUint(m.RF.Code, 16)))
	}
	return out
}

// RecipientCount is the number of alert recipients. It is always derived
// from the list; there is no separately stored count.
func (m *MonitorConfig) RecipientCount() int {
	return len(m.Recipients)
}

// DefaultMonitor returns the stock values shipped with the laundry monitor.
func DefaultMonitor() *MonitorConfig {
	return &MonitorConfig{
		WiFi: WiFiConfig{
			SSID:     "your_wifi_ssid",
			Password: "your_wifi_password",
		},
		SMS: SMSConfig{
			AccountSID: "ACxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
			AuthToken:  "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
			FromNumber: "+1XXXXXXXXXX",
		},
		Recipients: []string{"+1XXXXXXXXXX", "+1XXXXXXXXXX", "+1XXXXXXXXXX"},
		Location:   "Laundry Room",
		Thresholds: Thresholds{AlertF: 45.0, ClearF: 48.0},
		Timing: Timing{
			ReadIntervalMS: 30_000,
			AlertRepeatMS:  1_800_000,
		},
		RF: RFConfig{
			TxPin:     26,
			Code:      0,
			BitLength: 24,
			Protocol:  1,
			PulseUS:   305,
		},
	}
}
