package messaging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
)

const topicFormat = "cyd/%s/config/report"

// Topic returns the report topic for a monitor location
func Topic(location string) string {
	slug := util.Slug(location)
	if slug == "" {
		slug = "unknown"
	}
	return fmt.Sprintf(topicFormat, slug)
}

// ReportSummary counts findings by severity
type ReportSummary struct {
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Info     int  `json:"info"`
	OK       bool `json:"ok"`
}

// MonitorSummary is the non-secret part of the monitor section
type MonitorSummary struct {
	Location       string  `json:"location"`
	Recipients     int     `json:"recipients"`
	AlertF         float64 `json:"alert_f"`
	ClearF         float64 `json:"clear_f"`
	ReadIntervalMS uint64  `json:"read_interval_ms"`
	AlertRepeatMS  uint64  `json:"alert_repeat_ms"`
	RF             string  `json:"rf"`
}

// ReportMessage is the published payload. It never carries credentials,
// phone numbers or the RF code.
type ReportMessage struct {
	Project     string          `json:"project"`
	GeneratedAt time.Time       `json:"generated_at"`
	Sections    []string        `json:"sections"`
	Summary     ReportSummary   `json:"summary"`
	Monitor     *MonitorSummary `json:"monitor,omitempty"`
	Findings    []model.Finding `json:"findings"`
}

func NewReportMessage(p *model.Project, report *model.Report, now time.Time) ReportMessage {
	msg := ReportMessage{
		Project:     report.Project,
		GeneratedAt: now.UTC(),
		Sections:    report.Sections,
		Summary: ReportSummary{
			Errors:   report.Count(model.SeverityError),
			Warnings: report.Count(model.SeverityWarning),
			Info:     report.Count(model.SeverityInfo),
			OK:       !report.HasErrors(),
		},
		Findings: redactFindings(report.Sorted(), p),
	}

	if p != nil && p.Monitor != nil {
		m := p.Monitor
		msg.Monitor = &MonitorSummary{
			Location:       m.Location,
			Recipients:     m.RecipientCount(),
			AlertF:         m.Thresholds.AlertF,
			ClearF:         m.Thresholds.ClearF,
			ReadIntervalMS: m.Timing.ReadIntervalMS,
			AlertRepeatMS:  m.Timing.AlertRepeatMS,
			RF:             m.RF.State().String(),
		}
	}
	return msg
}

const redacted = "[redacted]"

// Shorter values would match ordinary numbers in messages
const minRedactLen = 4

// redactFindings copies findings with every secret value of p removed
// from the messages
func redactFindings(findings []model.Finding, p *model.Project) []model.Finding {
	var secrets []string
	if p != nil && p.Monitor != nil {
		secrets = p.Monitor.Secrets()
	}
	// Longest first so a value never survives inside a longer one
	sort.Slice(secrets, func(i, j int) bool { return len(secrets[i]) > len(secrets[j]) })

	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		for _, secret := range secrets {
			if len(secret) < minRedactLen {
				continue
			}
			f.Message = strings.ReplaceAll(f.Message, secret, redacted)
		}
		out = append(out, f)
	}
	return out
}

// ReportTopic picks the topic for p, falling back to the project name
func ReportTopic(p *model.Project) string {
	if p != nil && p.Monitor != nil && p.Monitor.Location != "" {
		return Topic(p.Monitor.Location)
	}
	if p != nil {
		return Topic(p.Name)
	}
	return Topic("")
}

// PublishReport encodes msg and publishes it to topic
func (p *Publisher) PublishReport(topic string, msg ReportMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return p.Publish(topic, data)
}
