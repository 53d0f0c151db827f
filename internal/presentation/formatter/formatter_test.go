package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *model.Report {
	r := &model.Report{Project: "laundry", Sections: []string{"display", "monitor"}}
	r.Add(
		model.Finding{Rule: "location", Section: "monitor", Field: "location", Severity: model.SeverityWarning, Message: "location is empty"},
		model.Finding{Rule: "hysteresis-gap", Section: "monitor", Field: "thresholds", Severity: model.SeverityError, Message: "clear 45.0 must be above alert 45.0"},
		model.Finding{Rule: "rf-consistency", Section: "monitor", Field: "rf", Severity: model.SeverityInfo, Message: "RF replay disabled"},
	)
	return r
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    interface{}
		wantErr bool
	}{
		{"", &TableFormatter{}, false},
		{FormatTable, &TableFormatter{}, false},
		{FormatJSON, &JSONFormatter{}, false},
		{FormatCSV, &CSVFormatter{}, false},
		{"xml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, Options{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{}).Format(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Project: laundry (display, monitor)")
	assert.Contains(t, out, "hysteresis-gap")
	assert.Contains(t, out, "1 errors, 1 warnings, 1 info")
	assert.NotContains(t, out, "\033[", "no color codes when color is off")

	// errors sort first
	assert.Less(t, strings.Index(out, "hysteresis-gap"), strings.Index(out, "location is empty"))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var tableLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "│") || strings.HasPrefix(line, "┌") || strings.HasPrefix(line, "└") || strings.HasPrefix(line, "├") {
			tableLines = append(tableLines, line)
		}
	}
	require.NotEmpty(t, tableLines)
	width := len([]rune(tableLines[0]))
	for _, line := range tableLines {
		assert.Equal(t, width, len([]rune(line)), "misaligned row: %s", line)
	}
}

func TestTableFormatterColorAndWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{Color: true, Width: 60}).Format(&buf, sampleReport()))
	out := buf.String()
	assert.Contains(t, out, "\033[31m")
	assert.Contains(t, out, "…")
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{}).Format(&buf, &model.Report{Project: "ok"}))
	assert.Contains(t, buf.String(), "No findings")
	assert.NotContains(t, buf.String(), "┌")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleReport()))

	var got struct {
		Project  string `json:"project"`
		Errors   int    `json:"errors"`
		Warnings int    `json:"warnings"`
		Findings []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
		} `json:"findings"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "laundry", got.Project)
	assert.Equal(t, 1, got.Errors)
	assert.Equal(t, 1, got.Warnings)
	require.Len(t, got.Findings, 3)
	assert.Equal(t, "error", got.Findings[0].Severity)
	assert.Equal(t, "hysteresis-gap", got.Findings[0].Rule)
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Project", "Severity", "Section", "Rule", "Field", "Message"}, records[0])
	assert.Equal(t, "error", records[1][1])
	assert.Equal(t, "clear 45.0 must be above alert 45.0", records[1][5])
}

func TestSummaryFormatterMasksSecrets(t *testing.T) {
	p := model.DefaultProject("laundry")
	p.Monitor.WiFi.Password = "supersecretpass"
	p.Monitor.SMS.AccountSID = "AC0123456789abcdef0123456789abcdef"
	p.Monitor.SMS.AuthToken = "0123456789abcdef0123456789abcdef"
	p.Monitor.Recipients = []string{"+15551234567"}
	p.Monitor.RF.Code = 0x123456

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(false).Format(&buf, p))
	out := buf.String()

	assert.NotContains(t, out, "supersecretpass")
	assert.NotContains(t, out, "0123456789abcdef0123456789abcdef")
	assert.NotContains(t, out, "+15551234567")
	assert.Contains(t, out, "********4567")
	assert.Contains(t, out, "ILI9341 240x320")
	assert.Contains(t, out, "read every 30s, repeat every 30m")
	assert.Contains(t, out, "enabled (pin 26, 24-bit, protocol 1, 305µs pulse)")
	assert.Contains(t, out, "56 KiB pool")
}

func TestSummaryFormatterEmptyProject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(false).Format(&buf, &model.Project{Name: "bare"}))
	assert.Contains(t, buf.String(), "No sections configured")
}
