package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorRoundTrip(t *testing.T) {
	m := model.DefaultMonitor()
	m.Recipients = []string{"+15551110001", "+15551110002"}
	m.Thresholds = model.Thresholds{AlertF: 40.5, ClearF: 44}
	m.RF = model.RFConfig{TxPin: 26, Code: 12345678, BitLength: 24, Protocol: 1, PulseUS: 305}

	var buf bytes.Buffer
	require.NoError(t, Monitor(&buf, "Garage", m))
	assert.Contains(t, buf.String(), "sizeof(ALERT_NUMBERS) / sizeof(ALERT_NUMBERS[0])")
	assert.Contains(t, buf.String(), "#define TEMP_CLEAR_F    44.0f")

	h, err := header.Parse(&buf)
	require.NoError(t, err)
	decoded, findings := header.DecodeMonitor(h)
	assert.Empty(t, findings)
	assert.Equal(t, m, decoded)
}

func TestMonitorRequiresRecipients(t *testing.T) {
	m := model.DefaultMonitor()
	m.Recipients = nil
	assert.ErrorIs(t, Monitor(&bytes.Buffer{}, "x", m), ErrNoRecipients)
}

func TestDisplayRoundTrip(t *testing.T) {
	d := model.DefaultDisplay()

	var buf bytes.Buffer
	require.NoError(t, Display(&buf, d))
	assert.Contains(t, buf.String(), "#define ILI9341_DRIVER")

	h, err := header.Parse(&buf)
	require.NoError(t, err)
	decoded, findings := header.DecodeDisplay(h)
	assert.Empty(t, findings)
	assert.Equal(t, d, decoded)
}

func TestDisplayRequiresDriver(t *testing.T) {
	d := model.DefaultDisplay()
	d.Driver = ""
	assert.ErrorIs(t, Display(&bytes.Buffer{}, d), ErrNoDriver)
}

func TestUIRoundTrip(t *testing.T) {
	u := model.DefaultUI()

	var buf bytes.Buffer
	require.NoError(t, UI(&buf, u))
	assert.Contains(t, buf.String(), "#define LV_MEM_SIZE (56U * 1024U)")
	assert.Contains(t, buf.String(), "#define LV_USE_KEYBOARD 1")
	assert.Contains(t, buf.String(), "#define LV_USE_CANVAS 0")

	h, err := header.Parse(&buf)
	require.NoError(t, err)
	decoded, findings := header.DecodeUI(h)
	assert.Empty(t, findings)
	assert.Equal(t, u, decoded)
}

func TestCFloatAndMemSize(t *testing.T) {
	assert.Equal(t, "45.0f", cFloat(45))
	assert.Equal(t, "45.5f", cFloat(45.5))
	assert.Equal(t, "(8U * 1024U)", memSize(8192))
	assert.Equal(t, "1000U", memSize(1000))
}

func TestProjectWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	p := model.DefaultProject("Laundry")
	p.UI = nil

	written, err := Project(dir, p)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, header.FileDisplay),
		filepath.Join(dir, header.FileMonitor),
	}, written)

	info, err := os.Stat(filepath.Join(dir, header.FileMonitor))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dir, header.FileMonitor))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Laundry - config.h"))

	decoded, findings, err := header.DecodeFiles(written...)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, p.Display, decoded.Display)
	assert.Equal(t, p.Monitor, decoded.Monitor)
}

func TestMonitorRejectsNonFiniteThresholds(t *testing.T) {
	m := model.DefaultMonitor()
	m.Recipients = []string{"+15551110001"}
	m.Thresholds.ClearF = math.NaN()
	assert.ErrorIs(t, Monitor(&bytes.Buffer{}, "x", m), ErrNonFinite)

	m.Thresholds = model.Thresholds{AlertF: math.Inf(-1), ClearF: 48}
	assert.ErrorIs(t, Monitor(&bytes.Buffer{}, "x", m), ErrNonFinite)
}

func TestMonitorNameStaysInComment(t *testing.T) {
	m := model.DefaultMonitor()
	m.Recipients = []string{"+15551110001"}
	m.RF = model.RFConfig{TxPin: 26, Code: 12345678, BitLength: 24, Protocol: 1, PulseUS: 305}

	var buf bytes.Buffer
	require.NoError(t, Monitor(&buf, "Lab\n#define RF_ALARM_CODE 99UL", m))
	for _, line := range strings.Split(buf.String(), "\n") {
		assert.False(t, strings.HasPrefix(line, "#define RF_ALARM_CODE 99UL"), line)
	}

	h, err := header.Parse(&buf)
	require.NoError(t, err)
	decoded, findings := header.DecodeMonitor(h)
	assert.Empty(t, findings)
	assert.Equal(t, uint64(12345678), decoded.RF.Code)
}

func TestDisplayInfoStaysInComment(t *testing.T) {
	d := model.DefaultDisplay()
	d.Info = "bench\r\n#define ST7789_DRIVER"

	var buf bytes.Buffer
	require.NoError(t, Display(&buf, d))

	h, err := header.Parse(&buf)
	require.NoError(t, err)
	decoded, findings := header.DecodeDisplay(h)
	assert.Empty(t, findings)
	assert.Equal(t, "ILI9341", decoded.Driver)
	assert.Equal(t, d.Info, decoded.Info)
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "a b c", commentText("a\nb\r\n\tc "))
	assert.Equal(t, "", commentText("\n"))
}
