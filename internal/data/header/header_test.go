package header

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/core/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefinesAndComments(t *testing.T) {
	src := `#pragma once
/* block
   comment */
#define FLAG_ONLY
#define WITH_VALUE   42   // the answer
#define QUOTED "a // not a comment"   // real comment
#define FUNC(x) ((x) * 2)
// #define COMMENTED_OUT 1
static const int COUNT = 3;  // trailing
`
	h, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	flag, ok := h.Lookup("FLAG_ONLY")
	require.True(t, ok)
	assert.Equal(t, "", flag.Value)
	assert.Equal(t, 4, flag.Line)

	v, ok := h.Lookup("WITH_VALUE")
	require.True(t, ok)
	assert.Equal(t, "42", v.Value)
	assert.Equal(t, "the answer", v.Comment)

	q, ok := h.Lookup("QUOTED")
	require.True(t, ok)
	assert.Equal(t, `"a // not a comment"`, q.Value)
	assert.Equal(t, "real comment", q.Comment)

	c, ok := h.Lookup("COUNT")
	require.True(t, ok)
	assert.Equal(t, "3", c.Value)

	assert.False(t, h.Has("FUNC"))
	assert.False(t, h.Has("COMMENTED_OUT"))
	assert.Equal(t, []string{"FLAG_ONLY", "WITH_VALUE", "QUOTED", "COUNT"}, h.Names())
}

func TestParseArrays(t *testing.T) {
	src := `static const char* NUMBERS[] = {
    "+15550000001",   // first
    "+15550000002",
};
static const char* INLINE[] = { "a", "b" };
`
	h, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	numbers := h.Arrays["NUMBERS"]
	assert.Equal(t, []string{"+15550000001", "+15550000002"}, numbers.Values)
	assert.Equal(t, []string{"first", ""}, numbers.Comments)
	assert.Equal(t, 1, numbers.Line)

	assert.Equal(t, []string{"a", "b"}, h.Arrays["INLINE"].Values)
}

func TestParseUnterminatedArray(t *testing.T) {
	_, err := Parse(strings.NewReader("static const char* X[] = {\n \"a\",\n"))
	assert.ErrorIs(t, err, ErrUnterminatedArray)
}

func TestParseValues(t *testing.T) {
	ints := []struct {
		raw  string
		want int64
	}{
		{"30000UL", 30000},
		{"-1", -1},
		{"0x1F", 31},
		{"(56U * 1024U)", 56 * 1024},
		{"16000000", 16000000},
	}
	for _, tt := range ints {
		got, err := ParseInt(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	_, err := ParseInt("abc")
	assert.ErrorIs(t, err, ErrInvalidValue)

	f, err := ParseFloat("45.0f")
	require.NoError(t, err)
	assert.Equal(t, 45.0, f)

	s, err := ParseString(`"say \"hi\""`)
	require.NoError(t, err)
	assert.Equal(t, `say "hi"`, s)

	_, err = ParseString("bare")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ParseUint("-5")
	assert.ErrorIs(t, err, ErrInvalidValue)

	on, err := ParseBool("")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := ParseBool("0")
	require.NoError(t, err)
	assert.False(t, off)

	assert.Equal(t, `"a\"b\\c"`, QuoteString(`a"b\c`))
}

func TestDecodeStockMonitorHeader(t *testing.T) {
	h, err := ParseFile(filepath.Join("testdata", "config.h"))
	require.NoError(t, err)
	assert.Equal(t, KindMonitor, DetectKind(h))

	m, findings := DecodeMonitor(h)
	assert.Empty(t, findings)
	assert.Equal(t, model.DefaultMonitor(), m)
}

func TestDecodeStockDisplayHeader(t *testing.T) {
	h, err := ParseFile(filepath.Join("testdata", "User_Setup.h"))
	require.NoError(t, err)
	assert.Equal(t, KindDisplay, DetectKind(h))

	d, findings := DecodeDisplay(h)
	assert.Empty(t, findings)
	assert.Equal(t, model.DefaultDisplay(), d)
}

func TestDecodeStockUIHeader(t *testing.T) {
	h, err := ParseFile(filepath.Join("testdata", "lv_conf.h"))
	require.NoError(t, err)
	assert.Equal(t, KindUI, DetectKind(h))

	u, findings := DecodeUI(h)
	assert.Empty(t, findings)
	assert.Equal(t, model.DefaultUI(), u)
}

func TestDecodeRecipientCountMismatch(t *testing.T) {
	src := `static const char* ALERT_NUMBERS[] = {
    "+15550000001",
    "+15550000002",
};
static const int NUM_RECIPIENTS = 3;  // Must match the count above
#define TEMP_ALERT_F 45.0f
`
	h, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	m, findings := DecodeMonitor(h)
	assert.Equal(t, 2, m.RecipientCount())

	var mismatch []model.Finding
	for _, f := range findings {
		if f.Rule == rules.RuleRecipientCount {
			mismatch = append(mismatch, f)
		}
	}
	require.Len(t, mismatch, 1)
	assert.Equal(t, model.SeverityError, mismatch[0].Severity)
	assert.Contains(t, mismatch[0].Message, "NUM_RECIPIENTS is 3 but ALERT_NUMBERS lists 2 entries")
}

func TestDecodeDerivedRecipientCount(t *testing.T) {
	src := `static const char* ALERT_NUMBERS[] = { "+15550000001" };
static const int NUM_RECIPIENTS = sizeof(ALERT_NUMBERS) / sizeof(ALERT_NUMBERS[0]);
`
	h, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	_, findings := DecodeMonitor(h)
	for _, f := range findings {
		assert.NotEqual(t, rules.RuleRecipientCount, f.Rule)
	}
}

func TestDecodeReportsInvalidValues(t *testing.T) {
	src := `#define TEMP_ALERT_F cold
#define ILI9341_DRIVER
#define ST7789_DRIVER
`
	h, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	_, findings := DecodeMonitor(h)
	var invalid int
	for _, f := range findings {
		if f.Rule == RuleHeaderImport && f.Field == "thresholds.alert_f" {
			invalid++
			assert.Equal(t, model.SeverityError, f.Severity)
		}
	}
	assert.Equal(t, 1, invalid)

	d, findings := DecodeDisplay(h)
	assert.Equal(t, "ILI9341", d.Driver)
	assert.Equal(t, -1, d.Pins.MOSI)
	var multi bool
	for _, f := range findings {
		if f.Field == "driver" && f.Severity == model.SeverityError {
			multi = true
		}
	}
	assert.True(t, multi)
}

func TestDecodeFilesMergesSections(t *testing.T) {
	p, findings, err := DecodeFiles(
		filepath.Join("testdata", "User_Setup.h"),
		filepath.Join("testdata", "lv_conf.h"),
		filepath.Join("testdata", "config.h"),
	)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"display", "ui", "monitor"}, p.Sections())
}

func TestDecodeUnknownKind(t *testing.T) {
	h, err := Parse(strings.NewReader("#define SOMETHING 1\n"))
	require.NoError(t, err)
	_, _, err = Decode(h)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseFloatRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NAN", "nan", "Infinity", "-INFINITY", "inf"} {
		_, err := ParseFloat(raw)
		assert.ErrorIs(t, err, ErrInvalidValue, raw)
	}
}

func TestQuoteStringCarriageReturn(t *testing.T) {
	quoted := QuoteString("line1\r\n#define X 1")
	assert.NotContains(t, quoted, "\r")
	assert.NotContains(t, quoted, "\n")

	s, err := ParseString(quoted)
	require.NoError(t, err)
	assert.Equal(t, "line1\r\n#define X 1", s)
}

func TestDecodeRejectsNonFiniteThreshold(t *testing.T) {
	h, err := Parse(strings.NewReader("#define TEMP_ALERT_F 45.0f\n#define TEMP_CLEAR_F NAN\n"))
	require.NoError(t, err)

	m, findings := DecodeMonitor(h)
	assert.Equal(t, 45.0, m.Thresholds.AlertF)
	assert.Zero(t, m.Thresholds.ClearF)

	var invalid []model.Finding
	for _, f := range findings {
		if f.Rule == RuleHeaderImport && f.Field == "thresholds.clear_f" {
			invalid = append(invalid, f)
		}
	}
	require.Len(t, invalid, 1)
	assert.Equal(t, model.SeverityError, invalid[0].Severity)
}

func TestDecodeInvalidSecretOmitsValue(t *testing.T) {
	const token = "0123456789abcdef0123456789abcdef"
	h, err := Parse(strings.NewReader("#define TWILIO_AUTH_TOKEN " + token + "\n"))
	require.NoError(t, err)

	_, findings := DecodeMonitor(h)
	var found bool
	for _, f := range findings {
		if f.Field == "sms.auth_token" {
			found = true
			assert.Equal(t, model.SeverityError, f.Severity)
			assert.Contains(t, f.Message, "line 1")
		}
		assert.NotContains(t, f.Message, token)
	}
	assert.True(t, found)
}
