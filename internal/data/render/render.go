package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/header"
	"github.com/penwyp/cydconf/internal/util"
)

var (
	ErrNoRecipients = errors.New("recipient list is empty")
	ErrNoDriver     = errors.New("display driver is not set")
	ErrNonFinite    = errors.New("thresholds must be finite numbers")
)

var funcs = template.FuncMap{
	"q":       header.QuoteString,
	"b":       boolFlag,
	"cfloat":  cFloat,
	"ul":      func(v uint64) string { return strconv.FormatUint(v, 10) + "UL" },
	"upper":   strings.ToUpper,
	"memsize": memSize,
	"comment": commentText,
}

var (
	monitorTmpl = template.Must(template.New("config.h").Funcs(funcs).Parse(monitorTemplate))
	displayTmpl = template.Must(template.New("User_Setup.h").Funcs(funcs).Parse(displayTemplate))
	uiTmpl      = template.Must(template.New("lv_conf.h").Funcs(funcs).Parse(uiTemplate))
)

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// cFloat renders a float literal that always carries a decimal point
func cFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "f"
}

// commentText flattens s onto one line so it cannot escape a // comment
func commentText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func memSize(n int) string {
	if n > 0 && n%1024 == 0 {
		return fmt.Sprintf("(%dU * 1024U)", n/1024)
	}
	return fmt.Sprintf("%dU", n)
}

// Monitor writes the monitor secrets/thresholds header. The recipient
// count is derived from the array so the two cannot disagree.
func Monitor(w io.Writer, name string, m *model.MonitorConfig) error {
	if m.RecipientCount() == 0 {
		return ErrNoRecipients
	}
	for _, v := range []float64{m.Thresholds.AlertF, m.Thresholds.ClearF} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	if name == "" {
		name = "CYD Monitor"
	}
	return monitorTmpl.Execute(w, struct {
		Name string
		M    *model.MonitorConfig
	}{name, m})
}

// Display writes the display driver setup header
func Display(w io.Writer, d *model.DisplayConfig) error {
	if d.Driver == "" {
		return ErrNoDriver
	}
	return displayTmpl.Execute(w, struct {
		D *model.DisplayConfig
	}{d})
}

type toggle struct {
	Name string
	Size int
	On   bool
}

// UI writes the UI library feature header. Every known font and widget
// toggle is written explicitly.
func UI(w io.Writer, u *model.UIConfig) error {
	fonts := make([]toggle, 0, len(model.MontserratSizes))
	for _, size := range model.MontserratSizes {
		fonts = append(fonts, toggle{Size: size, On: u.HasFont(size)})
	}
	widgets := make([]toggle, 0, len(model.KnownWidgets))
	for _, name := range model.KnownWidgets {
		widgets = append(widgets, toggle{Name: name, On: u.WidgetEnabled(name)})
	}

	return uiTmpl.Execute(w, struct {
		U       *model.UIConfig
		Fonts   []toggle
		Widgets []toggle
	}{u, fonts, widgets})
}

// Project renders every section present in p into dir and returns the
// written paths. The monitor header holds credentials and is written
// owner-only.
func Project(dir string, p *model.Project) ([]string, error) {
	type job struct {
		kind   header.Kind
		perm   os.FileMode
		render func(w io.Writer) error
	}

	var jobs []job
	if p.Display != nil {
		jobs = append(jobs, job{header.KindDisplay, 0644, func(w io.Writer) error { return Display(w, p.Display) }})
	}
	if p.UI != nil {
		jobs = append(jobs, job{header.KindUI, 0644, func(w io.Writer) error { return UI(w, p.UI) }})
	}
	if p.Monitor != nil {
		jobs = append(jobs, job{header.KindMonitor, 0600, func(w io.Writer) error { return Monitor(w, p.Name, p.Monitor) }})
	}

	var written []string
	for _, j := range jobs {
		var buf bytes.Buffer
		if err := j.render(&buf); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", j.kind.FileName(), err)
		}
		path := filepath.Join(dir, j.kind.FileName())
		if err := util.WriteFileAtomic(path, buf.Bytes(), j.perm); err != nil {
			return written, err
		}
		util.LogInfo("rendered header", util.F("path", path), util.F("bytes", buf.Len()))
		written = append(written, path)
	}
	return written, nil
}
