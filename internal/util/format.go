package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaskSecret keeps the first and last two characters of a secret
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// MaskPhone hides all but the last four digits of a phone number
func MaskPhone(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

// FormatDuration renders intervals the way operators write them (30s, 30m, 1h30m)
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return d.String()
	}
	hours := int(d / time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)
	seconds := int(d%time.Minute) / int(time.Second)

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	if seconds > 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}
	return b.String()
}

// FormatFrequency renders a clock rate in MHz or kHz
func FormatFrequency(hz int) string {
	switch {
	case hz >= 1_000_000 && hz%1_000_000 == 0:
		return fmt.Sprintf("%d MHz", hz/1_000_000)
	case hz >= 1_000_000:
		return fmt.Sprintf("%.1f MHz", float64(hz)/1_000_000)
	case hz >= 1_000:
		return fmt.Sprintf("%d kHz", hz/1_000)
	default:
		return fmt.Sprintf("%d Hz", hz)
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and replaces runs of other characters with '-'
func Slug(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// ExpandPath expands a leading ~/ and makes the path absolute
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// EnsureDir creates dir and its parents
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// WriteFileAtomic writes data to a temp file and renames it into place
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpFile, err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename %s: %w", tmpFile, err)
	}
	return nil
}
