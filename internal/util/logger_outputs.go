package util

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

// streamOutput writes entries to an io.Writer in text or JSON form
type streamOutput struct {
	mu     sync.Mutex
	writer io.Writer
	closer io.Closer
	format LogFormat
}

// NewConsoleOutput creates an output writing to the given writer
func NewConsoleOutput(writer io.Writer, format LogFormat) Output {
	return &streamOutput{writer: writer, format: format}
}

// NewFileOutput creates an output appending to the file at path
func NewFileOutput(path string, format LogFormat) (Output, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &streamOutput{writer: file, closer: file, format: format}, nil
}

func (s *streamOutput) Write(entry LogEntry) error {
	line, err := formatEntry(entry, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = fmt.Fprintln(s.writer, line)
	return err
}

func (s *streamOutput) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func formatEntry(entry LogEntry, format LogFormat) (string, error) {
	if format == FormatJSON {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	line := fmt.Sprintf("%s [%s] %s", entry.Timestamp.Format("2006/01/02 15:04:05"), entry.Level, entry.Message)
	if len(entry.Fields) == 0 {
		return line, nil
	}

	// Stable field order keeps text logs diffable
	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
	}
	return line + " " + strings.Join(parts, " "), nil
}
