package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#pragma once\n"), 0644))
}

func TestSketchScanner(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "monitor", "config.h"))
	touch(t, filepath.Join(base, "dashboard", "lv_conf.h"))
	touch(t, filepath.Join(base, "dashboard", "User_Setup.h"))
	touch(t, filepath.Join(base, "dashboard", "main.cpp"))
	touch(t, filepath.Join(base, "dashboard", "libraries", "TFT_eSPI", "User_Setup.h"))
	touch(t, filepath.Join(base, "notes", "readme.txt"))

	dirs, err := NewSketchScanner(base).Scan()
	require.NoError(t, err)
	require.Len(t, dirs, 2)

	assert.Equal(t, filepath.Join(base, "dashboard"), dirs[0].Path)
	assert.Equal(t, []string{
		filepath.Join(base, "dashboard", "User_Setup.h"),
		filepath.Join(base, "dashboard", "lv_conf.h"),
	}, dirs[0].Headers)

	assert.Equal(t, filepath.Join(base, "monitor"), dirs[1].Path)
	assert.Len(t, dirs[1].Headers, 1)
}

func TestSketchScannerEmpty(t *testing.T) {
	dirs, err := NewSketchScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, dirs)
}
