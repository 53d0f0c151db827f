package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/cydconf/internal/data/header"
	"github.com/penwyp/cydconf/internal/util"
)

// SketchDir is a directory holding at least one configuration header
type SketchDir struct {
	Path    string
	Headers []string
}

// SketchScanner finds sketch directories below a base directory
type SketchScanner struct {
	baseDir string
	names   map[string]bool
	skip    map[string]bool
}

func NewSketchScanner(baseDir string) *SketchScanner {
	return &SketchScanner{
		baseDir: baseDir,
		names: map[string]bool{
			strings.ToLower(header.FileDisplay): true,
			strings.ToLower(header.FileUI):      true,
			strings.ToLower(header.FileMonitor): true,
		},
		// Library checkouts carry their own example headers
		skip: map[string]bool{".git": true, ".pio": true, "node_modules": true, "libraries": true, "build": true},
	}
}

// Scan returns the sketch directories sorted by path. Headers inside each
// directory are in display, ui, monitor order.
func (s *SketchScanner) Scan() ([]SketchDir, error) {
	start := time.Now()
	found := make(map[string][]string)
	dirCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip path (error): %s - %v", path, err))
			return nil
		}
		if d.IsDir() {
			if path != s.baseDir && s.skip[d.Name()] {
				return filepath.SkipDir
			}
			dirCount++
			return nil
		}
		if s.names[strings.ToLower(d.Name())] {
			dir := filepath.Dir(path)
			found[dir] = append(found[dir], path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirs := make([]SketchDir, 0, len(found))
	for dir, headers := range found {
		sort.Slice(headers, func(i, j int) bool {
			return headerOrder(headers[i]) < headerOrder(headers[j])
		})
		dirs = append(dirs, SketchDir{Path: dir, Headers: headers})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Path < dirs[j].Path })

	util.LogDebug(fmt.Sprintf("Sketch scan completed: duration %v, scanned %d directories, found %d sketches",
		time.Since(start), dirCount, len(dirs)))
	return dirs, nil
}

func headerOrder(path string) int {
	switch strings.ToLower(filepath.Base(path)) {
	case strings.ToLower(header.FileDisplay):
		return 0
	case strings.ToLower(header.FileUI):
		return 1
	default:
		return 2
	}
}
