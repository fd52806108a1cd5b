package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/stackagg/internal/ctxlog"
	"github.com/specialistvlad/stackagg/internal/fsutil"
)

// Format is the encoding of a report document.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Extensions lists the file extensions the loader picks up.
var Extensions = []string{".json", ".yaml", ".yml"}

// FormatOf returns the format implied by a file's extension.
func FormatOf(path string) Format {
	switch {
	case fsutil.HasExtension(path, ".json"):
		return FormatJSON
	case fsutil.HasExtension(path, ".yaml", ".yml"):
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// ResolvePaths expands files and directories into the list of report files
// to load. A file given explicitly must have a supported extension; files
// inside directories without one are skipped. Each file appears once.
func ResolvePaths(ctx context.Context, paths ...string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		logger.Debug("Resolving input path.", "path", path)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input path not found: %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if FormatOf(path) == FormatUnknown {
				return nil, fmt.Errorf("unsupported report file (want .json, .yaml or .yml): %s", path)
			}
			add(path)
			continue
		}

		logger.Debug("Path is a directory, scanning for report files.", "directory", path)
		found, err := fsutil.FindFilesByExtension(path, Extensions...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
