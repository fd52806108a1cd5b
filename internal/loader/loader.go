package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/stackagg/internal/ctxlog"
	"github.com/specialistvlad/stackagg/internal/report"
)

// Loader reads report batches from the filesystem.
type Loader struct{}

// NewLoader creates a new report loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load resolves paths and concatenates the reports of every file found, in
// resolution order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]report.Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Report loader started.", "path_count", len(paths))

	files, err := ResolvePaths(ctx, paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered report files.", "count", len(files))

	var all []report.Report
	for _, file := range files {
		reports, err := l.LoadFile(file)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded report file.", "path", file, "reports", len(reports))
		all = append(all, reports...)
	}

	logger.Debug("Report loading complete.", "reports", len(all))
	return all, nil
}

// LoadFile decodes a single file, choosing the format from its extension.
func (l *Loader) LoadFile(path string) ([]report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file %s: %w", path, err)
	}
	reports, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode report file %s: %w", path, err)
	}
	return reports, nil
}
