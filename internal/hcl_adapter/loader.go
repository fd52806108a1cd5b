package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/stackagg/internal/config"
	"github.com/specialistvlad/stackagg/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader that exposes the process
// environment as the `env` variable.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// NewLoaderWithEnv creates a loader whose `env` variable is built from
// environ, in os.Environ's KEY=value form.
func NewLoaderWithEnv(environ []string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

// fileRoot mirrors the top level of a run configuration file.
type fileRoot struct {
	Inputs      []string      `hcl:"inputs,optional"`
	Workers     *int          `hcl:"workers,optional"`
	MetricsFile *string       `hcl:"metrics_file,optional"`
	Output      *OutputBlock  `hcl:"output,block"`
	Logging     *LoggingBlock `hcl:"logging,block"`
}

// OutputBlock is the `output { ... }` block.
type OutputBlock struct {
	Format *string `hcl:"format,optional"`
	File   *string `hcl:"file,optional"`
}

// LoggingBlock is the `logging { ... }` block.
type LoggingBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load parses and decodes the HCL file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	if filepath.Ext(path) != ".hcl" {
		return nil, fmt.Errorf("specified file is not an .hcl file: %s", path)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, newEvalContext(l.environ()), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := translate(root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "inputs", len(model.Inputs), "workers", model.Workers, "output_format", model.Output.Format)
	return model, nil
}

// translate converts the decoded HCL structure into the format-agnostic
// model. Relative inputs are anchored at baseDir.
func translate(root fileRoot, baseDir string) (*config.Model, error) {
	model := &config.Model{}

	for _, in := range root.Inputs {
		if in == "" {
			return nil, fmt.Errorf("inputs must not contain empty paths")
		}
		if in != "-" && !filepath.IsAbs(in) {
			in = filepath.Join(baseDir, in)
		}
		model.Inputs = append(model.Inputs, in)
	}

	if root.Workers != nil {
		if *root.Workers < 1 {
			return nil, fmt.Errorf("workers must be at least 1, got %d", *root.Workers)
		}
		model.Workers = *root.Workers
	}

	model.MetricsFile = deref(root.MetricsFile)

	if root.Output != nil {
		model.Output.Format = deref(root.Output.Format)
		model.Output.File = deref(root.Output.File)
	}
	if root.Logging != nil {
		model.Logging.Level = deref(root.Logging.Level)
		model.Logging.Format = deref(root.Logging.Format)
	}
	return model, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
