package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/stackagg/internal/config"
	"github.com/specialistvlad/stackagg/internal/hcl_adapter"
	"github.com/specialistvlad/stackagg/internal/inmemorycontent"
	"github.com/specialistvlad/stackagg/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConfigLoader returns a fixed model or error.
type stubConfigLoader struct {
	model *config.Model
	err   error
	calls int
}

func (s *stubConfigLoader) Load(_ context.Context, _ string) (*config.Model, error) {
	s.calls++
	return s.model, s.err
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "errors.json"), testutil.PluginWorkerErrorsJSON, 0o600))
	return dir
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := NewApp(out, logs, &cfg, &stubConfigLoader{}, opts...)
	require.NoError(t, err)
	return a, out, logs
}

func TestApp_RunText(t *testing.T) {
	a, out, logs := newTestApp(t, Config{Inputs: []string{fixtureDir(t)}, LogLevel: "debug"})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 3, strings.Count(out.String(), "start: "))
	assert.Contains(t, out.String(), "\tctx: status \"InternalError\": Worker stopped unexpectedly")
	assert.Contains(t, out.String(), "(external/org_golang_google_grpc/server.go:878)\n")
	assert.Contains(t, logs.String(), "Aggregation finished.")
	assert.Contains(t, logs.String(), "unique_roots=3")
}

func TestApp_RunJSONToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "result.json")
	a, out, _ := newTestApp(t, Config{
		Inputs:     []string{fixtureDir(t)},
		Format:     "json",
		OutputPath: outPath,
		Workers:    4,
	})

	require.NoError(t, a.Run(context.Background()))
	assert.Empty(t, out.String(), "result goes to the file, not stdout")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc struct {
		Roots []struct {
			Root  string     `json:"root"`
			Paths [][]string `json:"paths"`
		} `json:"roots"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Roots, 3)
	assert.Equal(t, "yext/net/grpc/grpctrace/server.go#97", doc.Roots[0].Root)
	assert.Len(t, doc.Roots[2].Paths, 5)
}

func TestApp_RunStdin(t *testing.T) {
	in := strings.NewReader(`{"values":[{"type":"E","value":"v","stacktrace":{"frames":[
		{"filename":"main.go","lineno":1,"function":"main"},
		{"filename":"run.go","lineno":2,"function":"run"}]}}]}`)
	a, out, _ := newTestApp(t, Config{Inputs: []string{"-"}}, WithInput(in))

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "start: run (run.go:2)\n\tctx: E: v\n\nfull path:\n\trun (run.go:2)\n\tmain (main.go:1)\n\n", out.String())
}

func TestApp_RunMixedInputsKeepOrder(t *testing.T) {
	in := strings.NewReader(`[{"type":"First","value":"stdin","stacktrace":{"frames":[{"filename":"first.go","lineno":1}]}}]`)
	a, out, _ := newTestApp(t, Config{Inputs: []string{"-", fixtureDir(t)}, Format: "json"}, WithInput(in))

	require.NoError(t, a.Run(context.Background()))
	var doc struct {
		Roots []struct {
			Root string `json:"root"`
		} `json:"roots"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.NotEmpty(t, doc.Roots)
	require.Len(t, doc.Roots, 4)
	assert.Equal(t, "first.go#1", doc.Roots[0].Root, "stdin reports are ingested first")
}

func TestApp_RunUsesInjectedStore(t *testing.T) {
	store := inmemorycontent.New()
	a, _, _ := newTestApp(t, Config{Inputs: []string{fixtureDir(t)}}, WithStore(store))

	require.NoError(t, a.Run(context.Background()))
	assert.Positive(t, store.Len(context.Background()))
}

func TestApp_RunErrors(t *testing.T) {
	a, _, _ := newTestApp(t, Config{Inputs: []string{filepath.Join(t.TempDir(), "missing.json")}})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input path not found")
	assert.False(t, errors.Is(err, ErrInvalidConfig))

	bad := strings.NewReader(`{"nope":1}`)
	a, _, _ = newTestApp(t, Config{Inputs: []string{"-"}}, WithInput(bad))
	assert.ErrorContains(t, a.Run(context.Background()), "standard input")

	a, _, _ = newTestApp(t, Config{Inputs: []string{fixtureDir(t)}, OutputPath: filepath.Join(t.TempDir(), "no", "such", "dir.txt")})
	assert.ErrorContains(t, a.Run(context.Background()), "failed to create output file")
}

func TestNewApp_MergesConfigFile(t *testing.T) {
	stub := &stubConfigLoader{model: &config.Model{
		Inputs:  []string{"from-file"},
		Workers: 3,
		Output:  config.Output{Format: "json"},
	}}
	cfg := &Config{ConfigPath: "run.hcl", Workers: 8}

	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, stub)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, &Config{
		Inputs:     []string{"from-file"},
		ConfigPath: "run.hcl",
		Format:     "json",
		Workers:    8,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}, a.Config())
}

func TestNewApp_SkipsLoaderWithoutConfigPath(t *testing.T) {
	stub := &stubConfigLoader{err: errors.New("must not be called")}
	_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{Inputs: []string{"x"}}, stub)
	require.NoError(t, err)
	assert.Zero(t, stub.calls)
}

func TestNewApp_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		loader  config.Loader
		wantErr string
	}{
		{
			name:    "config file fails",
			cfg:     Config{ConfigPath: "run.hcl"},
			loader:  &stubConfigLoader{err: errors.New("boom")},
			wantErr: "failed to load config file: boom",
		},
		{
			name:    "no inputs anywhere",
			cfg:     Config{ConfigPath: "run.hcl"},
			loader:  &stubConfigLoader{model: &config.Model{}},
			wantErr: "no inputs",
		},
		{
			name:    "bad format in file",
			cfg:     Config{ConfigPath: "run.hcl"},
			loader:  &stubConfigLoader{model: &config.Model{Inputs: []string{"x"}, Output: config.Output{Format: "xml"}}},
			wantErr: `invalid format "xml"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &tc.cfg, tc.loader)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestApp_WithHCLConfig(t *testing.T) {
	dir := fixtureDir(t)
	cfgPath := filepath.Join(dir, "run.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
inputs = ["errors.json"]
output {
  format = "json"
}
`), 0o600))

	out := &bytes.Buffer{}
	a, err := NewApp(out, &bytes.Buffer{}, &Config{ConfigPath: cfgPath}, hcl_adapter.NewLoader())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "errors.json")}, a.Config().Inputs)

	require.NoError(t, a.Run(context.Background()))
	assert.True(t, json.Valid(out.Bytes()))
}

func TestApp_RunWritesMetrics(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "run.prom")
	a, _, logs := newTestApp(t, Config{Inputs: []string{fixtureDir(t)}, MetricsPath: metricsPath})

	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stackagg_unique_roots 3")
	assert.Contains(t, string(data), `stackagg_reports_total{stacktrace="missing"} 3`)
	assert.Contains(t, string(data), `stackagg_reports_total{stacktrace="present"} 6`)
	assert.Contains(t, string(data), `stackagg_stage_duration_seconds{stage="render"}`)
	assert.Contains(t, logs.String(), "run_id=")
}
