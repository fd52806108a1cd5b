package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/stackagg/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithEnv(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		env  app.Env
		want app.Config
	}{
		{
			name: "positional inputs",
			args: []string{"a.json", "dir/"},
			want: app.Config{Inputs: []string{"a.json", "dir/"}},
		},
		{
			name: "all flags",
			args: []string{"-c", "run.hcl", "-f", "JSON", "-o", "out.json", "--metrics-file", "run.prom", "-w", "4", "--log-level", "debug", "--log-format", "json", "-"},
			want: app.Config{
				Inputs:      []string{"-"},
				ConfigPath:  "run.hcl",
				Format:      "json",
				OutputPath:  "out.json",
				MetricsPath: "run.prom",
				Workers:     4,
				LogLevel:    "debug",
				LogFormat:   "json",
			},
		},
		{
			name: "config file alone",
			args: []string{"--config=run.hcl"},
			want: app.Config{ConfigPath: "run.hcl"},
		},
		{
			name: "environment fills unset flags",
			args: []string{"a.json"},
			env:  app.Env{Format: "json", Workers: 3, LogLevel: "WARN", LogFormat: "json"},
			want: app.Config{Inputs: []string{"a.json"}, Format: "json", Workers: 3, LogLevel: "warn", LogFormat: "json"},
		},
		{
			name: "flags beat environment",
			args: []string{"--format", "text", "--workers", "2", "a.json"},
			env:  app.Env{Format: "json", Workers: 3},
			want: app.Config{Inputs: []string{"a.json"}, Format: "text", Workers: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := ParseWithEnv(tc.args, tc.env, out)
			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, &tc.want, cfg)
		})
	}
}

func TestParseWithEnv_ExitsCleanly(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := ParseWithEnv(args, app.Env{}, out)
		require.NoError(t, err)
		assert.True(t, shouldExit, "args %v", args)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
		assert.Contains(t, out.String(), "--log-format")
	}
}

func TestParseWithEnv_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		env     app.Env
		wantErr string
	}{
		{name: "unknown flag", args: []string{"--nope"}, wantErr: "unknown flag: --nope"},
		{name: "bad workers type", args: []string{"-w", "x", "a.json"}, wantErr: "invalid argument"},
		{name: "zero workers", args: []string{"-w", "0", "a.json"}, wantErr: "must be at least 1"},
		{name: "bad format", args: []string{"-f", "xml", "a.json"}, wantErr: `invalid format "xml"`},
		{name: "bad log level", args: []string{"--log-level", "loud", "a.json"}, wantErr: "invalid log-level"},
		{name: "bad format from env", args: []string{"a.json"}, env: app.Env{LogFormat: "xml"}, wantErr: "invalid log-format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, shouldExit, err := ParseWithEnv(tc.args, tc.env, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}

func TestParse_ReadsEnvironment(t *testing.T) {
	t.Setenv("STACKAGG_WORKERS", "6")

	cfg, _, err := Parse([]string{"a.json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)

	t.Setenv("STACKAGG_WORKERS", "lots")
	_, _, err = Parse([]string{"a.json"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
