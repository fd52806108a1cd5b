package testutil

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/stackagg/internal/report"
	"github.com/stretchr/testify/require"
)

// PluginWorkerErrorsJSON is a captured batch of plugin worker crashes in the
// Sentry {"values": [...]} envelope: one deep gRPC stack, three stackless
// reports and six plugin-runtime stacks sharing a starting frame.
//
//go:embed testdata/plugin_worker_errors.json
var PluginWorkerErrorsJSON []byte

// PluginWorkerErrors decodes PluginWorkerErrorsJSON.
func PluginWorkerErrors(t *testing.T) []report.Report {
	t.Helper()
	var envelope struct {
		Values []report.Report `json:"values"`
	}
	require.NoError(t, json.Unmarshal(PluginWorkerErrorsJSON, &envelope))
	return envelope.Values
}
