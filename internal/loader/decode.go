package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/getsentry/sentry-go"
	"github.com/specialistvlad/stackagg/internal/report"
	"gopkg.in/yaml.v3"
)

// ErrUnrecognizedDocument is returned for documents that match none of the
// accepted shapes.
var ErrUnrecognizedDocument = errors.New("document is not a report, a report list, a values envelope or an event")

// Decode parses a report document.
func Decode(data []byte, format Format) ([]report.Report, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// DecodeReader parses a report document read from r.
func DecodeReader(r io.Reader, format Format) ([]report.Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Decode(data, format)
}

func decodeJSON(data []byte) ([]report.Report, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var reports []report.Report
		if err := json.Unmarshal(data, &reports); err != nil {
			return nil, err
		}
		return reports, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	if raw, ok := fields["values"]; ok {
		var reports []report.Report
		if err := json.Unmarshal(raw, &reports); err != nil {
			return nil, fmt.Errorf("values: %w", err)
		}
		return reports, nil
	}

	if raw, ok := fields["exception"]; ok {
		reports, err := decodeEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("exception: %w", err)
		}
		return reports, nil
	}

	if _, ok := fields["type"]; ok {
		var r report.Report
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		return []report.Report{r}, nil
	}

	return nil, ErrUnrecognizedDocument
}

// decodeEvent reads the exception interface of a Sentry event with
// sentry-go's own types. Events carry either {"values": [...]} or, in older
// payloads, a bare list.
func decodeEvent(raw json.RawMessage) ([]report.Report, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var envelope struct {
			Values json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, err
		}
		raw = envelope.Values
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var ev sentry.Event
	if err := json.Unmarshal(raw, &ev.Exception); err != nil {
		return nil, err
	}
	return report.FromSentryEvent(&ev), nil
}

// decodeYAML normalizes the document through JSON so both formats share one
// set of shape rules and one frame decoder.
func decodeYAML(data []byte) ([]report.Report, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize YAML document: %w", err)
	}
	return decodeJSON(normalized)
}
