package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	keyFilename = "filename"
	keyLineno   = "lineno"
	keyFunction = "function"
	keyModule   = "module"
	keyInApp    = "in_app"
)

// FrameFromMap builds a Frame from a decoded object. Named fields are type
// checked; everything else lands in Extra untouched.
func FrameFromMap(m map[string]any) (Frame, error) {
	var f Frame
	for k, v := range m {
		switch k {
		case keyFilename, keyFunction, keyModule:
			s, ok := v.(string)
			if !ok {
				return Frame{}, fmt.Errorf("frame field %q: expected string, got %T", k, v)
			}
			switch k {
			case keyFilename:
				f.Filename = &s
			case keyFunction:
				f.Function = &s
			default:
				f.Module = &s
			}
		case keyLineno:
			n, err := toInt(v)
			if err != nil {
				return Frame{}, fmt.Errorf("frame field %q: %w", k, err)
			}
			f.Lineno = &n
		case keyInApp:
			b, ok := v.(bool)
			if !ok {
				return Frame{}, fmt.Errorf("frame field %q: expected bool, got %T", k, v)
			}
			f.InApp = &b
		default:
			if f.Extra == nil {
				f.Extra = make(map[string]any)
			}
			f.Extra[k] = v
		}
	}
	return f, nil
}

// toInt accepts any integral number, whatever numeric type the decoder
// produced for it.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("integer %d out of range", n)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("integer %d out of range", n)
		}
		return int(n), nil
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return toInt(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %s", n)
		}
		return floatToInt(f)
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("integer %v out of range", f)
	}
	return int(f), nil
}

// UnmarshalJSON decodes a frame object, preserving unknown fields in Extra.
func (f *Frame) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	decoded, err := FrameFromMap(m)
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}

// MarshalJSON encodes the frame's present fields.
func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Fields())
}

// UnmarshalYAML decodes a frame mapping, preserving unknown fields in Extra.
func (f *Frame) UnmarshalYAML(value *yaml.Node) error {
	var m map[string]any
	if err := value.Decode(&m); err != nil {
		return err
	}
	decoded, err := FrameFromMap(m)
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}
