package report

import (
	"fmt"
	"strings"
)

// Record is anything the content store can hold: a frame or an exception
// context. Fields returns every present field keyed by its interchange name;
// absent fields are omitted so that two records differing only in an absent
// field still hash identically.
type Record interface {
	Fields() map[string]any
}

// Frame is a single call-stack entry. Every field is optional; nil means the
// field was absent in the input, which is distinct from a zero value.
type Frame struct {
	Filename *string
	Lineno   *int
	Function *string
	Module   *string
	InApp    *bool

	// Extra holds every other field found in the input object (abs_path,
	// package, colno, vars, ...). Keys are never one of the named fields.
	Extra map[string]any
}

// NewFrame returns a frame located at filename:lineno. An empty function name
// is left absent.
func NewFrame(filename string, lineno int, function string) Frame {
	f := Frame{Filename: &filename, Lineno: &lineno}
	if function != "" {
		f.Function = &function
	}
	return f
}

// Location returns the frame's filename and line number, and whether both
// are present.
func (f Frame) Location() (string, int, bool) {
	if f.Filename == nil || f.Lineno == nil {
		return "", 0, false
	}
	return *f.Filename, *f.Lineno, true
}

// IsEmpty reports whether the frame carries no fields at all.
func (f Frame) IsEmpty() bool {
	return f.Filename == nil && f.Lineno == nil && f.Function == nil &&
		f.Module == nil && f.InApp == nil && len(f.Extra) == 0
}

// Fields implements Record.
func (f Frame) Fields() map[string]any {
	out := make(map[string]any, len(f.Extra)+5)
	for k, v := range f.Extra {
		out[k] = v
	}
	if f.Filename != nil {
		out[keyFilename] = *f.Filename
	}
	if f.Lineno != nil {
		out[keyLineno] = *f.Lineno
	}
	if f.Function != nil {
		out[keyFunction] = *f.Function
	}
	if f.Module != nil {
		out[keyModule] = *f.Module
	}
	if f.InApp != nil {
		out[keyInApp] = *f.InApp
	}
	return out
}

// String renders the frame as "function (filename:lineno)", dropping
// whichever parts are absent.
func (f Frame) String() string {
	if f.IsEmpty() {
		return "<no frame>"
	}

	var sb strings.Builder
	if f.Function != nil {
		sb.WriteString(*f.Function)
	}

	loc := ""
	switch {
	case f.Filename != nil && f.Lineno != nil:
		loc = fmt.Sprintf("%s:%d", *f.Filename, *f.Lineno)
	case f.Filename != nil:
		loc = *f.Filename
	case f.Module != nil:
		loc = *f.Module
	}
	if loc != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("(" + loc + ")")
	}

	if sb.Len() == 0 {
		return fmt.Sprintf("%v", f.Fields())
	}
	return sb.String()
}

// ExceptionContext is the reduced {type, value} pair attached to a root frame.
type ExceptionContext struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Fields implements Record.
func (c ExceptionContext) Fields() map[string]any {
	return map[string]any{"type": c.Type, "value": c.Value}
}

func (c ExceptionContext) String() string {
	if c.Value == "" {
		return c.Type
	}
	return c.Type + ": " + c.Value
}

// Stacktrace is the ordered frame list of a report, outermost call first.
type Stacktrace struct {
	Frames []Frame `json:"frames" yaml:"frames"`
}

// Report is one captured exception.
type Report struct {
	Type       string      `json:"type" yaml:"type"`
	Value      string      `json:"value" yaml:"value"`
	Stacktrace *Stacktrace `json:"stacktrace,omitempty" yaml:"stacktrace,omitempty"`
}

// Context returns the report's exception context.
func (r Report) Context() ExceptionContext {
	return ExceptionContext{Type: r.Type, Value: r.Value}
}

// Frames returns the report's frames, or nil when it has no stacktrace.
func (r Report) Frames() []Frame {
	if r.Stacktrace == nil {
		return nil
	}
	return r.Stacktrace.Frames
}
