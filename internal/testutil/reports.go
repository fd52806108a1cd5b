package testutil

import (
	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
)

// F returns a frame at name.go:1 whose identity is "name.go#1".
func F(name string) report.Frame {
	return report.NewFrame(name+".go", 1, name)
}

// ID returns the identity of the frame built by F(name).
func ID(name string) recordid.ID {
	return recordid.Location(name+".go", 1)
}

// IDs maps names to frame identities.
func IDs(names ...string) []recordid.ID {
	out := make([]recordid.ID, len(names))
	for i, n := range names {
		out[i] = ID(n)
	}
	return out
}

// Stack returns a report whose stacktrace holds F(name) for each name, in
// the given (outermost first) order.
func Stack(typ, value string, names ...string) report.Report {
	frames := make([]report.Frame, len(names))
	for i, n := range names {
		frames[i] = F(n)
	}
	return report.Report{
		Type:       typ,
		Value:      value,
		Stacktrace: &report.Stacktrace{Frames: frames},
	}
}

// Stackless returns a report without a stacktrace.
func Stackless(typ, value string) report.Report {
	return report.Report{Type: typ, Value: value}
}
