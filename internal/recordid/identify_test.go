package recordid

import (
	"regexp"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/specialistvlad/stackagg/internal/report"
	"github.com/stretchr/testify/assert"
)

var hashIDRegex = regexp.MustCompile(`^h:[0-9a-f]{16}$`)

func TestIdentify_Location(t *testing.T) {
	testCases := []struct {
		name  string
		frame report.Frame
		want  ID
	}{
		{name: "plain", frame: report.NewFrame("server.go", 878, ""), want: "server.go#878"},
		{name: "function ignored", frame: report.NewFrame("server.go", 878, "handleStream"), want: "server.go#878"},
		{name: "path with hash", frame: report.NewFrame("dir#1/a.go", 2, ""), want: "dir#1/a.go#2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Identify(tc.frame))
			assert.False(t, Identify(tc.frame).IsHash())
		})
	}
}

func TestIdentify_SameLocationDifferentFunction(t *testing.T) {
	a := report.NewFrame("a.go", 10, "first")
	b := report.NewFrame("a.go", 10, "second")
	assert.Equal(t, Identify(a), Identify(b))
}

func TestIdentify_HashFallback(t *testing.T) {
	filename := "a.go"
	onlyFile := report.Frame{Filename: &filename}

	id := Identify(onlyFile)
	assert.True(t, id.IsHash())
	assert.Regexp(t, hashIDRegex, id.String())
	assert.Equal(t, id, Identify(report.Frame{Filename: &filename}), "hash is deterministic")

	other := "b.go"
	assert.NotEqual(t, id, Identify(report.Frame{Filename: &other}))
}

func TestIdentify_EmptyFrameIsStable(t *testing.T) {
	// The empty record hashes the canonical "{}" encoding.
	want := ID("h:" + hex16(xxhash.Sum64String("{}")))
	assert.Equal(t, want, Identify(report.Frame{}))
	assert.Equal(t, want, Hash(nil))
}

func TestIdentify_ExceptionContext(t *testing.T) {
	a := report.ExceptionContext{Type: "EOF", Value: "unexpected"}
	b := report.ExceptionContext{Type: "EOF", Value: "unexpected"}
	c := report.ExceptionContext{Type: "EOF", Value: ""}

	assert.Equal(t, Identify(a), Identify(b))
	assert.NotEqual(t, Identify(a), Identify(c))
	assert.Equal(t, IdentifyContext(a), Identify(a))
	assert.True(t, Identify(a).IsContext())
	assert.False(t, Identify(a).IsHash())
	assert.Regexp(t, `^c:[0-9a-f]{16}$`, Identify(a).String())
}

func TestIdentify_FrameNeverTakesContextID(t *testing.T) {
	ec := report.ExceptionContext{Type: "E", Value: "v"}
	lookalike := report.Frame{Extra: map[string]any{"type": "E", "value": "v"}}

	frameID := Identify(lookalike)
	assert.NotEqual(t, IdentifyContext(ec), frameID)
	assert.True(t, frameID.IsHash())
	assert.False(t, frameID.IsContext())
}

func TestHash_KeyOrderIndependent(t *testing.T) {
	a := map[string]any{"x": 1, "y": map[string]any{"b": 2, "a": 1}}
	b := map[string]any{"y": map[string]any{"a": 1, "b": 2}, "x": 1}
	assert.Equal(t, Hash(a), Hash(b))
}

func TestHash_UnencodableFallsBack(t *testing.T) {
	fields := map[string]any{"ch": make(chan int)}
	id := Hash(fields)
	assert.Regexp(t, hashIDRegex, id.String())
}

func hex16(v uint64) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = digits[v&0xf]
		v >>= 4
	}
	return string(out)
}

func TestUnique(t *testing.T) {
	ids := []ID{"b#1", "a#1", "b#1", "c#1", "a#1"}
	assert.Equal(t, []ID{"b#1", "a#1", "c#1"}, Unique(ids))
	assert.Empty(t, Unique(nil))
}
