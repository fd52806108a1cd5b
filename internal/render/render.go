package render

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/stackagg/internal/pipeline"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON}

// Func writes res to w.
type Func func(ctx context.Context, w io.Writer, res *pipeline.Result) error

// For returns the renderer for format.
func For(format string) (Func, error) {
	switch format {
	case FormatText:
		return Text, nil
	case FormatJSON:
		return JSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
	}
}
