package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/stackagg/internal/pipeline"
	"github.com/specialistvlad/stackagg/internal/recordid"
)

// Text writes one section per root:
//
//	start: <root frame>
//		ctx: <type>: <value>
//
//	full path:
//		<frame>
//		...
//
// Frames print as "function (filename:lineno)"; identifiers that do not
// resolve to a frame print as themselves.
func Text(ctx context.Context, w io.Writer, res *pipeline.Result) error {
	var sb strings.Builder
	for _, rr := range res.Roots {
		fmt.Fprintf(&sb, "start: %s\n", frameLabel(ctx, res, rr.Root))
		for _, ec := range rr.Contexts {
			fmt.Fprintf(&sb, "\tctx: %s\n", ec)
		}
		for _, path := range rr.Paths {
			sb.WriteString("\nfull path:\n")
			for _, id := range path {
				fmt.Fprintf(&sb, "\t%s\n", frameLabel(ctx, res, id))
			}
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func frameLabel(ctx context.Context, res *pipeline.Result, id recordid.ID) string {
	if f, ok := res.Frame(ctx, id); ok {
		return f.String()
	}
	return id.String()
}
