package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/specialistvlad/stackagg/internal/pipeline"
	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
)

// Document is the JSON form of a result. Paths refer to frames by
// identifier; Frames resolves every identifier used.
type Document struct {
	Roots  []RootDocument               `json:"roots"`
	Frames map[recordid.ID]report.Frame `json:"frames"`
}

// RootDocument is the JSON form of one root.
type RootDocument struct {
	Root     recordid.ID               `json:"root"`
	Contexts []report.ExceptionContext `json:"contexts"`
	Paths    [][]recordid.ID           `json:"paths"`
}

// NewDocument converts res into its JSON form.
func NewDocument(ctx context.Context, res *pipeline.Result) Document {
	doc := Document{
		Roots:  make([]RootDocument, 0, len(res.Roots)),
		Frames: make(map[recordid.ID]report.Frame),
	}

	addFrame := func(id recordid.ID) {
		if _, ok := doc.Frames[id]; ok {
			return
		}
		if f, ok := res.Frame(ctx, id); ok {
			doc.Frames[id] = f
		}
	}

	for _, rr := range res.Roots {
		rd := RootDocument{
			Root:     rr.Root,
			Contexts: append([]report.ExceptionContext{}, rr.Contexts...),
			Paths:    make([][]recordid.ID, 0, len(rr.Paths)),
		}
		addFrame(rr.Root)
		for _, path := range rr.Paths {
			rd.Paths = append(rd.Paths, []recordid.ID(path))
			for _, id := range path {
				addFrame(id)
			}
		}
		doc.Roots = append(doc.Roots, rd)
	}
	return doc
}

// JSON writes res as an indented Document.
func JSON(ctx context.Context, w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(ctx, res))
}
