package recordid

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/specialistvlad/stackagg/internal/report"
)

// Locator is implemented by records that may carry a source location.
type Locator interface {
	Location() (filename string, lineno int, ok bool)
}

// Identify returns the identifier of r. Records with both a filename and a
// line number are identified by that location alone, so frames that differ
// only in function name or module collapse onto one node. Everything else is
// identified by a hash of its fields. Exception contexts hash into their own
// namespace, so a frame can never take a context's identifier.
func Identify(r report.Record) ID {
	if ec, ok := r.(report.ExceptionContext); ok {
		return IdentifyContext(ec)
	}
	if loc, ok := r.(Locator); ok {
		if filename, lineno, ok := loc.Location(); ok {
			return Location(filename, lineno)
		}
	}
	return Hash(r.Fields())
}

// IdentifyContext returns the identifier of an exception context.
func IdentifyContext(ec report.ExceptionContext) ID {
	return hashWith(contextPrefix, ec.Fields())
}

// Hash returns the content-hash identifier of a frame's field set.
func Hash(fields map[string]any) ID {
	return hashWith(hashPrefix, fields)
}

func hashWith(prefix string, fields map[string]any) ID {
	return ID(fmt.Sprintf("%s%016x", prefix, xxhash.Sum64(canonical(fields))))
}

// canonical encodes fields with sorted keys. Values that encoding/json cannot
// represent fall back to fmt, which also prints maps in key order.
func canonical(fields map[string]any) []byte {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return []byte(fmt.Sprintf("%v", fields))
	}
	return data
}
