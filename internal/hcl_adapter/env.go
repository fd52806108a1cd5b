package hcl_adapter

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes environ as the `env` object, so a file can say
// "${env.HOME}/reports", plus a few string functions.
func newEvalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"trim":   stdlib.TrimSpaceFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}
