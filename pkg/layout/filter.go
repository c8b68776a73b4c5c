package layout

import (
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter is a parsed jq query run against each record.
type Filter struct {
	Expr  string
	query *gojq.Query
}

// ParseFilter parses a jq expression. An empty expression yields a nil
// Filter, which passes records through unchanged.
func ParseFilter(expr string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}
	return &Filter{Expr: expr, query: q}, nil
}

// Apply runs the query on r.Map() and returns every output. A query such
// as select(.temp > 30) returns no outputs for records it drops.
func (f *Filter) Apply(r Record) ([]any, error) {
	if f == nil {
		return []any{r}, nil
	}
	var out []any
	iter := f.query.Run(r.Map())
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, ok := v.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				return out, nil
			}
			return nil, fmt.Errorf("jq error: %w", err)
		}
		out = append(out, v)
	}
}
