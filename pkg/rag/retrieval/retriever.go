package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Eq is one equality predicate restricting the search, e.g. language=English
type Eq struct {
	Column string
	Value  string
}

// Filter is a conjunction of equality predicates. It is passed through to
// the backend uninterpreted; no filtering happens on this side.
type Filter struct {
	And []Eq
}

// MarshalJSON renders the wire shape the hosted search service expects:
// {"@and":[{"@eq":{"language":"English"}}]}. An empty filter marshals to {}.
func (f Filter) MarshalJSON() ([]byte, error) {
	if len(f.And) == 0 {
		return []byte("{}"), nil
	}
	preds := make([]map[string]map[string]string, 0, len(f.And))
	for _, eq := range f.And {
		preds = append(preds, map[string]map[string]string{
			"@eq": {eq.Column: eq.Value},
		})
	}
	return json.Marshal(map[string]any{"@and": preds})
}

// Query is one retrieval request
type Query struct {
	Text    string
	Columns []string
	Filter  Filter
	Limit   int // bounds result count, UI-configurable 1-10
}

// Result is one matching document, as a mapping from requested column to
// value. Ephemeral: consumed to build context text, never stored.
type Result struct {
	Fields map[string]string
}

// Retriever is the contract every search backend variant implements
type Retriever interface {
	Search(ctx context.Context, q Query) ([]Result, error)
}

// BuildContext flattens results into the text block embedded in prompts.
// Order follows the backend ranking; no de-duplication is attempted.
func BuildContext(results []Result, displayColumn string) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Context document %d: %s \n\n", i+1, r.Fields[displayColumn])
	}
	return b.String()
}
