package picker

import (
	"github.com/sahilm/fuzzy"

	"github.com/runger/opentabs/internal/panel"
)

// Match is one row that survived filtering.
type Match struct {
	// Index is the row's position in the unfiltered rows.
	Index int
	// Matched holds byte offsets into the row's FilterValue that matched
	// the query.
	Matched []int
}

type rowSource []panel.Row

func (s rowSource) String(i int) string { return s[i].FilterValue() }
func (s rowSource) Len() int            { return len(s) }

// Filter returns the rows matching query, best match first. An empty query
// keeps every row in its original order.
func Filter(rows []panel.Row, query string) []Match {
	if query == "" {
		out := make([]Match, len(rows))
		for i := range rows {
			out[i] = Match{Index: i}
		}
		return out
	}

	found := fuzzy.FindFrom(query, rowSource(rows))
	out := make([]Match, len(found))
	for i, f := range found {
		out[i] = Match{Index: f.Index, Matched: f.MatchedIndexes}
	}
	return out
}
