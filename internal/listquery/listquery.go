// Package listquery filters, searches and sorts in-memory lists.
package listquery

import (
	"fmt"
	"sort"
	"strings"

	"wealthdesk/internal/models"
)

// All disables the category filter.
const All = "All"

// Comparator orders a before b when it returns a negative number.
type Comparator[T any] func(a, b T) int

// Schema describes how one kind of row is searched, filtered and sorted.
type Schema[T any] struct {
	// Search selects the text fields matched by Query.Search.
	Search []func(T) string
	// Category selects the enum field matched by Query.Category; nil
	// means the list has no category filter.
	Category func(T) string
	Sorts    map[string]Comparator[T]
	// DefaultSort is used when Query.Sort is empty. An empty default
	// keeps the source order.
	DefaultSort string
}

type Query struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
}

// SortKeys lists the accepted sort keys in lexical order.
func (s Schema[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply returns the rows of src that match q, in q's sort order. src is
// never modified. Rows with equal sort keys keep their source order.
func (s Schema[T]) Apply(src []T, q Query) ([]T, error) {
	key := q.Sort
	if key == "" {
		key = s.DefaultSort
	}
	var cmp Comparator[T]
	if key != "" {
		var ok bool
		if cmp, ok = s.Sorts[key]; !ok {
			return nil, fmt.Errorf("%w: unknown sort key %q (want one of %s)",
				models.ErrConfiguration, key, strings.Join(s.SortKeys(), ", "))
		}
	}

	term := strings.ToLower(q.Search)
	category := q.Category
	if strings.EqualFold(category, All) {
		category = ""
	}

	out := make([]T, 0, len(src))
	for _, row := range src {
		if term != "" && !s.matchSearch(row, term) {
			continue
		}
		if category != "" && s.Category != nil && !strings.EqualFold(s.Category(row), category) {
			continue
		}
		out = append(out, row)
	}

	if cmp != nil {
		sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	}
	return out, nil
}

func (s Schema[T]) matchSearch(row T, term string) bool {
	for _, field := range s.Search {
		if strings.Contains(strings.ToLower(field(row)), term) {
			return true
		}
	}
	return false
}
