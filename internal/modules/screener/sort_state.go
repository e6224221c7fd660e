package screener

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/divdesk/internal/utils"
)

// ToggleCriterion returns the criteria after a click on field. A field already
// sorted ascending turns descending, a descending one is removed, and a new field
// is appended ascending after the existing keys. The input is not modified.
func ToggleCriterion(criteria []Criterion, field string) []Criterion {
	out := make([]Criterion, 0, len(criteria)+1)
	found := false
	for _, c := range criteria {
		if c.Field != field {
			out = append(out, c)
			continue
		}
		found = true
		if c.Order >= 0 {
			out = append(out, Criterion{Field: field, Order: -1})
		}
	}
	if !found {
		out = append(out, Criterion{Field: field, Order: 1})
	}
	return out
}

// ParseCriteria parses "field:1,field:-1". A missing order means ascending.
func ParseCriteria(s string) ([]Criterion, error) {
	parts := utils.ParseCSV(s)
	criteria := make([]Criterion, 0, len(parts))
	for _, part := range parts {
		field, orderStr, hasOrder := strings.Cut(part, ":")
		field = strings.TrimSpace(field)
		if !SortableFields[field] {
			return nil, fmt.Errorf("unknown sort field %q", field)
		}

		order := 1
		if hasOrder {
			n, err := strconv.Atoi(strings.TrimSpace(orderStr))
			if err != nil || (n != 1 && n != -1) {
				return nil, fmt.Errorf("invalid sort order %q for %s, expected 1 or -1", orderStr, field)
			}
			order = n
		}
		criteria = append(criteria, Criterion{Field: field, Order: order})
	}
	return criteria, nil
}

// FormatCriteria is the inverse of ParseCriteria
func FormatCriteria(criteria []Criterion) string {
	parts := make([]string, len(criteria))
	for i, c := range criteria {
		parts[i] = fmt.Sprintf("%s:%d", c.Field, direction(c.Order))
	}
	return strings.Join(parts, ",")
}
