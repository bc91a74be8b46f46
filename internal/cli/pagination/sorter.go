package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/baghouse/internal/scenario"
)

// Sort fields accepted by ResultSorter.
const (
	FieldName        = "name"
	FieldDesign      = "design"
	FieldGrossArea   = "gross_area"
	FieldNetAC       = "net_ac"
	FieldFlaps       = "flaps"
	FieldReplacement = "replacement"
	FieldSavings     = "savings"
	FieldAdvisories  = "advisories"
)

// ResultSorter orders batch results by a summary column.
type ResultSorter struct {
	keys map[string]func(a, b scenario.Result) int
}

// NewResultSorter creates a ResultSorter with every supported field.
func NewResultSorter() *ResultSorter {
	return &ResultSorter{
		keys: map[string]func(a, b scenario.Result) int{
			FieldName: func(a, b scenario.Result) int {
				return strings.Compare(displayName(a), displayName(b))
			},
			FieldDesign: func(a, b scenario.Result) int {
				return strings.Compare(a.Snapshot.Design.String(), b.Snapshot.Design.String())
			},
			FieldGrossArea: func(a, b scenario.Result) int {
				return cmp.Compare(a.Snapshot.Sizing.GrossArea, b.Snapshot.Sizing.GrossArea)
			},
			FieldNetAC: func(a, b scenario.Result) int {
				return cmp.Compare(a.Snapshot.Sizing.ACRatioNetDisplay, b.Snapshot.Sizing.ACRatioNetDisplay)
			},
			FieldFlaps: func(a, b scenario.Result) int {
				return cmp.Compare(a.Snapshot.Flaps.Count, b.Snapshot.Flaps.Count)
			},
			FieldReplacement: func(a, b scenario.Result) int {
				return cmp.Compare(a.Snapshot.Replacement.TotalCost, b.Snapshot.Replacement.TotalCost)
			},
			FieldSavings: func(a, b scenario.Result) int {
				return cmp.Compare(a.Snapshot.Savings.TotalSavings, b.Snapshot.Savings.TotalSavings)
			},
			FieldAdvisories: func(a, b scenario.Result) int {
				return cmp.Compare(len(a.Snapshot.Advisories), len(b.Snapshot.Advisories))
			},
		},
	}
}

// IsValidField reports whether field can be sorted on.
func (s *ResultSorter) IsValidField(field string) bool {
	_, ok := s.keys[field]
	return ok
}

// GetValidFields returns the sortable fields in alphabetical order.
func (s *ResultSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.keys))
	for f := range s.keys {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Sort returns a sorted copy of results. Failed results always sort last, in
// input order. An empty field returns an unsorted copy.
func (s *ResultSorter) Sort(results []scenario.Result, field, order string) ([]scenario.Result, error) {
	sorted := slices.Clone(results)
	if field == "" {
		return sorted, nil
	}
	compare, ok := s.keys[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(s.GetValidFields(), ", "))
	}

	slices.SortStableFunc(sorted, func(a, b scenario.Result) int {
		switch aFailed, bFailed := a.Err != nil, b.Err != nil; {
		case aFailed && bFailed:
			return 0
		case aFailed:
			return 1
		case bFailed:
			return -1
		}
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted, nil
}

func displayName(r scenario.Result) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}
