package plugins

import (
	"cmp"
	"slices"
)

// Sort returns a copy of records ordered by field, descending unless ascending is set.
// Records with equal keys keep their input order in both directions.
// An unknown field leaves the order unchanged; callers validate with IsSortField first.
func Sort(records []Record, field string, ascending bool) []Record {
	sorted := slices.Clone(records)

	compare := comparators[field]
	if compare == nil {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b Record) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})

	return sorted
}

var comparators = map[string]func(a, b Record) int{
	FieldDownloads:  func(a, b Record) int { return cmp.Compare(a.Downloads, b.Downloads) },
	FieldFavers:     func(a, b Record) int { return cmp.Compare(a.Favers, b.Favers) },
	FieldDependents: func(a, b Record) int { return cmp.Compare(a.Dependents, b.Dependents) },
	FieldUpdated:    func(a, b Record) int { return a.Updated.Compare(b.Updated) },
}
