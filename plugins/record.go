// Package plugins turns registry search results into enriched, sortable plugin records.
package plugins

import (
	"time"

	"github.com/samber/lo"
)

// Sortable fields accepted by Sort and the --orderBy flag.
const (
	FieldDownloads  = "downloads"
	FieldFavers     = "favers"
	FieldDependents = "dependents"
	FieldUpdated    = "updated"
)

// SortFields lists every field Sort understands, in the order they are shown to users.
var SortFields = []string{FieldDownloads, FieldFavers, FieldDependents, FieldUpdated}

// IsSortField reports whether field can be passed to Sort.
func IsSortField(field string) bool {
	return lo.Contains(SortFields, field)
}

// Record is a search result merged with its package details.
// The JSON field order is the order written to export files.
type Record struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Handle      string    `json:"handle"`
	Repository  string    `json:"repository"`
	Version     string    `json:"version"`
	Downloads   int       `json:"downloads"`
	Dependents  int       `json:"dependents"`
	Favers      int       `json:"favers"`
	Updated     time.Time `json:"updated"`
}
