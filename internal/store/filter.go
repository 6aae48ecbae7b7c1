package store

import (
	"sort"

	"github.com/google/uuid"
)

// Eq is an equality filter: every column must equal its value. An empty Eq
// matches every row.
type Eq map[string]any

// Columns returns the filter's column names in sorted order.
func (e Eq) Columns() []string {
	cols := make([]string, 0, len(e))
	for col := range e {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// SessionFilter narrows a session listing.
type SessionFilter struct {
	// CourseID restricts results to one course when set.
	CourseID uuid.NullUUID
	// IncludeArchived also returns inactive sessions.
	IncludeArchived bool
}
