package graph

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName folds an entity display name to its canonical comparable
// form: Unicode case folding with leading/trailing whitespace removed and
// internal whitespace runs collapsed to single spaces. Path strings and
// all name-based matching operate on normalized names.
func NormalizeName(name string) string {
	folded := cases.Fold().String(name)
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizedName returns the entity's normalized display name.
func (e *Entity) NormalizedName() string {
	return NormalizeName(e.Name)
}
