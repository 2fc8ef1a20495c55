package graph

import "fmt"

// WarningKind classifies a recovered structural inconsistency.
type WarningKind string

// Structural warning kinds. All of these are recovered conditions: the
// offending reference is dropped or skipped and processing continues.
const (
	// WarnCycle marks an entity revisited through a children cycle.
	WarnCycle WarningKind = "cycle"
	// WarnMultiParent marks an entity claimed by more than one parent.
	WarnMultiParent WarningKind = "multi_parent"
	// WarnUnreachable marks an entity not reachable from any root.
	WarnUnreachable WarningKind = "unreachable_entity"
	// WarnDanglingChild marks a child reference to a missing entity.
	WarnDanglingChild WarningKind = "dangling_child"
	// WarnDanglingRoot marks a root id missing from entities.
	WarnDanglingRoot WarningKind = "dangling_root"
	// WarnDanglingTransition marks a transition endpoint missing from entities.
	WarnDanglingTransition WarningKind = "dangling_transition"
	// WarnMissingEndpoint marks a transition with an empty source or target.
	WarnMissingEndpoint WarningKind = "missing_endpoint"
)

// Warning records a recovered structural inconsistency discovered while
// indexing or merging. Warnings never abort a merge; malformed input is
// rejected up front by Validate instead.
type Warning struct {
	Kind WarningKind
	ID   string // owning entity or transition id
	Ref  string // offending reference, when applicable
}

// String returns a human-readable description of the warning.
func (w Warning) String() string {
	if w.Ref != "" {
		return fmt.Sprintf("%s: %s -> %s", w.Kind, w.ID, w.Ref)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.ID)
}
