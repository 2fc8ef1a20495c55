package merge

import (
	"fmt"
	"time"

	"github.com/agentstation/graphmerge/pkg/graph"
)

// Result represents the outcome of a merge operation.
type Result struct {
	// Graph is the merged, invariant-clean output graph.
	Graph *graph.Graph

	// IDMap maps every secondary entity id to the result id it was
	// resolved to: a matched primary id, a renamed id, or itself.
	IDMap map[string]string

	// Warnings holds every structural inconsistency recovered during
	// indexing, merging, and finalization.
	Warnings []graph.Warning

	// Metadata about the merge process.
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the merge process.
type ResultMetadata struct {
	// StartTime when the merge started
	StartTime time.Time

	// EndTime when the merge completed
	EndTime time.Time

	// Duration of the merge
	Duration time.Duration

	// Policy used for property conflicts
	Policy Policy

	// Statistics about the merge
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the merge.
type ResultStatistics struct {
	EntitiesMatched     int
	EntitiesInserted    int
	EntitiesRenamed     int
	TransitionsMerged   int
	TransitionsInserted int
	TransitionsDropped  int
}

// HasWarnings returns true if any structural inconsistency was recovered.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("merged %d entities (%d inserted, %d renamed), %d transitions deduped, %d inserted, %d warnings",
		s.EntitiesMatched, s.EntitiesInserted, s.EntitiesRenamed,
		s.TransitionsMerged, s.TransitionsInserted, len(r.Warnings))
}

// newResult creates a new result with defaults.
func newResult(policy Policy) *Result {
	return &Result{
		IDMap:    make(map[string]string),
		Warnings: []graph.Warning{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Policy:    policy,
		},
	}
}

// finalize calculates duration and marks completion.
func (r *Result) finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
