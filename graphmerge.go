// Package graphmerge merges hierarchical entity graphs from different
// source systems into one consolidated graph. It is a thin facade over
// the pkg/graph, pkg/index, and pkg/merge packages for callers that want
// the common path in one call.
package graphmerge

import (
	"context"

	"github.com/agentstation/graphmerge/pkg/graph"
	"github.com/agentstation/graphmerge/pkg/merge"
)

// Merge merges secondary into a copy of primary. Neither input graph is
// mutated. Options configure the merger; with none, property conflicts
// resolve primary-wins.
func Merge(ctx context.Context, primary, secondary *graph.Graph, opts ...merge.Option) (*merge.Result, error) {
	merger, err := merge.New(opts...)
	if err != nil {
		return nil, err
	}
	return merger.Merge(ctx, primary, secondary)
}

// MergeFiles loads two graph files (JSON or YAML, chosen by extension)
// and merges them.
func MergeFiles(ctx context.Context, primaryPath, secondaryPath string, opts ...merge.Option) (*merge.Result, error) {
	primary, err := graph.Load(primaryPath)
	if err != nil {
		return nil, err
	}
	secondary, err := graph.Load(secondaryPath)
	if err != nil {
		return nil, err
	}
	return Merge(ctx, primary, secondary, opts...)
}
