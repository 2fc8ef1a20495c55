// Package index computes per-entity hierarchy attributes (level, path,
// parent, owning root) and the lookup tables the matcher needs. An Index
// is a call-scoped value: build one per graph per merge and discard it.
package index

import (
	"slices"
	"strings"

	"github.com/agentstation/graphmerge/pkg/graph"
)

// Entry holds the derived hierarchy attributes of a single entity.
type Entry struct {
	ID       string
	Name     string   // normalized display name
	Level    int      // distance from the owning root, root = 0
	Path     string   // normalized names joined with graph.PathSeparator
	Segments []string // path as a sequence
	ParentID string   // empty for roots
	RootID   string
}

// nameLevel keys the (normalized name, level) lookup table.
type nameLevel struct {
	name  string
	level int
}

// Index exposes hierarchy attributes and lookup tables for one graph.
type Index struct {
	entries     map[string]*Entry
	order       []string // BFS visitation order, shallowest first
	pathToID    map[string]string
	byNameLevel map[nameLevel][]string
	byRoot      map[string]map[string]struct{}
	warnings    []graph.Warning
}

// item is a pending BFS visit.
type item struct {
	id         string
	parentID   string
	rootID     string
	level      int
	parentPath string
}

// New builds the index for a validated graph with one breadth-first
// traversal started from every root. Entities reached a second time
// (cycle or multi-parent) keep the attribution of their shallowest
// discoverer; the repeat visit is skipped and recorded as a warning.
func New(g *graph.Graph) *Index {
	idx := &Index{
		entries:     make(map[string]*Entry, len(g.Entities)),
		order:       make([]string, 0, len(g.Entities)),
		pathToID:    make(map[string]string, len(g.Entities)),
		byNameLevel: make(map[nameLevel][]string),
		byRoot:      make(map[string]map[string]struct{}),
	}

	queue := make([]item, 0, len(g.Roots))
	for _, rootID := range g.Roots {
		if !g.HasEntity(rootID) {
			idx.warn(graph.WarnDanglingRoot, rootID, "")
			continue
		}
		queue = append(queue, item{id: rootID, rootID: rootID})
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if existing, seen := idx.entries[next.id]; seen {
			idx.warnRevisit(existing, next.parentID)
			continue
		}

		entity := g.Entities[next.id]
		name := entity.NormalizedName()
		path := name
		if next.parentPath != "" {
			path = next.parentPath + graph.PathSeparator + name
		}

		entry := &Entry{
			ID:       next.id,
			Name:     name,
			Level:    next.level,
			Path:     path,
			Segments: strings.Split(path, graph.PathSeparator),
			ParentID: next.parentID,
			RootID:   next.rootID,
		}
		idx.entries[next.id] = entry
		idx.order = append(idx.order, next.id)
		idx.pathToID[path] = next.id

		key := nameLevel{name: name, level: next.level}
		idx.byNameLevel[key] = append(idx.byNameLevel[key], next.id)

		if idx.byRoot[next.rootID] == nil {
			idx.byRoot[next.rootID] = make(map[string]struct{})
		}
		idx.byRoot[next.rootID][next.id] = struct{}{}

		for _, childID := range entity.Children {
			if !g.HasEntity(childID) {
				idx.warn(graph.WarnDanglingChild, next.id, childID)
				continue
			}
			queue = append(queue, item{
				id:         childID,
				parentID:   next.id,
				rootID:     next.rootID,
				level:      next.level + 1,
				parentPath: path,
			})
		}
	}

	// Sorted buckets give the matcher a deterministic candidate order.
	for key := range idx.byNameLevel {
		slices.Sort(idx.byNameLevel[key])
	}

	return idx
}

// Entry returns the index entry for an entity id, if it was reached from
// a root.
func (idx *Index) Entry(id string) (*Entry, bool) {
	entry, ok := idx.entries[id]
	return entry, ok
}

// Order returns entity ids in BFS visitation order, shallowest first.
// The slice is owned by the index and must not be mutated.
func (idx *Index) Order() []string {
	return idx.order
}

// IDByPath returns the entity id owning the given path string.
func (idx *Index) IDByPath(path string) (string, bool) {
	id, ok := idx.pathToID[path]
	return id, ok
}

// ByNameAndLevel returns the ids of entities with the given normalized
// name at the given level, in lexicographic order.
func (idx *Index) ByNameAndLevel(name string, level int) []string {
	return idx.byNameLevel[nameLevel{name: name, level: level}]
}

// InRoot reports whether the entity id is attributed to the given root.
func (idx *Index) InRoot(rootID, id string) bool {
	ids, ok := idx.byRoot[rootID]
	if !ok {
		return false
	}
	_, ok = ids[id]
	return ok
}

// Len returns the number of indexed (reachable) entities.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Warnings returns the structural warnings recorded during indexing.
func (idx *Index) Warnings() []graph.Warning {
	return idx.warnings
}

func (idx *Index) warn(kind graph.WarningKind, id, ref string) {
	idx.warnings = append(idx.warnings, graph.Warning{Kind: kind, ID: id, Ref: ref})
}

// warnRevisit classifies a repeat visitation as a cycle when the
// revisited entity is an ancestor of the discovering parent, and as a
// multi-parent claim otherwise.
func (idx *Index) warnRevisit(revisited *Entry, fromParent string) {
	kind := graph.WarnMultiParent
	for ancestor := fromParent; ancestor != ""; {
		if ancestor == revisited.ID {
			kind = graph.WarnCycle
			break
		}
		entry, ok := idx.entries[ancestor]
		if !ok {
			break
		}
		ancestor = entry.ParentID
	}
	idx.warnings = append(idx.warnings, graph.Warning{Kind: kind, ID: revisited.ID, Ref: fromParent})
}
