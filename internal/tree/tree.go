// Package tree turns a flat ticket collection into the ordered,
// depth-annotated sequence shown by the list and the timeline, and keeps
// sibling ordering dense when tickets are dragged around.
package tree

import (
	"sort"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Row is one visible line of the flattened tree.
type Row struct {
	Ticket      *domain.Ticket
	Level       int
	HasChildren bool
}

// Index is the parent -> children adjacency derived from a collection.
// Children are held in ascending SortOrder; ties keep input order.
type Index struct {
	roots    []*domain.Ticket
	children map[string][]*domain.Ticket
	byID     map[string]*domain.Ticket
}

// NewIndex builds the adjacency for tickets. It is cheap enough to rebuild
// after every mutation.
func NewIndex(tickets []*domain.Ticket) *Index {
	idx := &Index{
		children: make(map[string][]*domain.Ticket),
		byID:     make(map[string]*domain.Ticket, len(tickets)),
	}
	for _, t := range tickets {
		idx.byID[t.ID] = t
	}
	for _, t := range tickets {
		if t.ParentID == nil {
			idx.roots = append(idx.roots, t)
			continue
		}
		idx.children[*t.ParentID] = append(idx.children[*t.ParentID], t)
	}
	sortBySortOrder(idx.roots)
	for _, kids := range idx.children {
		sortBySortOrder(kids)
	}
	return idx
}

func sortBySortOrder(ts []*domain.Ticket) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].SortOrder < ts[j].SortOrder })
}

// Roots returns the top-level tickets in display order.
func (idx *Index) Roots() []*domain.Ticket { return idx.roots }

// Children returns the direct children of id in display order.
func (idx *Index) Children(id string) []*domain.Ticket { return idx.children[id] }

// HasChildren reports whether any ticket names id as its parent.
func (idx *Index) HasChildren(id string) bool { return len(idx.children[id]) > 0 }

// Get returns the ticket with id, or nil.
func (idx *Index) Get(id string) *domain.Ticket { return idx.byID[id] }

// Flatten returns the visible rows in depth-first pre-order. Children of a
// ticket are emitted only when the ticket is in expanded. Tickets whose
// parent is missing from the input are not reachable from a root and are
// therefore omitted. A cyclic parent chain is cut where it revisits a
// ticket already on the current path.
func Flatten(tickets []*domain.Ticket, expanded map[string]bool) []Row {
	return NewIndex(tickets).Flatten(expanded)
}

// Flatten is Flatten over a prebuilt index.
func (idx *Index) Flatten(expanded map[string]bool) []Row {
	rows := make([]Row, 0, len(idx.byID))
	onPath := make(map[string]bool)

	var visit func(t *domain.Ticket, level int)
	visit = func(t *domain.Ticket, level int) {
		if onPath[t.ID] {
			return
		}
		kids := idx.children[t.ID]
		rows = append(rows, Row{Ticket: t, Level: level, HasChildren: len(kids) > 0})
		if !expanded[t.ID] {
			return
		}
		onPath[t.ID] = true
		for _, c := range kids {
			visit(c, level+1)
		}
		delete(onPath, t.ID)
	}

	for _, r := range idx.roots {
		visit(r, 0)
	}
	return rows
}

// ExpandableIDs returns the set of tickets that have at least one child.
// A project opened for the first time starts with all of them expanded.
func ExpandableIDs(tickets []*domain.Ticket) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tickets {
		if t.ParentID != nil {
			out[*t.ParentID] = true
		}
	}
	// A parent reference to a ticket outside the collection is not expandable.
	present := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		present[t.ID] = true
	}
	for id := range out {
		if !present[id] {
			delete(out, id)
		}
	}
	return out
}

// Descendants returns id and every ticket below it, breadth first.
func Descendants(tickets []*domain.Ticket, id string) []string {
	children := make(map[string][]string)
	for _, t := range tickets {
		if t.ParentID != nil {
			children[*t.ParentID] = append(children[*t.ParentID], t.ID)
		}
	}
	seen := map[string]bool{id: true}
	out := []string{id}
	for queue := []string{id}; len(queue) > 0; queue = queue[1:] {
		for _, c := range children[queue[0]] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// WouldCycle reports whether giving ticket id the parent newParentID makes
// id its own ancestor.
func WouldCycle(tickets []*domain.Ticket, id string, newParentID *string) bool {
	if newParentID == nil {
		return false
	}
	byID := make(map[string]*domain.Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID] = t
	}
	seen := make(map[string]bool)
	for cur := *newParentID; ; {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		t := byID[cur]
		if t == nil || t.ParentID == nil {
			return false
		}
		cur = *t.ParentID
	}
}
