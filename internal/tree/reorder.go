package tree

import (
	"github.com/alexanderramin/gantry/internal/domain"
)

// Reorder moves draggedID to the position targetID holds among their
// siblings and renumbers the group densely from 0. Tickets whose SortOrder
// does not change are returned as the same pointers; the others are fresh
// copies. A request that cannot apply (unknown id, different sibling
// groups, dragging onto itself, a group of one) returns all unchanged.
func Reorder(all []*domain.Ticket, draggedID, targetID string) []*domain.Ticket {
	if draggedID == targetID {
		return all
	}
	dragged := domain.FindTicket(all, draggedID)
	target := domain.FindTicket(all, targetID)
	if dragged == nil || target == nil || !dragged.SameGroup(target) {
		return all
	}

	group := siblings(all, dragged.ProjectID, dragged.ParentID)
	if len(group) < 2 {
		return all
	}

	from, at := 0, 0
	for i, t := range group {
		switch t.ID {
		case draggedID:
			from = i
		case targetID:
			at = i
		}
	}
	// Index of the target once the dragged ticket has been lifted out.
	if from < at {
		at--
	}
	return renumber(all, insertAt(group, from, at))
}

// Normalize renumbers one sibling group to 0..n-1 keeping its current
// relative order. It is used after deletes and re-parenting leave gaps.
func Normalize(all []*domain.Ticket, projectID string, parentID *string) []*domain.Ticket {
	return renumber(all, siblings(all, projectID, parentID))
}

// MoveBy shifts id by delta positions among its siblings, clamped to the
// group bounds. It backs keyboard reordering, where "down one" must be
// reachable even though Reorder always lands in front of its target.
func MoveBy(all []*domain.Ticket, id string, delta int) []*domain.Ticket {
	t := domain.FindTicket(all, id)
	if t == nil || delta == 0 {
		return all
	}
	group := siblings(all, t.ProjectID, t.ParentID)
	pos := -1
	for i, s := range group {
		if s.ID == id {
			pos = i
			break
		}
	}
	to := min(max(pos+delta, 0), len(group)-1)
	if to == pos {
		return all
	}
	return renumber(all, insertAt(group, pos, to))
}

func insertAt(group []*domain.Ticket, from, to int) []*domain.Ticket {
	moved := group[from]
	without := make([]*domain.Ticket, 0, len(group)-1)
	without = append(without, group[:from]...)
	without = append(without, group[from+1:]...)
	ordered := make([]*domain.Ticket, 0, len(group))
	ordered = append(ordered, without[:to]...)
	ordered = append(ordered, moved)
	ordered = append(ordered, without[to:]...)
	return ordered
}

func siblings(all []*domain.Ticket, projectID string, parentID *string) []*domain.Ticket {
	var group []*domain.Ticket
	for _, t := range all {
		if t.InGroup(projectID, parentID) {
			group = append(group, t)
		}
	}
	sortBySortOrder(group)
	return group
}

func renumber(all, ordered []*domain.Ticket) []*domain.Ticket {
	updates := make(map[string]*domain.Ticket)
	for i, t := range ordered {
		if t.SortOrder != i {
			updates[t.ID] = t.WithSortOrder(i)
		}
	}
	if len(updates) == 0 {
		return all
	}
	out := make([]*domain.Ticket, len(all))
	for i, t := range all {
		if u, ok := updates[t.ID]; ok {
			out[i] = u
			continue
		}
		out[i] = t
	}
	return out
}
