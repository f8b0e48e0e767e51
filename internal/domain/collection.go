package domain

// The helpers below implement copy-on-write updates of a ticket collection:
// each returns a new slice and never mutates a ticket in place, so a caller
// holding the old slice keeps a consistent snapshot.

// FindTicket returns the ticket with id, or nil.
func FindTicket(tickets []*Ticket, id string) *Ticket {
	for _, t := range tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ReplaceTicket returns a copy of tickets with the element sharing
// updated.ID replaced by updated.
func ReplaceTicket(tickets []*Ticket, updated *Ticket) []*Ticket {
	out := make([]*Ticket, len(tickets))
	for i, t := range tickets {
		if t.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = t
	}
	return out
}

// RemoveTickets returns tickets minus every id in ids.
func RemoveTickets(tickets []*Ticket, ids map[string]bool) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if !ids[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// ClearAssignee returns tickets with every reference to assigneeID nulled.
func ClearAssignee(tickets []*Ticket, assigneeID string) []*Ticket {
	out := make([]*Ticket, len(tickets))
	for i, t := range tickets {
		if t.AssigneeID != nil && *t.AssigneeID == assigneeID {
			c := t.Clone()
			c.AssigneeID = nil
			out[i] = c
			continue
		}
		out[i] = t
	}
	return out
}

// ChangedTickets returns the elements of after that are not the identical
// pointer found under the same id in before. New tickets count as changed.
func ChangedTickets(before, after []*Ticket) []*Ticket {
	prev := make(map[string]*Ticket, len(before))
	for _, t := range before {
		prev[t.ID] = t
	}
	var changed []*Ticket
	for _, t := range after {
		if prev[t.ID] != t {
			changed = append(changed, t)
		}
	}
	return changed
}

// RemovedIDs returns ids present in before but absent from after.
func RemovedIDs(before, after []*Ticket) []string {
	keep := make(map[string]bool, len(after))
	for _, t := range after {
		keep[t.ID] = true
	}
	var removed []string
	for _, t := range before {
		if !keep[t.ID] {
			removed = append(removed, t.ID)
		}
	}
	return removed
}

// SiblingCount returns how many tickets share the group {projectID, parentID}.
func SiblingCount(tickets []*Ticket, projectID string, parentID *string) int {
	n := 0
	for _, t := range tickets {
		if t.InGroup(projectID, parentID) {
			n++
		}
	}
	return n
}
