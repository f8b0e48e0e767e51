package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

// Plan is a converted import, ready for persistence.
type Plan struct {
	Project *domain.Project
	// Assignees holds only the assignees that do not exist yet.
	Assignees []*domain.Assignee
	Tickets   []*domain.Ticket
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Assignees are matched against existing by name, ignoring
// case. Each sibling group is ranked densely in file order.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, existing []*domain.Assignee, now time.Time) (*Plan, error) {
	p := schema.Project
	status := domain.ProjectStatus(domain.CoalesceStr(p.Status, string(domain.ProjectPlanning)))
	project := &domain.Project{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(p.Name),
		Description:     p.Description,
		Manager:         p.Manager,
		Status:          status,
		StartDate:       optionalDate(p.StartDate),
		EndDate:         optionalDate(p.EndDate),
		EstimatedHours:  p.EstimatedHours,
		EstimatedBudget: p.EstimatedBudget,
		Notes:           p.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	byName := make(map[string]string, len(existing))
	for _, a := range existing {
		byName[strings.ToLower(a.Name)] = a.ID
	}

	plan := &Plan{Project: project}
	assigneeIDs := make(map[string]string) // ref -> UUID
	for _, a := range schema.Assignees {
		name := strings.TrimSpace(a.Name)
		if id, ok := byName[strings.ToLower(name)]; ok {
			assigneeIDs[a.Ref] = id
			continue
		}
		created := &domain.Assignee{ID: uuid.New().String(), Name: name}
		byName[strings.ToLower(name)] = created.ID
		assigneeIDs[a.Ref] = created.ID
		plan.Assignees = append(plan.Assignees, created)
	}

	ticketIDs := make(map[string]string) // ref -> UUID
	nextOrder := make(map[string]int)    // parent UUID ("" for roots) -> sibling count
	for _, t := range schema.Tickets {
		start, err := dates.Parse(t.StartDate)
		if err != nil {
			return nil, fmt.Errorf("ticket %q: %w", t.Ref, err)
		}
		end := start
		if t.EndDate != "" {
			if end, err = dates.Parse(t.EndDate); err != nil {
				return nil, fmt.Errorf("ticket %q: %w", t.Ref, err)
			}
		}

		var parentID *string
		if ref := domain.DerefStr(t.ParentRef); ref != "" {
			pid, ok := ticketIDs[ref]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for ticket %q", ref, t.Ref)
			}
			parentID = &pid
		}
		var assigneeID *string
		if ref := domain.DerefStr(t.AssigneeRef); ref != "" {
			aid, ok := assigneeIDs[ref]
			if !ok {
				return nil, fmt.Errorf("assignee_ref %q not found for ticket %q", ref, t.Ref)
			}
			assigneeID = &aid
		}

		group := domain.DerefStr(parentID)
		ticket := &domain.Ticket{
			ID:         uuid.New().String(),
			ProjectID:  project.ID,
			ParentID:   parentID,
			AssigneeID: assigneeID,
			Name:       strings.TrimSpace(t.Name),
			StartDate:  start,
			EndDate:    end,
			SortOrder:  nextOrder[group],
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		nextOrder[group]++
		ticketIDs[t.Ref] = ticket.ID
		plan.Tickets = append(plan.Tickets, ticket)
	}

	return plan, nil
}

func optionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := dates.Parse(*s)
	if err != nil {
		return nil
	}
	return &t
}
