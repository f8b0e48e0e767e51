package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	assigneeRefs := make(map[string]bool)
	errs = append(errs, validateAssignees(schema.Assignees, assigneeRefs)...)

	errs = append(errs, validateTickets(schema.Tickets, assigneeRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Status != "" && !domain.ValidProjectStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("project.status: invalid value %q", p.Status))
	}
	errs = append(errs, validateOptionalDate("project.start_date", p.StartDate)...)
	errs = append(errs, validateOptionalDate("project.end_date", p.EndDate)...)
	if start, end := optionalDate(p.StartDate), optionalDate(p.EndDate); start != nil && end != nil && dates.Before(*end, *start) {
		errs = append(errs, fmt.Errorf("project.end_date %q must not be before start_date %q", *p.EndDate, *p.StartDate))
	}
	if p.EstimatedHours != nil && *p.EstimatedHours < 0 {
		errs = append(errs, fmt.Errorf("project.estimated_hours must not be negative"))
	}
	if p.EstimatedBudget != nil && *p.EstimatedBudget < 0 {
		errs = append(errs, fmt.Errorf("project.estimated_budget must not be negative"))
	}

	return errs
}

func validateAssignees(assignees []AssigneeImport, refs map[string]bool) []error {
	var errs []error

	for i, a := range assignees {
		prefix := fmt.Sprintf("assignees[%d]", i)

		if a.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[a.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, a.Ref))
		} else {
			refs[a.Ref] = true
		}
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	return errs
}

func validateTickets(tickets []TicketImport, assigneeRefs map[string]bool) []error {
	var errs []error
	ticketRefs := make(map[string]bool)

	for i, t := range tickets {
		prefix := fmt.Sprintf("tickets[%d]", i)

		// A ref is registered after its parent check, so a ticket cannot
		// name itself or a later ticket as parent.
		if t.ParentRef != nil && *t.ParentRef != "" && !ticketRefs[*t.ParentRef] {
			errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in tickets list)", prefix, *t.ParentRef))
		}

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if ticketRefs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			ticketRefs[t.Ref] = true
		}

		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		start, err := dates.Parse(t.StartDate)
		if t.StartDate == "" {
			errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
		} else if err != nil {
			errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, t.StartDate))
		}
		if t.EndDate != "" {
			end, endErr := dates.Parse(t.EndDate)
			switch {
			case endErr != nil:
				errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", prefix, t.EndDate))
			case err == nil && dates.Before(end, start):
				errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, t.EndDate, t.StartDate))
			}
		}

		if t.AssigneeRef != nil && *t.AssigneeRef != "" && !assigneeRefs[*t.AssigneeRef] {
			errs = append(errs, fmt.Errorf("%s.assignee_ref: ref %q not found in assignees", prefix, *t.AssigneeRef))
		}
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := dates.Parse(*dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
