package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for a YYYY-MM-DD field.
func dateInput(title string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validate)
}

// ticketFormValues backs the ticket form. Select values hold ids, empty
// for none.
type ticketFormValues struct {
	Name       string
	Start      string
	End        string
	ParentID   string
	AssigneeID string
}

func newTicketFormValues(t *domain.Ticket) *ticketFormValues {
	return &ticketFormValues{
		Name:       t.Name,
		Start:      dates.Format(t.StartDate),
		End:        dates.Format(t.EndDate),
		ParentID:   domain.DerefStr(t.ParentID),
		AssigneeID: domain.DerefStr(t.AssigneeID),
	}
}

// apply copies the validated form values onto t.
func (v *ticketFormValues) apply(t *domain.Ticket) error {
	start, err := dates.Parse(strings.TrimSpace(v.Start))
	if err != nil {
		return err
	}
	end, err := dates.Parse(strings.TrimSpace(v.End))
	if err != nil {
		return err
	}
	t.Name = strings.TrimSpace(v.Name)
	t.StartDate = start
	t.EndDate = end
	t.ParentID = optionalID(v.ParentID)
	t.AssigneeID = optionalID(v.AssigneeID)
	return nil
}

func optionalID(id string) *string {
	if id == noneOption {
		return nil
	}
	return &id
}

func ticketForm(v *ticketFormValues, parents, assignees []huh.Option[string]) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired("name")),
		dateInput("Start", &v.Start, validateDate),
		dateInput("End", &v.End, validateEndAfter(&v.Start, false)),
	}
	if len(parents) > 1 {
		fields = append(fields, huh.NewSelect[string]().Title("Parent").Options(parents...).Value(&v.ParentID))
	}
	if len(assignees) > 1 {
		fields = append(fields, huh.NewSelect[string]().Title("Assignee").Options(assignees...).Value(&v.AssigneeID))
	}
	return themedForm(huh.NewGroup(fields...))
}

// projectFormValues backs the project form. Optional fields are blank
// when unset.
type projectFormValues struct {
	Name        string
	Description string
	Manager     string
	Status      string
	Start       string
	End         string
	Hours       string
	Budget      string
	Notes       string
}

func newProjectFormValues(p *domain.Project) *projectFormValues {
	v := &projectFormValues{
		Name:        p.Name,
		Description: p.Description,
		Manager:     p.Manager,
		Status:      string(p.Status),
		Start:       formatOptionalDate(p.StartDate),
		End:         formatOptionalDate(p.EndDate),
		Hours:       formatOptionalFloat(p.EstimatedHours),
		Budget:      formatOptionalFloat(p.EstimatedBudget),
		Notes:       p.Notes,
	}
	if v.Status == "" {
		v.Status = string(domain.ProjectPlanning)
	}
	return v
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dates.Format(*t)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// apply copies the validated form values onto p.
func (v *projectFormValues) apply(p *domain.Project) error {
	var err error
	p.Name = strings.TrimSpace(v.Name)
	p.Description = strings.TrimSpace(v.Description)
	p.Manager = strings.TrimSpace(v.Manager)
	p.Status = domain.ProjectStatus(v.Status)
	p.Notes = v.Notes
	if p.StartDate, err = parseOptionalDate(strings.TrimSpace(v.Start)); err != nil {
		return err
	}
	if p.EndDate, err = parseOptionalDate(strings.TrimSpace(v.End)); err != nil {
		return err
	}
	if p.EstimatedHours, err = parseOptionalFloat("hours", strings.TrimSpace(v.Hours)); err != nil {
		return err
	}
	if p.EstimatedBudget, err = parseOptionalFloat("budget", strings.TrimSpace(v.Budget)); err != nil {
		return err
	}
	return nil
}

func projectForm(v *projectFormValues) *huh.Form {
	return themedForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewInput().Title("Description").Value(&v.Description),
			huh.NewInput().Title("Manager").Value(&v.Manager),
			huh.NewSelect[string]().Title("Status").Options(statusOptions()...).Value(&v.Status),
		),
		huh.NewGroup(
			dateInput("Planned start (blank for none)", &v.Start, validateOptionalDate),
			dateInput("Planned end (blank for none)", &v.End, validateEndAfter(&v.Start, true)),
			huh.NewInput().Title("Estimated hours").Value(&v.Hours).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Estimated budget").Value(&v.Budget).Validate(validateNonNegativeFloat),
			huh.NewText().Title("Notes").Value(&v.Notes),
		),
	)
}

func assigneeForm(name *string) *huh.Form {
	return themedForm(
		huh.NewGroup(
			huh.NewInput().Title("Assignee name").Value(name).Validate(validateRequired("name")),
		),
	)
}
