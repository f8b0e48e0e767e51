package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{Name: "Garage"},
		Tickets: []TicketImport{
			{Ref: "t1", Name: "Design", StartDate: "2025-01-06"},
		},
	}
}

func validFullSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{
			Name:           "Garage",
			Manager:        "Ada",
			Status:         "in_progress",
			StartDate:      ptrStr("2025-01-01"),
			EndDate:        ptrStr("2025-01-31"),
			EstimatedHours: ptrFloat(120),
		},
		Assignees: []AssigneeImport{
			{Ref: "grace", Name: "Grace"},
			{Ref: "linus", Name: "Linus"},
		},
		Tickets: []TicketImport{
			{Ref: "design", Name: "Design", StartDate: "2025-01-06", EndDate: "2025-01-08", AssigneeRef: ptrStr("grace")},
			{Ref: "build", Name: "Build", StartDate: "2025-01-09", EndDate: "2025-01-15"},
			{Ref: "wire", ParentRef: ptrStr("build"), Name: "Wire", StartDate: "2025-01-09", EndDate: "2025-01-10", AssigneeRef: ptrStr("linus")},
			{Ref: "paint", ParentRef: ptrStr("build"), Name: "Paint", StartDate: "2025-01-11", EndDate: "2025-01-13"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validFullSchema()))
}

func TestValidateImportSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ImportSchema)
		wantMsg string
	}{
		{"missing project name", func(s *ImportSchema) { s.Project.Name = " " }, "project.name is required"},
		{"bad status", func(s *ImportSchema) { s.Project.Status = "paused" }, `project.status: invalid value "paused"`},
		{"bad project date", func(s *ImportSchema) { s.Project.StartDate = ptrStr("Jan 1") }, "project.start_date: invalid date format"},
		{"inverted project window", func(s *ImportSchema) { s.Project.EndDate = ptrStr("2024-12-31") }, "project.end_date"},
		{"negative hours", func(s *ImportSchema) { s.Project.EstimatedHours = ptrFloat(-1) }, "estimated_hours must not be negative"},
		{"duplicate assignee", func(s *ImportSchema) { s.Assignees[1].Ref = "grace" }, `assignees[1].ref: duplicate ref "grace"`},
		{"blank assignee", func(s *ImportSchema) { s.Assignees[0].Name = "" }, "assignees[0].name is required"},
		{"missing ticket ref", func(s *ImportSchema) { s.Tickets[0].Ref = "" }, "tickets[0].ref is required"},
		{"duplicate ticket", func(s *ImportSchema) { s.Tickets[1].Ref = "design" }, `tickets[1].ref: duplicate ref "design"`},
		{"missing name", func(s *ImportSchema) { s.Tickets[0].Name = "" }, "tickets[0].name is required"},
		{"missing start", func(s *ImportSchema) { s.Tickets[0].StartDate = "" }, "tickets[0].start_date is required"},
		{"bad end", func(s *ImportSchema) { s.Tickets[0].EndDate = "soon" }, "tickets[0].end_date: invalid date format"},
		{"inverted dates", func(s *ImportSchema) { s.Tickets[0].EndDate = "2025-01-05" }, "tickets[0].end_date"},
		{"unknown assignee", func(s *ImportSchema) { s.Tickets[0].AssigneeRef = ptrStr("nobody") }, `assignee_ref: ref "nobody" not found`},
		{"forward parent", func(s *ImportSchema) { s.Tickets[1].ParentRef = ptrStr("wire") }, `tickets[1].parent_ref: ref "wire" not found`},
		{"self parent", func(s *ImportSchema) { s.Tickets[0].ParentRef = ptrStr("design") }, `tickets[0].parent_ref: ref "design" not found`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validFullSchema()
			tt.mutate(s)
			errs := ValidateImportSchema(s)
			if assert.NotEmpty(t, errs) {
				var msgs []string
				for _, e := range errs {
					msgs = append(msgs, e.Error())
				}
				assert.Contains(t, joinLines(msgs), tt.wantMsg)
			}
		})
	}
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	s := validFullSchema()
	s.Project.Name = ""
	s.Tickets[0].Name = ""
	s.Tickets[3].StartDate = "bad"

	assert.Len(t, ValidateImportSchema(s), 3)
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
