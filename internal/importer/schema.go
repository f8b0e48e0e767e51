// Package importer reads a project plan from a JSONC file: the project, its
// assignees and the ticket tree. Tickets refer to their parent and assignee
// by file-local refs.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// ImportSchema is the top-level JSON structure for plan import.
type ImportSchema struct {
	Project   ProjectImport    `json:"project"`
	Assignees []AssigneeImport `json:"assignees,omitempty"`
	Tickets   []TicketImport   `json:"tickets"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Manager         string   `json:"manager,omitempty"`
	Status          string   `json:"status,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	EstimatedHours  *float64 `json:"estimated_hours,omitempty"`
	EstimatedBudget *float64 `json:"estimated_budget,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// AssigneeImport names a person tickets can refer to. An assignee whose
// name already exists is reused.
type AssigneeImport struct {
	Ref  string `json:"ref"`
	Name string `json:"name"`
}

// TicketImport defines a ticket. Parents must appear before their
// children; siblings keep file order.
type TicketImport struct {
	Ref         string  `json:"ref"`
	ParentRef   *string `json:"parent_ref,omitempty"`
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date,omitempty"`
	AssigneeRef *string `json:"assignee_ref,omitempty"`
}

// LoadImportSchema reads and parses a plan file. Comments and trailing
// commas are accepted.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses JSONC plan data.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	var schema ImportSchema
	if err := json.Unmarshal(std, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
