package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID              string
	Name            string
	Description     string
	Manager         string
	EstimatedHours  *float64
	EstimatedBudget *float64
	StartDate       *time.Time
	EndDate         *time.Time
	Notes           string
	Status          ProjectStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the fields a form or CLI flag set must supply.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project: %w", ErrNameRequired)
	}
	if !ValidProjectStatuses[string(p.Status)] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("project %q: %w", p.Name, ErrInvalidDateRange)
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID for compact output.
func (p *Project) DisplayID() string {
	return ShortID(p.ID)
}

// ShortID truncates a UUID to 8 characters.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
