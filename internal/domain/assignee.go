package domain

import (
	"fmt"
	"strings"
)

type Assignee struct {
	ID   string
	Name string
}

// Normalize trims the name and rejects blanks, matching how the assignee
// manager ignores empty submissions.
func (a *Assignee) Normalize() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fmt.Errorf("assignee: %w", ErrNameRequired)
	}
	return nil
}
