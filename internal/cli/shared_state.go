package cli

import (
	"github.com/alexanderramin/gantry/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context
	ActiveProjectID   string
	ActiveShortID     string
	ActiveProjectName string

	// Terminal dimensions
	Width  int
	Height int
}

// ClearProjectContext resets the active project.
func (s *SharedState) ClearProjectContext() {
	s.ActiveProjectID = ""
	s.ActiveShortID = ""
	s.ActiveProjectName = ""
}

// SetActiveProjectFrom sets the active project context from an already-loaded project.
func (s *SharedState) SetActiveProjectFrom(p *domain.Project) {
	s.ActiveProjectID = p.ID
	s.ActiveShortID = p.DisplayID()
	s.ActiveProjectName = p.Name
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and the status bar
// (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
