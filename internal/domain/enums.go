package domain

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every status in display order.
var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectCompleted}

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"planning": true, "in_progress": true, "completed": true,
}

// Label returns the human-readable form of the status.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectPlanning:
		return "Planning"
	case ProjectInProgress:
		return "In progress"
	case ProjectCompleted:
		return "Completed"
	default:
		return string(s)
	}
}
