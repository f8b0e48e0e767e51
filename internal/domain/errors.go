package domain

import "errors"

var (
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidDateRange   = errors.New("end date must be on or after start date")
	ErrCrossProjectParent = errors.New("parent ticket belongs to a different project")
	ErrCycle              = errors.New("ticket cannot be its own ancestor")
	ErrInvalidStatus      = errors.New("invalid project status")
)
