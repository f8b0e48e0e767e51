package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/dashboard"
	"github.com/alexanderramin/gantry/internal/repository"
)

type dashboardService struct {
	projects    repository.ProjectRepo
	tickets     repository.TicketRepo
	assignees   repository.AssigneeRepo
	dueSoonDays int
}

func NewDashboardService(
	projects repository.ProjectRepo,
	tickets repository.TicketRepo,
	assignees repository.AssigneeRepo,
	dueSoonDays int,
) DashboardService {
	if dueSoonDays <= 0 {
		dueSoonDays = dashboard.DefaultDueSoonDays
	}
	return &dashboardService{projects: projects, tickets: tickets, assignees: assignees, dueSoonDays: dueSoonDays}
}

func (s *dashboardService) Report(ctx context.Context, today time.Time) (*DashboardReport, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tickets: %w", err)
	}
	assignees, err := s.assignees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assignees: %w", err)
	}
	return &DashboardReport{
		Stats:     dashboard.Compute(projects, tickets, assignees, today, s.dueSoonDays),
		Projects:  projects,
		Assignees: assignees,
		Today:     today,
	}, nil
}
