package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/tree"
)

type plannerService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewPlannerService reads projects, tickets and expansion state through the
// unit of work so a snapshot is never assembled from two commits.
func NewPlannerService(uow db.UnitOfWork, observers ...UseCaseObserver) PlannerService {
	return &plannerService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *plannerService) Load(ctx context.Context, projectID string) (*Snapshot, error) {
	var snap Snapshot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		tickets, err := repository.NewSQLiteTicketRepo(tx).ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		exp := repository.NewSQLiteExpansionRepo(tx)
		expanded, opened, err := exp.Get(ctx, projectID)
		if err != nil {
			return err
		}
		if !opened {
			expanded = tree.ExpandableIDs(tickets)
			if err := exp.Replace(ctx, projectID, expanded); err != nil {
				return err
			}
		}
		snap = Snapshot{
			Project:  project,
			Tickets:  tickets,
			Expanded: expanded,
			Rows:     tree.Flatten(tickets, expanded),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *plannerService) ToggleExpanded(ctx context.Context, projectID, ticketID string) (expanded bool, err error) {
	fields := map[string]any{"project_id": projectID, "ticket_id": ticketID}
	defer observeUseCase(ctx, s.observer, "toggle-expanded", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		t, err := repository.NewSQLiteTicketRepo(tx).GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		exp := repository.NewSQLiteExpansionRepo(tx)
		current, opened, err := exp.Get(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		if !opened {
			tickets, err := repository.NewSQLiteTicketRepo(tx).ListByProject(ctx, t.ProjectID)
			if err != nil {
				return err
			}
			current = tree.ExpandableIDs(tickets)
			if err := exp.Replace(ctx, t.ProjectID, current); err != nil {
				return err
			}
		}
		expanded = !current[ticketID]
		return exp.SetExpanded(ctx, t.ProjectID, ticketID, expanded)
	})
	fields["expanded"] = expanded
	return expanded, err
}

func (s *plannerService) SetAllExpanded(ctx context.Context, projectID string, expanded bool) (err error) {
	fields := map[string]any{"project_id": projectID, "expanded": expanded}
	defer observeUseCase(ctx, s.observer, "set-all-expanded", time.Now(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tickets, err := repository.NewSQLiteTicketRepo(tx).ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		next := map[string]bool{}
		if expanded {
			next = tree.ExpandableIDs(tickets)
		}
		return repository.NewSQLiteExpansionRepo(tx).Replace(ctx, projectID, next)
	})
}
