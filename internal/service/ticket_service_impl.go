package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/google/uuid"
)

type ticketService struct {
	tickets  repository.TicketRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTicketService(tickets repository.TicketRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TicketService {
	return &ticketService{tickets: tickets, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// mutateProject loads one project's tickets inside a transaction, lets fn
// derive the next collection and persists the difference. fn returning the
// input slice is a no-op.
func (s *ticketService) mutateProject(
	ctx context.Context,
	projectID string,
	fn func(ctx context.Context, tx db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error),
) (written int, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTickets := repository.NewSQLiteTicketRepo(tx)
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		before, err := txTickets.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		after, err := fn(ctx, tx, before)
		if err != nil {
			return err
		}
		written, err = commitTickets(ctx, txTickets, before, after, nowUTC())
		return err
	})
	return written, err
}

func (s *ticketService) Create(ctx context.Context, t *domain.Ticket) (err error) {
	defer observeUseCase(ctx, s.observer, "create-ticket", time.Now(),
		map[string]any{"project_id": t.ProjectID, "name": t.Name}, &err)

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err = t.Validate(); err != nil {
		return err
	}
	_, err = s.mutateProject(ctx, t.ProjectID, func(ctx context.Context, tx db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error) {
		if err := checkParent(before, t); err != nil {
			return nil, s.explainParentError(ctx, tx, t, err)
		}
		t.SortOrder = domain.SiblingCount(before, t.ProjectID, t.ParentID)
		if err := expandParent(ctx, tx, t.ProjectID, t.ParentID); err != nil {
			return nil, err
		}
		return append(before[:len(before):len(before)], t), nil
	})
	return err
}

// explainParentError upgrades "parent not found in this project" to
// ErrCrossProjectParent when the parent exists elsewhere.
func (s *ticketService) explainParentError(ctx context.Context, tx db.DBTX, t *domain.Ticket, err error) error {
	if !errors.Is(err, repository.ErrNotFound) || t.ParentID == nil {
		return err
	}
	if p, getErr := repository.NewSQLiteTicketRepo(tx).GetByID(ctx, *t.ParentID); getErr == nil && p.ProjectID != t.ProjectID {
		return domain.ErrCrossProjectParent
	}
	return err
}

func (s *ticketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *ticketService) Resolve(ctx context.Context, ref string) (*domain.Ticket, error) {
	return s.tickets.FindByPrefix(ctx, ref)
}

func (s *ticketService) ListByProject(ctx context.Context, projectID string) ([]*domain.Ticket, error) {
	return s.tickets.ListByProject(ctx, projectID)
}

func (s *ticketService) Update(ctx context.Context, t *domain.Ticket) (err error) {
	fields := map[string]any{"ticket_id": t.ID}
	defer observeUseCase(ctx, s.observer, "update-ticket", time.Now(), fields, &err)

	existing, err := s.tickets.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	next := t.Clone()
	// Tickets stay in their project; moving one would orphan its subtree.
	next.ProjectID = existing.ProjectID
	next.SortOrder = existing.SortOrder
	next.CreatedAt = existing.CreatedAt
	if err = next.Validate(); err != nil {
		return err
	}

	_, err = s.mutateProject(ctx, next.ProjectID, func(ctx context.Context, tx db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error) {
		if err := checkParent(before, next); err != nil {
			return nil, s.explainParentError(ctx, tx, next, err)
		}
		if domain.PtrEqual(existing.ParentID, next.ParentID) {
			return domain.ReplaceTicket(before, next), nil
		}

		if tree.WouldCycle(before, next.ID, next.ParentID) {
			return nil, domain.ErrCycle
		}
		fields["reparented"] = true
		others := domain.RemoveTickets(before, map[string]bool{next.ID: true})
		next.SortOrder = domain.SiblingCount(others, next.ProjectID, next.ParentID)
		after := domain.ReplaceTicket(before, next)
		after = tree.Normalize(after, existing.ProjectID, existing.ParentID)
		if err := expandParent(ctx, tx, next.ProjectID, next.ParentID); err != nil {
			return nil, err
		}
		return after, nil
	})
	if err == nil {
		*t = *next
	}
	return err
}

func (s *ticketService) Delete(ctx context.Context, id string) (removed []string, err error) {
	fields := map[string]any{"ticket_id": id}
	defer observeUseCase(ctx, s.observer, "delete-ticket", time.Now(), fields, &err)

	target, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = s.mutateProject(ctx, target.ProjectID, func(_ context.Context, _ db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error) {
		removed = tree.Descendants(before, id)
		drop := make(map[string]bool, len(removed))
		for _, rid := range removed {
			drop[rid] = true
		}
		after := domain.RemoveTickets(before, drop)
		return tree.Normalize(after, target.ProjectID, target.ParentID), nil
	})
	if err != nil {
		return nil, err
	}
	fields["deleted"] = len(removed)
	return removed, nil
}

func (s *ticketService) Reorder(ctx context.Context, draggedID, targetID string) (changed bool, err error) {
	fields := map[string]any{"dragged_id": draggedID, "target_id": targetID}
	defer observeUseCase(ctx, s.observer, "reorder-ticket", time.Now(), fields, &err)

	dragged, err := s.tickets.GetByID(ctx, draggedID)
	if err != nil {
		return false, err
	}
	n, err := s.mutateProject(ctx, dragged.ProjectID, func(_ context.Context, _ db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error) {
		return tree.Reorder(before, draggedID, targetID), nil
	})
	fields["written"] = n
	return n > 0, err
}

func (s *ticketService) MoveBy(ctx context.Context, id string, delta int) (changed bool, err error) {
	fields := map[string]any{"ticket_id": id, "delta": delta}
	defer observeUseCase(ctx, s.observer, "move-ticket", time.Now(), fields, &err)

	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	n, err := s.mutateProject(ctx, t.ProjectID, func(_ context.Context, _ db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error) {
		return tree.MoveBy(before, id, delta), nil
	})
	return n > 0, err
}

func (s *ticketService) CommitSchedule(ctx context.Context, candidate *domain.Ticket) (changed bool, err error) {
	fields := map[string]any{"ticket_id": candidate.ID}
	defer observeUseCase(ctx, s.observer, "commit-schedule", time.Now(), fields, &err)

	existing, err := s.tickets.GetByID(ctx, candidate.ID)
	if err != nil {
		return false, err
	}
	if existing.SameSchedule(candidate) {
		return false, nil
	}
	next := existing.WithDates(candidate.StartDate, candidate.EndDate)
	if err = next.Validate(); err != nil {
		return false, err
	}
	fields["start"] = next.StartDate.Format("2006-01-02")
	fields["end"] = next.EndDate.Format("2006-01-02")
	n, err := s.mutateProject(ctx, next.ProjectID, func(_ context.Context, _ db.DBTX, before []*domain.Ticket) ([]*domain.Ticket, error) {
		return domain.ReplaceTicket(before, next), nil
	})
	return n > 0, err
}

// expandParent opens parentID in the planner so a newly attached child is
// visible. Projects that were never opened are left alone: their first load
// expands every parent anyway.
func expandParent(ctx context.Context, tx db.DBTX, projectID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	exp := repository.NewSQLiteExpansionRepo(tx)
	_, opened, err := exp.Get(ctx, projectID)
	if err != nil || !opened {
		return err
	}
	return exp.SetExpanded(ctx, projectID, *parentID, true)
}
