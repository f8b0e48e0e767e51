package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/google/uuid"
)

type assigneeService struct {
	assignees repository.AssigneeRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewAssigneeService(assignees repository.AssigneeRepo, uow db.UnitOfWork, observers ...UseCaseObserver) AssigneeService {
	return &assigneeService{assignees: assignees, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *assigneeService) Create(ctx context.Context, name string) (a *domain.Assignee, err error) {
	defer observeUseCase(ctx, s.observer, "create-assignee", time.Now(), map[string]any{"name": name}, &err)

	a = &domain.Assignee{ID: uuid.New().String(), Name: name}
	if err = a.Normalize(); err != nil {
		return nil, err
	}
	if err = s.assignees.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assigneeService) Resolve(ctx context.Context, ref string) (*domain.Assignee, error) {
	return s.assignees.FindByPrefix(ctx, ref)
}

func (s *assigneeService) List(ctx context.Context) ([]*domain.Assignee, error) {
	return s.assignees.List(ctx)
}

func (s *assigneeService) Rename(ctx context.Context, id, name string) (err error) {
	defer observeUseCase(ctx, s.observer, "rename-assignee", time.Now(), map[string]any{"assignee_id": id}, &err)

	a := &domain.Assignee{ID: id, Name: name}
	if err = a.Normalize(); err != nil {
		return err
	}
	return s.assignees.Update(ctx, a)
}

func (s *assigneeService) Delete(ctx context.Context, id string) (unassigned int, err error) {
	fields := map[string]any{"assignee_id": id}
	defer observeUseCase(ctx, s.observer, "delete-assignee", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTickets := repository.NewSQLiteTicketRepo(tx)
		txAssignees := repository.NewSQLiteAssigneeRepo(tx)

		if _, err := txAssignees.GetByID(ctx, id); err != nil {
			return err
		}
		before, err := txTickets.ListAll(ctx)
		if err != nil {
			return err
		}
		after := domain.ClearAssignee(before, id)
		n, err := commitTickets(ctx, txTickets, before, after, nowUTC())
		if err != nil {
			return err
		}
		unassigned = n
		return txAssignees.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	fields["tickets_unassigned"] = unassigned
	return unassigned, nil
}
