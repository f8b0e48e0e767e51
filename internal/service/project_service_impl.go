package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer observeUseCase(ctx, s.observer, "create-project", time.Now(), map[string]any{"name": p.Name}, &err)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}
	if err = p.Validate(); err != nil {
		return err
	}
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	return s.projects.FindByPrefix(ctx, ref)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer observeUseCase(ctx, s.observer, "update-project", time.Now(), map[string]any{"project_id": p.ID}, &err)

	if err = p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = nowUTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"project_id": id}
	defer observeUseCase(ctx, s.observer, "delete-project", time.Now(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTickets := repository.NewSQLiteTicketRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		before, err := txTickets.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		if _, err := commitTickets(ctx, txTickets, before, nil, nowUTC()); err != nil {
			return err
		}
		fields["tickets_deleted"] = len(before)
		return txProjects.Delete(ctx, id)
	})
}
