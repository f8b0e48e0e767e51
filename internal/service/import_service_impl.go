package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportProjectFromSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"name": schema.Project.Name}
	defer observeUseCase(ctx, s.observer, "import-project", time.Now(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignees := repository.NewSQLiteAssigneeRepo(tx)
		existing, err := txAssignees.List(ctx)
		if err != nil {
			return err
		}
		plan, err := importer.Convert(schema, existing, nowUTC())
		if err != nil {
			return fmt.Errorf("converting import schema: %w", err)
		}

		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, plan.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, a := range plan.Assignees {
			if err := txAssignees.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assignee %q: %w", a.Name, err)
			}
		}
		txTickets := repository.NewSQLiteTicketRepo(tx)
		for _, t := range plan.Tickets {
			if err := txTickets.Create(ctx, t); err != nil {
				return fmt.Errorf("creating ticket %q: %w", t.Name, err)
			}
		}

		result = &ImportResult{
			Project:       plan.Project,
			TicketCount:   len(plan.Tickets),
			AssigneeCount: len(plan.Assignees),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["project_id"] = result.Project.ID
	fields["tickets"] = result.TicketCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
