package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

// commitTickets persists the difference between two versions of a ticket
// collection: removed ids are deleted, unseen tickets inserted and tickets
// whose pointer changed updated. It returns the number of rows written.
func commitTickets(ctx context.Context, repo repository.TicketRepo, before, after []*domain.Ticket, now time.Time) (int, error) {
	removed := domain.RemovedIDs(before, after)
	if err := repo.DeleteMany(ctx, removed); err != nil {
		return 0, err
	}

	existing := make(map[string]bool, len(before))
	for _, t := range before {
		existing[t.ID] = true
	}
	changed := domain.ChangedTickets(before, after)
	for _, t := range changed {
		t.UpdatedAt = now
		if existing[t.ID] {
			if err := repo.Update(ctx, t); err != nil {
				return 0, err
			}
			continue
		}
		t.CreatedAt = now
		if err := repo.Create(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(removed) + len(changed), nil
}

// checkParent verifies that parentID names a ticket of the same project and
// that attaching id under it does not close a loop.
func checkParent(tickets []*domain.Ticket, t *domain.Ticket) error {
	if t.ParentID == nil {
		return nil
	}
	parent := domain.FindTicket(tickets, *t.ParentID)
	if parent == nil {
		return fmt.Errorf("parent ticket %s: %w", *t.ParentID, repository.ErrNotFound)
	}
	if parent.ProjectID != t.ProjectID {
		return domain.ErrCrossProjectParent
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
