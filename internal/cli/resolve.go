package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Commands accept full ids or any unique id prefix, as printed by list
// commands. Assignees may also be named.

func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	if ref == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	p, err := app.Projects.Resolve(ctx, ref)
	return p, friendlyError(err)
}

func resolveTicket(ctx context.Context, app *App, ref string) (*domain.Ticket, error) {
	if ref == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	t, err := app.Tickets.Resolve(ctx, ref)
	return t, friendlyError(err)
}

// resolveOptionalTicketID resolves a --parent style flag. "" means none.
func resolveOptionalTicketID(ctx context.Context, app *App, ref string) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	t, err := resolveTicket(ctx, app, ref)
	if err != nil {
		return nil, err
	}
	return &t.ID, nil
}

func resolveAssigneeID(ctx context.Context, app *App, ref string) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	a, err := app.Assignees.Resolve(ctx, ref)
	if err != nil {
		return nil, friendlyError(err)
	}
	return &a.ID, nil
}

// assigneeNames maps assignee ids to names for display.
func assigneeNames(ctx context.Context, app *App) (map[string]string, error) {
	list, err := app.Assignees.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, a := range list {
		names[a.ID] = a.Name
	}
	return names, nil
}
