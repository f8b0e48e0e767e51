package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

// friendlyError rewrites sentinel errors into messages for the terminal.
// Unknown errors pass through unchanged.
func friendlyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("not found: %s", strings.TrimSuffix(err.Error(), ": "+repository.ErrNotFound.Error()))
	case errors.Is(err, repository.ErrAmbiguous):
		return fmt.Errorf("%s; type more of the ID", err)
	case errors.Is(err, domain.ErrCycle):
		return fmt.Errorf("a ticket cannot be moved under its own descendant")
	default:
		return err
	}
}

// shellError renders an error for display inside the TUI.
func shellError(err error) string {
	return formatter.StyleRed.Render("✖ " + friendlyError(err).Error())
}
