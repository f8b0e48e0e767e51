package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// gantryHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func gantryHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themedForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(gantryHuhTheme()).WithShowHelp(false)
}

// noneOption is the select value standing for "no parent" or "unassigned".
const noneOption = ""

// ticketParentOptions lists the tickets that may become a parent. When
// editing, exclude holds the ticket itself and its descendants.
func ticketParentOptions(tickets []*domain.Ticket, exclude map[string]bool) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("(top level)", noneOption)}
	for _, t := range tickets {
		if exclude[t.ID] {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", domain.ShortID(t.ID), t.Name), t.ID))
	}
	return options
}

func assigneeOptions(assignees []*domain.Assignee) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("(unassigned)", noneOption)}
	for _, a := range assignees {
		options = append(options, huh.NewOption(a.Name, a.ID))
	}
	return options
}

func statusOptions() []huh.Option[string] {
	options := make([]huh.Option[string], len(domain.ProjectStatuses))
	for i, s := range domain.ProjectStatuses {
		options[i] = huh.NewOption(s.Label(), string(s))
	}
	return options
}

// validateRequired rejects blank input for the named field.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateDate accepts a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := dates.Parse(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

// validateEndAfter returns a validator for an end date that must not fall
// before the date currently held in *start. An unparsable or empty start
// is left to its own field's validation.
func validateEndAfter(start *string, optional bool) func(string) error {
	return func(s string) error {
		if optional && strings.TrimSpace(s) == "" {
			return nil
		}
		if err := validateDate(s); err != nil {
			return err
		}
		from, err := dates.Parse(strings.TrimSpace(*start))
		if err != nil {
			return nil
		}
		end, _ := dates.Parse(strings.TrimSpace(s))
		if dates.Before(end, from) {
			return domain.ErrInvalidDateRange
		}
		return nil
	}
}

// validateNonNegativeFloat accepts empty or a number >= 0.
func validateNonNegativeFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return themedForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}
