package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectEditCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

// projectFlags are the editable project fields shared by add and edit.
type projectFlags struct {
	name, description, manager, notes, status string
	start, end, hours, budget                 string
}

func (f *projectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Project name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.manager, "manager", "", "Project manager")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.status, "status", "", "Status: planning, in_progress or completed")
	fs.StringVar(&f.start, "start", "", "Planned start (YYYY-MM-DD, \"none\" clears)")
	fs.StringVar(&f.end, "end", "", "Planned end (YYYY-MM-DD, \"none\" clears)")
	fs.StringVar(&f.hours, "hours", "", "Estimated hours (\"none\" clears)")
	fs.StringVar(&f.budget, "budget", "", "Estimated budget (\"none\" clears)")
}

// apply copies the flags the user set onto p.
func (f *projectFlags) apply(fs *pflag.FlagSet, p *domain.Project) error {
	changed := fs.Changed
	if changed("name") {
		p.Name = f.name
	}
	if changed("description") {
		p.Description = f.description
	}
	if changed("manager") {
		p.Manager = f.manager
	}
	if changed("notes") {
		p.Notes = f.notes
	}
	if changed("status") {
		p.Status = domain.ProjectStatus(f.status)
	}
	var err error
	if changed("start") {
		if p.StartDate, err = parseOptionalDate(f.start); err != nil {
			return err
		}
	}
	if changed("end") {
		if p.EndDate, err = parseOptionalDate(f.end); err != nil {
			return err
		}
	}
	if changed("hours") {
		if p.EstimatedHours, err = parseOptionalFloat("hours", f.hours); err != nil {
			return err
		}
	}
	if changed("budget") {
		if p.EstimatedBudget, err = parseOptionalFloat("budget", f.budget); err != nil {
			return err
		}
	}
	return nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" || s == "none" {
		return nil, nil
	}
	t, err := dates.Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalFloat(name, s string) (*float64, error) {
	if s == "" || s == "none" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid %s %q: enter a non-negative number", name, s)
	}
	return &v, nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{}
			if err := f.apply(cmd.Flags(), p); err != nil {
				return err
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return friendlyError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show project details and its ticket tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Planner.Load(ctx, p.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProjectDetail(p, len(snap.Tickets), app.Today()))
			if len(snap.Rows) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.RenderTree(formatter.TreeItems(snap.Rows, snap.Expanded, nil)))
			}
			return nil
		},
	}
}

func newProjectEditCmd(app *App) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd.Flags(), p); err != nil {
				return err
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return friendlyError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a project and all its tickets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("deleting %q removes all of its tickets; pass --force to confirm", p.Name)
			}
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return friendlyError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion")
	return cmd
}
