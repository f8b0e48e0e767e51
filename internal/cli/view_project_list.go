package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// projectsLoadedMsg signals that project list data has been loaded.
type projectsLoadedMsg struct {
	projects []*domain.Project
	err      error
}

// projectListView shows an interactive, navigable list of projects.
type projectListView struct {
	state    *SharedState
	projects []*domain.Project
	cursor   int
	loading  bool
	err      error

	// Filtering
	filtering bool
	filter    string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{
		state:   state,
		loading: true,
	}
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

func (v *projectListView) capturesInput() bool { return v.filtering }

func (v *projectListView) ShortHelp() []key.Binding {
	if v.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep filter")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "plan")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *projectListView) loadProjects() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.projects = msg.projects
		if n := len(v.visibleProjects()); v.cursor >= n {
			v.cursor = max(n-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadProjects()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) selected() *domain.Project {
	visible := v.visibleProjects()
	if v.cursor < len(visible) {
		return visible[v.cursor]
	}
	return nil
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleProjects()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if p := v.selected(); p != nil {
			v.state.SetActiveProjectFrom(p)
			return v, pushView(newPlannerView(v.state, p.ID))
		}
	case "a":
		return v, v.addProject()
	case "e":
		if p := v.selected(); p != nil {
			return v, v.editProject(p)
		}
	case "d":
		if p := v.selected(); p != nil {
			return v, v.deleteProject(p)
		}
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *projectListView) addProject() tea.Cmd {
	app := v.state.App
	values := newProjectFormValues(&domain.Project{})
	return startForm(v.state, "New project", projectForm(values), func() tea.Cmd {
		p := &domain.Project{}
		if err := values.apply(p); err != nil {
			return resultCmd("", err)
		}
		err := app.Projects.Create(context.Background(), p)
		return resultCmd("Created project "+p.Name, err)
	})
}

func (v *projectListView) editProject(p *domain.Project) tea.Cmd {
	app := v.state.App
	values := newProjectFormValues(p)
	return startForm(v.state, "Edit "+p.Name, projectForm(values), func() tea.Cmd {
		updated := *p
		if err := values.apply(&updated); err != nil {
			return resultCmd("", err)
		}
		err := app.Projects.Update(context.Background(), &updated)
		return resultCmd("Updated project "+updated.Name, err)
	})
}

func (v *projectListView) deleteProject(p *domain.Project) tea.Cmd {
	app := v.state.App
	state := v.state
	var confirmed bool
	title := fmt.Sprintf("Delete %s and all of its tickets?", p.Name)
	return startForm(v.state, "Delete project", wizardConfirm(title, &confirmed), func() tea.Cmd {
		if !confirmed {
			return flash(formatter.Dim("Kept " + p.Name + "."))
		}
		err := app.Projects.Delete(context.Background(), p.ID)
		if err == nil && state.ActiveProjectID == p.ID {
			state.ClearProjectContext()
		}
		return resultCmd("Deleted project "+p.Name, err)
	})
}

func (v *projectListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *projectListView) visibleProjects() []*domain.Project {
	if v.filter == "" {
		return v.projects
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.Project
	for _, p := range v.projects {
		if strings.Contains(strings.ToLower(p.Name), lf) ||
			strings.Contains(strings.ToLower(p.Manager), lf) ||
			strings.HasPrefix(p.ID, lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *projectListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading projects...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	visible := v.visibleProjects()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter)
		if v.filtering {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects found. Press a to add one.") + "\n")
		return b.String()
	}

	today := v.state.App.Today()
	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		end := formatter.Dim("—")
		if p.EndDate != nil {
			end = formatter.RelativeDateFrom(*p.EndDate, today)
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			cursor,
			formatter.StyleGreen.Render(p.DisplayID()),
			nameStyle.Render(padRight(p.Name, 24)),
			formatter.StatusPill(p.Status),
			end,
		))
	}

	return b.String()
}

// padRight pads a string to a minimum width, truncating if needed.
func padRight(s string, width int) string {
	s = formatter.Truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}
