package cli

import (
	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formView wraps a huh.Form as a View on the navigation stack. When the
// form completes, done runs and its command travels in a formDoneMsg so
// the app pops the form before the follow-up runs.
type formView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
}

func newFormView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *formView {
	return &formView{
		state:    state,
		form:     form,
		titleStr: title,
		done:     done,
	}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return formDoneMsg{nextCmd: flash(formatter.Dim("Cancelled."))} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg { return formDoneMsg{nextCmd: doneCmd} }
	case huh.StateAborted:
		return v, func() tea.Msg { return formDoneMsg{nextCmd: flash(formatter.Dim("Cancelled."))} }
	}

	return v, cmd
}

func (v *formView) View() string {
	return v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.titleStr }
func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// startForm returns a tea.Cmd that pushes a formView.
func startForm(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	return pushView(newFormView(state, title, form, done))
}

// resultCmd reports the outcome of a form action as a flash.
func resultCmd(msg string, err error) tea.Cmd {
	if err != nil {
		return flash(shellError(err))
	}
	return flash(formatter.StyleGreen.Render("✔ " + msg))
}
