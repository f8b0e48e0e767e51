package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// plannerBodyY is the screen row of the first ticket: two app header
	// lines, then the month and day lines of the timeline.
	plannerBodyY = 4
	// plannerChrome is the content height taken by the two timeline header
	// lines and the detail line under the rows.
	plannerChrome = 3

	maxListWidth    = 40
	minListWidth    = 16
	defaultWidth    = 100
	barHandleCells  = 1
	scrollMarginDay = 2
)

// plannerLoadedMsg carries a fresh project snapshot. After a mutation,
// focus names the ticket the cursor should land on.
type plannerLoadedMsg struct {
	snap  *service.Snapshot
	names map[string]string
	focus string
	err   error
}

// plannerMutatedMsg reports a committed change. The planner reloads and
// puts the cursor on focus when it is set.
type plannerMutatedMsg struct {
	note  string
	err   error
	focus string
}

// listDrag is a reorder drag in the ticket list.
type listDrag struct {
	ticketID string
}

// plannerView shows a project's ticket tree next to its timeline. Bars can
// be dragged and resized with the mouse; rows can be dragged in the list to
// reorder siblings.
type plannerView struct {
	state     *SharedState
	projectID string

	snap    *service.Snapshot
	names   map[string]string // assignee id -> name
	layout  *timeline.Layout
	loading bool
	err     error

	cursor int

	// Vertical scroll of each pane, kept equal through sync.
	listTop     int
	timelineTop int
	sync        timeline.ScrollSync

	scrollX  int
	resolver *timeline.Resolver
	dragRow  *listDrag
}

func newPlannerView(state *SharedState, projectID string) *plannerView {
	return &plannerView{
		state:     state,
		projectID: projectID,
		loading:   true,
		resolver:  timeline.NewResolver(state.App.dayCells()),
	}
}

func (v *plannerView) ID() ViewID { return ViewPlanner }

func (v *plannerView) Title() string {
	if v.snap != nil {
		return v.snap.Project.Name
	}
	return "Planner"
}

func (v *plannerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "fold")),
		key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a/A", "add/child")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "move")),
		key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "shift")),
		key.NewBinding(key.WithKeys("H", "L"), key.WithHelp("H/L", "end")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "start")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

func (v *plannerView) Init() tea.Cmd {
	return v.load()
}

func (v *plannerView) load() tea.Cmd {
	return v.loadFocused("")
}

func (v *plannerView) loadFocused(focus string) tea.Cmd {
	app := v.state.App
	projectID := v.projectID
	return func() tea.Msg {
		ctx := context.Background()
		snap, err := app.Planner.Load(ctx, projectID)
		if err != nil {
			return plannerLoadedMsg{err: err}
		}
		names, err := assigneeNames(ctx, app)
		return plannerLoadedMsg{snap: snap, names: names, focus: focus, err: err}
	}
}

// ── geometry ─────────────────────────────────────────────────────────────────

func (v *plannerView) width() int {
	if v.state.Width > 0 {
		return v.state.Width
	}
	return defaultWidth
}

func (v *plannerView) listWidth() int {
	return max(min(maxListWidth, v.width()/3), minListWidth)
}

// paneX is the screen column where the timeline pane starts.
func (v *plannerView) paneX() int { return v.listWidth() + 1 }

func (v *plannerView) paneWidth() int {
	return max(v.width()-v.paneX(), 1)
}

func (v *plannerView) bodyHeight() int {
	if v.state.Height == 0 {
		return max(len(v.rows()), 1)
	}
	return max(v.state.ContentHeight()-plannerChrome, 1)
}

func (v *plannerView) rows() []tree.Row {
	if v.snap == nil {
		return nil
	}
	return v.snap.Rows
}

func (v *plannerView) selected() *domain.Ticket {
	rows := v.rows()
	if v.cursor >= 0 && v.cursor < len(rows) {
		return rows[v.cursor].Ticket
	}
	return nil
}

// rowAt maps a screen row to an index into rows, or -1.
func (v *plannerView) rowAt(y int) int {
	if v.layout == nil || y < plannerBodyY || y >= plannerBodyY+v.bodyHeight() {
		return -1
	}
	i := v.layout.RowAt(v.timelineY(y))
	if i < 0 || i >= len(v.rows()) {
		return -1
	}
	return i
}

// ── scrolling ────────────────────────────────────────────────────────────────

func (v *plannerView) clampTop(top int) int {
	return max(min(top, len(v.rows())-v.bodyHeight()), 0)
}

// scrollList scrolls the ticket list and drags the timeline along.
func (v *plannerView) scrollList(top int) {
	v.listTop = v.clampTop(top)
	v.sync.Propagate(func() { v.timelineTop = v.listTop })
}

// scrollTimeline scrolls the timeline rows and drags the list along.
func (v *plannerView) scrollTimeline(top int) {
	v.timelineTop = v.clampTop(top)
	v.sync.Propagate(func() { v.listTop = v.timelineTop })
}

// keepCursorVisible scrolls the list so the cursor row is on screen.
func (v *plannerView) keepCursorVisible() {
	h := v.bodyHeight()
	switch {
	case v.cursor < v.listTop:
		v.scrollList(v.cursor)
	case v.cursor >= v.listTop+h:
		v.scrollList(v.cursor - h + 1)
	}
}

func (v *plannerView) scrollTimelineX(x int) {
	if v.layout == nil {
		return
	}
	v.scrollX = max(min(x, v.layout.Width()-v.paneWidth()), 0)
}

// revealSelected scrolls horizontally so the selected bar's start shows.
func (v *plannerView) revealSelected() {
	t := v.selected()
	if t == nil || v.layout == nil {
		return
	}
	left := v.layout.X(t.StartDate)
	if left < v.scrollX || left >= v.scrollX+v.paneWidth() {
		v.scrollTimelineX(left - scrollMarginDay*v.layout.Options().DayWidth)
	}
}

func (v *plannerView) scrollToToday() {
	if v.layout == nil {
		return
	}
	v.scrollTimelineX(v.layout.X(v.layout.Today) - v.paneWidth()/2)
}

func (v *plannerView) moveCursor(delta int) {
	n := len(v.rows())
	if n == 0 {
		return
	}
	v.cursor = max(min(v.cursor+delta, n-1), 0)
	v.keepCursorVisible()
	v.revealSelected()
}

func (v *plannerView) focus(id string) bool {
	for i, r := range v.rows() {
		if r.Ticket.ID == id {
			v.cursor = i
			v.keepCursorVisible()
			return true
		}
	}
	return false
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *plannerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The previous frame has been drawn.
	v.sync.EndFrame()

	switch msg := msg.(type) {
	case plannerLoadedMsg:
		v.applySnapshot(msg)
		return v, nil

	case plannerMutatedMsg:
		reload := v.loadFocused(msg.focus)
		switch {
		case msg.err != nil:
			return v, tea.Batch(flash(shellError(msg.err)), reload)
		case msg.note != "":
			return v, tea.Batch(flash(formatter.StyleGreen.Render("✔ "+msg.note)), reload)
		}
		return v, reload

	case refreshViewMsg:
		return v, v.load()

	case tea.WindowSizeMsg:
		v.scrollList(v.listTop)
		v.scrollTimelineX(v.scrollX)
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *plannerView) applySnapshot(msg plannerLoadedMsg) {
	first := v.snap == nil
	v.loading = false
	if msg.err != nil {
		v.err = msg.err
		return
	}
	v.err = nil
	snap, focus := msg.snap, msg.focus
	v.names = msg.names

	var keep string
	if t := v.selected(); t != nil {
		keep = t.ID
	}
	v.snap = snap
	v.state.SetActiveProjectFrom(snap.Project)
	v.layout = timeline.NewLayout(snap.Tickets, v.state.App.Today(),
		timeline.CellOptions(v.state.App.dayCells(), v.state.App.Holidays))

	if focus == "" {
		focus = keep
	}
	if focus == "" || !v.focus(focus) {
		v.cursor = max(min(v.cursor, len(snap.Rows)-1), 0)
		v.scrollList(v.listTop)
	}
	if first {
		v.revealSelected()
	} else {
		v.scrollTimelineX(v.scrollX)
	}
}

func (v *plannerView) handleKey(msg tea.KeyMsg) tea.Cmd {
	t := v.selected()

	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "pgup":
		v.moveCursor(-v.bodyHeight())
	case "pgdown":
		v.moveCursor(v.bodyHeight())
	case "left":
		v.scrollTimelineX(v.scrollX - v.state.App.dayCells())
	case "right":
		v.scrollTimelineX(v.scrollX + v.state.App.dayCells())
	case "t":
		v.scrollToToday()
	case "r":
		return v.load()

	case "enter", " ":
		if t != nil && v.rows()[v.cursor].HasChildren {
			return v.toggle(t)
		}
	case "+":
		return v.setAllExpanded(true)
	case "-":
		return v.setAllExpanded(false)

	case "K":
		if t != nil {
			return v.moveBy(t, -1)
		}
	case "J":
		if t != nil {
			return v.moveBy(t, 1)
		}
	case "h":
		return v.shift(t, timeline.GestureMove, -1)
	case "l":
		return v.shift(t, timeline.GestureMove, 1)
	case "H":
		return v.shift(t, timeline.GestureResizeEnd, -1)
	case "L":
		return v.shift(t, timeline.GestureResizeEnd, 1)
	case "[":
		return v.shift(t, timeline.GestureResizeStart, -1)
	case "]":
		return v.shift(t, timeline.GestureResizeStart, 1)

	case "a":
		return v.addTicket(nil)
	case "A":
		if t != nil {
			return v.addTicket(t)
		}
	case "e":
		if t != nil {
			return v.editTicket(t)
		}
	case "d":
		if t != nil {
			return v.deleteTicket(t)
		}
	}
	return nil
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (v *plannerView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if v.snap == nil {
		return nil
	}
	inTimeline := msg.X >= v.paneX()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if inTimeline {
			v.scrollTimeline(v.timelineTop - 1)
		} else {
			v.scrollList(v.listTop - 1)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if inTimeline {
			v.scrollTimeline(v.timelineTop + 1)
		} else {
			v.scrollList(v.listTop + 1)
		}
		return nil
	case tea.MouseButtonWheelLeft:
		v.scrollTimelineX(v.scrollX - v.state.App.dayCells())
		return nil
	case tea.MouseButtonWheelRight:
		v.scrollTimelineX(v.scrollX + v.state.App.dayCells())
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return v.pointerDown(msg.X, msg.Y, inTimeline)
	case tea.MouseActionMotion:
		if v.resolver.Active() {
			if !v.onTimelineBody(msg.X, msg.Y) {
				return v.commitGesture(v.resolver.Leave())
			}
			v.resolver.Move(v.timelineX(msg.X))
		}
	case tea.MouseActionRelease:
		if v.resolver.Active() {
			return v.commitGesture(v.resolver.Release())
		}
		if v.dragRow != nil {
			drag := v.dragRow
			v.dragRow = nil
			if i := v.rowAt(msg.Y); i >= 0 {
				return v.reorder(drag.ticketID, v.rows()[i].Ticket.ID)
			}
		}
	}
	return nil
}

// timelineX converts a screen column to a layout coordinate.
func (v *plannerView) timelineX(x int) int {
	return x - v.paneX() + v.scrollX
}

// timelineY converts a screen row to a layout coordinate. Scroll sync keeps
// the panes in step, so listTop stands for both.
func (v *plannerView) timelineY(y int) int {
	return y - plannerBodyY + v.listTop
}

func (v *plannerView) onTimelineBody(x, y int) bool {
	return x >= v.paneX() && y >= plannerBodyY && y < plannerBodyY+v.bodyHeight()
}

func (v *plannerView) pointerDown(x, y int, inTimeline bool) tea.Cmd {
	i := v.rowAt(y)
	if i < 0 {
		return nil
	}
	v.cursor = i
	t := v.rows()[i].Ticket
	if !inTimeline {
		v.dragRow = &listDrag{ticketID: t.ID}
		return nil
	}
	lx := v.timelineX(x)
	if kind := timeline.HitTest(v.layout, t, i, lx, v.timelineY(y), barHandleCells); kind != timeline.GestureNone {
		v.resolver.Begin(kind, t, lx)
	}
	return nil
}

// ── mutations ────────────────────────────────────────────────────────────────

func mutated(note string, err error, focus string) tea.Msg {
	return plannerMutatedMsg{note: note, err: err, focus: focus}
}

func (v *plannerView) commitGesture(candidate *domain.Ticket) tea.Cmd {
	if candidate == nil {
		return nil
	}
	app := v.state.App
	return func() tea.Msg {
		changed, err := app.Tickets.CommitSchedule(context.Background(), candidate)
		if err != nil || !changed {
			return mutated("", err, candidate.ID)
		}
		return mutated(candidate.Name+" "+formatter.DateRange(candidate.StartDate, candidate.EndDate), nil, candidate.ID)
	}
}

func (v *plannerView) shift(t *domain.Ticket, kind timeline.GestureKind, days int) tea.Cmd {
	if t == nil || v.resolver.Active() {
		return nil
	}
	return v.commitGesture(timeline.Shift(kind, t, days))
}

func (v *plannerView) moveBy(t *domain.Ticket, delta int) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		_, err := app.Tickets.MoveBy(context.Background(), t.ID, delta)
		return mutated("", err, t.ID)
	}
}

func (v *plannerView) reorder(draggedID, targetID string) tea.Cmd {
	if draggedID == targetID {
		return nil
	}
	app := v.state.App
	return func() tea.Msg {
		_, err := app.Tickets.Reorder(context.Background(), draggedID, targetID)
		return mutated("", err, draggedID)
	}
}

func (v *plannerView) toggle(t *domain.Ticket) tea.Cmd {
	app := v.state.App
	projectID := v.projectID
	return func() tea.Msg {
		_, err := app.Planner.ToggleExpanded(context.Background(), projectID, t.ID)
		return mutated("", err, t.ID)
	}
}

func (v *plannerView) setAllExpanded(expanded bool) tea.Cmd {
	app := v.state.App
	projectID := v.projectID
	var focus string
	if t := v.selected(); t != nil {
		focus = t.ID
	}
	return func() tea.Msg {
		err := app.Planner.SetAllExpanded(context.Background(), projectID, expanded)
		return mutated("", err, focus)
	}
}

func (v *plannerView) addTicket(parent *domain.Ticket) tea.Cmd {
	app := v.state.App
	today := app.Today()
	draft := &domain.Ticket{ProjectID: v.projectID, StartDate: today, EndDate: today}
	title := "New ticket"
	if parent != nil {
		draft.ParentID = &parent.ID
		draft.StartDate, draft.EndDate = parent.StartDate, parent.StartDate
		title = "New ticket under " + parent.Name
	}

	assignees, err := app.Assignees.List(context.Background())
	if err != nil {
		return flash(shellError(err))
	}
	values := newTicketFormValues(draft)
	form := ticketForm(values, ticketParentOptions(v.snap.Tickets, nil), assigneeOptions(assignees))

	return startForm(v.state, title, form, func() tea.Cmd {
		t := &domain.Ticket{ProjectID: v.projectID}
		if err := values.apply(t); err != nil {
			return resultCmd("", err)
		}
		return func() tea.Msg {
			err := app.Tickets.Create(context.Background(), t)
			return mutated("Created "+t.Name, err, t.ID)
		}
	})
}

func (v *plannerView) editTicket(t *domain.Ticket) tea.Cmd {
	app := v.state.App
	assignees, err := app.Assignees.List(context.Background())
	if err != nil {
		return flash(shellError(err))
	}
	exclude := make(map[string]bool)
	for _, id := range tree.Descendants(v.snap.Tickets, t.ID) {
		exclude[id] = true
	}
	values := newTicketFormValues(t)
	form := ticketForm(values, ticketParentOptions(v.snap.Tickets, exclude), assigneeOptions(assignees))

	return startForm(v.state, "Edit "+t.Name, form, func() tea.Cmd {
		updated := t.Clone()
		if err := values.apply(updated); err != nil {
			return resultCmd("", err)
		}
		return func() tea.Msg {
			err := app.Tickets.Update(context.Background(), updated)
			return mutated("Updated "+updated.Name, err, updated.ID)
		}
	})
}

func (v *plannerView) deleteTicket(t *domain.Ticket) tea.Cmd {
	app := v.state.App
	title := fmt.Sprintf("Delete %s?", t.Name)
	if n := len(tree.Descendants(v.snap.Tickets, t.ID)) - 1; n > 0 {
		title = fmt.Sprintf("Delete %s and its %d descendant(s)?", t.Name, n)
	}
	var confirmed bool
	return startForm(v.state, "Delete ticket", wizardConfirm(title, &confirmed), func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg {
			_, err := app.Tickets.Delete(context.Background(), t.ID)
			return mutated("Deleted "+t.Name, err, "")
		}
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *plannerView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading tickets...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	lw := v.listWidth()
	gv := formatter.GanttView{ScrollX: v.scrollX, Width: v.paneWidth()}
	if s := v.resolver.Session(); s != nil {
		gv.Dragging = s.TicketID
	}
	sep := formatter.Dim("│")

	var b strings.Builder
	b.WriteString(padCells(formatter.Bold(formatter.Truncate(v.snap.Project.Name, lw)), lw) + sep + formatter.GanttMonths(v.layout, gv) + "\n")
	b.WriteString(padCells(formatter.Dim("Ticket"), lw) + sep + formatter.GanttDays(v.layout, gv) + "\n")

	rows := v.rows()
	h := v.bodyHeight()
	if len(rows) == 0 {
		b.WriteString(padCells(formatter.Dim(" No tickets. Press a to add one."), lw) + sep + "\n")
	}
	for line := 0; line < h; line++ {
		li, ti := v.listTop+line, v.timelineTop+line
		if li >= len(rows) && ti >= len(rows) {
			break
		}
		cell := strings.Repeat(" ", lw)
		if li < len(rows) {
			cell = v.renderListCell(rows[li], li == v.cursor, lw)
		}
		bar := ""
		if ti < len(rows) {
			bar = formatter.GanttBar(v.layout, v.resolver.Display(rows[ti].Ticket), gv)
		}
		b.WriteString(cell + sep + bar + "\n")
	}

	b.WriteString(v.renderDetail())
	return b.String()
}

func (v *plannerView) renderListCell(r tree.Row, selected bool, width int) string {
	marker := "  "
	if r.HasChildren {
		marker = "▸ "
		if v.snap.Expanded[r.Ticket.ID] {
			marker = "▾ "
		}
	}
	text := strings.Repeat("  ", r.Level) + marker + r.Ticket.Name
	text = formatter.Truncate(text, width-2)

	cursor := "  "
	style := formatter.StyleFg
	switch {
	case v.dragRow != nil && v.dragRow.ticketID == r.Ticket.ID:
		cursor = formatter.StyleYellow.Render("≡ ")
		style = formatter.StyleYellowBold
	case selected:
		cursor = formatter.StyleGreen.Render("▸ ")
		style = formatter.StyleBold
	}
	return padCells(cursor+style.Render(text), width)
}

func (v *plannerView) renderDetail() string {
	t := v.selected()
	if t == nil {
		return ""
	}
	t = v.resolver.Display(t)
	parts := []string{formatter.Bold(t.Name), formatter.DateRange(t.StartDate, t.EndDate)}
	if t.AssigneeID != nil {
		if name := v.names[*t.AssigneeID]; name != "" {
			parts = append(parts, formatter.StyleBlue.Render(name))
		}
	}
	if d := dates.DiffInDays(t.EndDate, v.state.App.Today()); d < 0 {
		parts = append(parts, formatter.StyleRed.Render("overdue"))
	}
	return " " + strings.Join(parts, formatter.Dim(" · "))
}

// padCells pads styled text to width visible cells.
func padCells(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
