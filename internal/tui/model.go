package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/evanschultz/taskboard/internal/app"
	"github.com/evanschultz/taskboard/internal/domain"
)

// inputMode represents input mode data used by this package.
type inputMode int

const (
	modeNone inputMode = iota
	modeAddTask
	modeEditTask
	modeHelp
)

// retryKind names the preference operation repeated by the error view.
type retryKind int

const (
	retryNone retryKind = iota
	retryLoad
	retrySave
)

// Screen rows used for rendering and mouse hit testing.
const (
	headerRow = 0
	addRow    = 2
	filterRow = 4
	taskTop   = 6
	// footerRows covers the blank separator, status line and help line.
	footerRows = 3
)

// Task row columns: cursor marker, checkbox, edit glyph, text.
const (
	checkboxStart = 2
	checkboxEnd   = 5
	editGlyphCol  = 6
	textCol       = 8
)

const defaultTitle = "Enhanced To-Do List"

// Model is the Bubble Tea model wrapping one board.
type Model struct {
	board *app.Board

	ready  bool
	width  int
	height int
	err    error
	retry  retryKind

	status   string
	title    string
	showHelp bool

	help     help.Model
	keys     keyMap
	markdown *markdownRenderer
	logger   Logger
	copyText func(string) error

	mode      inputMode
	cursor    int
	addInput  textinput.Model
	editInput textinput.Model
}

// startupMsg triggers the one-time preference load.
type startupMsg struct{}

// clipboardMsg reports the outcome of a copy action.
type clipboardMsg struct {
	text string
	err  error
}

// NewModel constructs a model over board. A nil board starts an empty one
// with an in-memory theme flag.
func NewModel(board *app.Board, opts ...Option) Model {
	if board == nil {
		board = app.NewBoard(nil, nil, app.BoardConfig{})
	}
	h := help.New()
	h.ShowAll = false
	m := Model{
		board:     board,
		status:    "loading...",
		title:     defaultTitle,
		showHelp:  true,
		help:      h,
		keys:      newKeyMap(),
		markdown:  &markdownRenderer{},
		logger:    nopLogger{},
		copyText:  clipboard.WriteAll,
		addInput:  newTaskInput("new task: ", "what needs doing?", 200),
		editInput: newTaskInput("", "", 200),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// newTaskInput builds a single-line text input.
func newTaskInput(prompt, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return startupMsg{}
	}
}

// Board returns the wrapped board.
func (m Model) Board() *app.Board {
	return m.board
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case startupMsg:
		return m.loadPreference()

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", "err", msg.err)
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "copied: " + truncate(msg.text, 40)
		return m, nil

	case tea.KeyPressMsg:
		if m.err != nil {
			return m.handleErrorKey(msg)
		}
		switch m.mode {
		case modeAddTask:
			return m.handleAddKey(msg)
		case modeEditTask:
			return m.handleEditKey(msg)
		case modeHelp:
			return m.handleHelpKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	default:
		return m, nil
	}
}

// loadPreference reads the stored theme flag into the board.
func (m Model) loadPreference() (tea.Model, tea.Cmd) {
	if err := m.board.LoadPreference(context.Background()); err != nil {
		m.logger.Error("theme preference load failed", "key", m.board.ThemeKey(), "err", err)
		m.err = err
		m.retry = retryLoad
		return m, nil
	}
	m.logger.Debug("theme preference loaded", "key", m.board.ThemeKey(), "dark", m.board.DarkMode())
	m.err = nil
	m.retry = retryNone
	if m.status == "" || m.status == "loading..." {
		m.status = "ready"
	}
	return m, nil
}

// savePreference rewrites the current theme flag.
func (m Model) savePreference() (tea.Model, tea.Cmd) {
	if err := m.board.SetDarkMode(context.Background(), m.board.DarkMode()); err != nil {
		m.logger.Error("theme preference save failed", "key", m.board.ThemeKey(), "err", err)
		m.err = err
		m.retry = retrySave
		return m, nil
	}
	m.err = nil
	m.retry = retryNone
	m.status = "theme saved"
	return m, nil
}

// handleErrorKey handles keys while the error view is shown.
func (m Model) handleErrorKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.retry):
		switch m.retry {
		case retryLoad:
			return m.loadPreference()
		case retrySave:
			return m.savePreference()
		}
		m.err = nil
		return m, nil
	default:
		return m, nil
	}
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.mode = modeHelp
		return m, nil
	case key.Matches(msg, m.keys.addTask):
		cmd := m.focusAddInput()
		return m, cmd
	case key.Matches(msg, m.keys.moveUp):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.editTask):
		task, ok := m.cursorTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		cmd := m.startEdit(task)
		return m, cmd
	case key.Matches(msg, m.keys.toggleTask):
		task, ok := m.cursorTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m.toggleTask(task.ID)
	case key.Matches(msg, m.keys.filterAll):
		return m.setFilter(domain.FilterAll)
	case key.Matches(msg, m.keys.filterDone):
		return m.setFilter(domain.FilterCompleted)
	case key.Matches(msg, m.keys.filterPending):
		return m.setFilter(domain.FilterPending)
	case key.Matches(msg, m.keys.cycleFilter):
		return m.setFilter(m.board.Filter().Next())
	case key.Matches(msg, m.keys.toggleTheme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.copyTask):
		task, ok := m.cursorTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.copyTaskCmd(task.Text)
	default:
		return m, nil
	}
}

// handleAddKey handles keys while the add-box has focus.
func (m Model) handleAddKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.interrupt):
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.addInput.Blur()
		m.mode = modeNone
		m.status = "ready"
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m.submitAdd()
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.board.SetNewTaskInput(m.addInput.Value())
	return m, cmd
}

// handleEditKey handles keys while an inline edit box has focus.
func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.interrupt):
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.board.CancelEdit()
		m.editInput.Blur()
		m.mode = modeNone
		m.status = "edit cancelled"
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m.submitEdit()
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.board.SetEditedText(m.editInput.Value())
	return m, cmd
}

// handleHelpKey handles keys while the help overlay is open.
func (m Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp, m.keys.cancel):
		m.mode = modeNone
		return m, nil
	default:
		return m, nil
	}
}

// focusAddInput moves focus to the add-box.
func (m *Model) focusAddInput() tea.Cmd {
	if m.mode == modeEditTask {
		m.board.CancelEdit()
		m.editInput.Blur()
	}
	m.mode = modeAddTask
	m.addInput.SetValue(m.board.NewTaskInput())
	m.status = "adding task"
	return m.addInput.Focus()
}

// submitAdd adds the add-box text. Blank input is ignored and keeps focus.
func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	m.board.SetNewTaskInput(m.addInput.Value())
	task, ok := m.board.AddTask(m.board.NewTaskInput())
	if !ok {
		return m, nil
	}
	m.addInput.SetValue("")
	m.logger.Debug("task added", "task_id", task.ID)
	m.status = "added: " + truncate(task.Text, 40)
	m.focusTask(task.ID)
	return m, nil
}

// startEdit opens the inline edit box for task, dropping any other edit.
func (m *Model) startEdit(task domain.Task) tea.Cmd {
	if m.mode == modeAddTask {
		m.addInput.Blur()
	}
	m.board.StartEdit(task.ID, task.Text)
	m.editInput.SetValue(m.board.EditedText())
	m.mode = modeEditTask
	m.focusTask(task.ID)
	m.status = "editing task"
	return m.editInput.Focus()
}

// submitEdit saves the edit buffer verbatim.
func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	id := m.board.EditingTaskID()
	m.board.SetEditedText(m.editInput.Value())
	m.editInput.Blur()
	m.mode = modeNone
	if err := m.board.SaveEdit(id); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			m.status = "task no longer exists"
			return m, nil
		}
		m.err = err
		return m, nil
	}
	m.logger.Debug("task edited", "task_id", id)
	m.status = "saved"
	m.clampCursor()
	return m, nil
}

// toggleTask flips completion for id.
func (m Model) toggleTask(id string) (tea.Model, tea.Cmd) {
	if err := m.board.ToggleCompletion(id); err != nil {
		m.status = err.Error()
		return m, nil
	}
	task, _ := m.board.Task(id)
	m.logger.Debug("task toggled", "task_id", id, "completed", task.Completed)
	if task.Completed {
		m.status = "completed: " + truncate(task.Text, 40)
	} else {
		m.status = "reopened: " + truncate(task.Text, 40)
	}
	m.dropHiddenEdit()
	m.clampCursor()
	return m, nil
}

// setFilter switches the active filter and keeps the cursor in range.
func (m Model) setFilter(filter domain.Filter) (tea.Model, tea.Cmd) {
	if err := m.board.SetFilter(filter); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = "showing " + strings.ToLower(filter.Label())
	m.dropHiddenEdit()
	m.clampCursor()
	return m, nil
}

// dropHiddenEdit cancels an edit whose task the active filter no longer shows.
func (m *Model) dropHiddenEdit() {
	if m.mode != modeEditTask {
		return
	}
	id := m.board.EditingTaskID()
	for _, task := range m.board.VisibleTasks() {
		if task.ID == id {
			m.focusTask(id)
			return
		}
	}
	m.board.CancelEdit()
	m.editInput.Blur()
	m.mode = modeNone
	m.status += ", edit cancelled"
}

// toggleTheme flips and persists the dark-mode flag.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if err := m.board.ToggleDarkMode(context.Background()); err != nil {
		m.logger.Error("theme preference save failed", "key", m.board.ThemeKey(), "err", err)
		m.err = err
		m.retry = retrySave
		return m, nil
	}
	m.logger.Debug("theme toggled", "dark", m.board.DarkMode())
	m.status = "theme: " + paletteFor(m.board.DarkMode()).name
	return m, nil
}

// copyTaskCmd writes text to the system clipboard.
func (m Model) copyTaskCmd(text string) tea.Cmd {
	write := m.copyText
	return func() tea.Msg {
		return clipboardMsg{text: text, err: write(text)}
	}
}

// cursorTask returns the visible task under the cursor.
func (m Model) cursorTask() (domain.Task, bool) {
	tasks := m.board.VisibleTasks()
	if len(tasks) == 0 {
		return domain.Task{}, false
	}
	return tasks[clamp(m.cursor, 0, len(tasks)-1)], true
}

// moveCursor moves the cursor within the visible list without wrapping.
func (m *Model) moveCursor(delta int) {
	total := len(m.board.VisibleTasks())
	if total == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, total-1)
}

// focusTask moves the cursor to id when it is visible.
func (m *Model) focusTask(id string) {
	for idx, task := range m.board.VisibleTasks() {
		if task.ID == id {
			m.cursor = idx
			return
		}
	}
	m.clampCursor()
}

// clampCursor keeps the cursor inside the visible list.
func (m *Model) clampCursor() {
	m.cursor = clamp(m.cursor, 0, len(m.board.VisibleTasks())-1)
}

// handleMouseWheel handles mouse wheel.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.err != nil || m.mode == modeHelp || m.mode == modeEditTask {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.moveCursor(-1)
	case tea.MouseWheelDown:
		m.moveCursor(1)
	}
	return m, nil
}

// handleMouseClick handles mouse click.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.err != nil || m.mode == modeHelp || msg.Button != tea.MouseLeft {
		return m, nil
	}
	if m.mode == modeAddTask && msg.Y != addRow {
		m.addInput.Blur()
		m.mode = modeNone
	}

	switch {
	case msg.Y == headerRow:
		start, end := m.themeToggleBounds()
		if msg.X >= start && msg.X < end {
			return m.toggleTheme()
		}
		return m, nil
	case msg.Y == addRow:
		if m.mode == modeAddTask {
			return m, nil
		}
		cmd := m.focusAddInput()
		return m, cmd
	case msg.Y == filterRow:
		for idx, bounds := range filterButtonBounds() {
			if msg.X >= bounds[0] && msg.X < bounds[1] {
				return m.setFilter(domain.Filters[idx])
			}
		}
		return m, nil
	case msg.Y >= taskTop:
		tasks := m.board.VisibleTasks()
		start, end := windowBounds(len(tasks), m.cursor, m.listHeight())
		idx := start + msg.Y - taskTop
		if idx >= end {
			return m, nil
		}
		task := tasks[idx]
		if m.mode == modeEditTask && m.board.IsEditing(task.ID) {
			return m, nil
		}
		m.cursor = idx
		switch {
		case msg.X >= checkboxStart && msg.X < checkboxEnd:
			return m.toggleTask(task.ID)
		case msg.X == editGlyphCol:
			cmd := m.startEdit(task)
			return m, cmd
		}
		return m, nil
	default:
		return m, nil
	}
}

// themeToggleBounds returns the header columns of the theme control.
func (m Model) themeToggleBounds() (int, int) {
	start := lipgloss.Width(m.title) + 2
	return start, start + lipgloss.Width(themeBadge(m.board.DarkMode()))
}

// filterButtonBounds returns [start, end) columns for each filter button.
func filterButtonBounds() [][2]int {
	out := make([][2]int, 0, len(domain.Filters))
	x := 0
	for _, filter := range domain.Filters {
		w := lipgloss.Width(filter.Label()) + 2
		out = append(out, [2]int{x, x + w})
		x += w + 1
	}
	return out
}

// listHeight returns how many task rows fit on screen.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return len(m.board.VisibleTasks())
	}
	return max(1, m.height-taskTop-footerRows)
}

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView(fmt.Sprintf("error: %s\n\npress %s to retry • %s quit\n",
			m.err.Error(), m.keys.retry.Help().Key, m.keys.quit.Help().Key))
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}

	dark := m.board.DarkMode()
	pal := paletteFor(dark)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.title)
	badgeStyle := lipgloss.NewStyle().Foreground(pal.accent)
	statusStyle := lipgloss.NewStyle().Foreground(pal.muted)

	counts := m.board.Counts()
	header := titleStyle.Render(m.title) + "  " + badgeStyle.Render(themeBadge(dark)) +
		statusStyle.Render(fmt.Sprintf("  %d tasks • %d done • %d pending", counts.Total, counts.Completed, counts.Pending))

	lines := []string{
		header,
		"",
		m.addInput.View(),
		"",
		m.renderFilterButtons(pal),
		"",
	}
	lines = append(lines, m.renderTaskRows(pal)...)
	content := strings.Join(lines, "\n")

	footer := []string{statusStyle.Render(m.status)}
	if m.showHelp {
		hb := m.help
		hb.ShowAll = false
		hb.SetWidth(max(0, m.width-2))
		footer = append(footer, statusStyle.Render(hb.View(m.keys)))
	}
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-len(footer)-1))
	}
	fullContent := content + "\n\n" + strings.Join(footer, "\n")

	if m.mode == modeHelp {
		overlay := m.renderHelpOverlay(pal, m.width-8)
		height := lipgloss.Height(fullContent)
		if m.height > 0 {
			height = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, height))
	}

	v := tea.NewView(fullContent)
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// renderFilterButtons renders the three filter controls.
func (m Model) renderFilterButtons(pal palette) string {
	base := lipgloss.NewStyle().Padding(0, 1)
	activeStyle := base.Bold(true).Foreground(pal.active).Background(pal.accent)
	idleStyle := base.Foreground(pal.muted)
	buttons := make([]string, 0, len(domain.Filters))
	for _, filter := range domain.Filters {
		if filter == m.board.Filter() {
			buttons = append(buttons, activeStyle.Render(filter.Label()))
			continue
		}
		buttons = append(buttons, idleStyle.Render(filter.Label()))
	}
	return strings.Join(buttons, " ")
}

// renderTaskRows renders the visible window of the filtered list.
func (m Model) renderTaskRows(pal palette) []string {
	tasks := m.board.VisibleTasks()
	if len(tasks) == 0 {
		empty := "no tasks yet, press a to add one"
		if m.board.Filter() != domain.FilterAll {
			empty = "nothing " + strings.ToLower(m.board.Filter().Label())
		}
		return []string{lipgloss.NewStyle().Foreground(pal.dim).Render("  " + empty)}
	}

	textStyle := lipgloss.NewStyle().Foreground(pal.text)
	doneStyle := lipgloss.NewStyle().Foreground(pal.done).Strikethrough(true)
	cursorStyle := lipgloss.NewStyle().Foreground(pal.accent).Bold(true)
	controlStyle := lipgloss.NewStyle().Foreground(pal.accent)

	textWidth := 0
	if m.width > 0 {
		textWidth = max(1, m.width-textCol)
	}
	start, end := windowBounds(len(tasks), m.cursor, m.listHeight())
	rows := make([]string, 0, end-start)
	for idx := start; idx < end; idx++ {
		task := tasks[idx]
		marker := "  "
		if idx == m.cursor {
			marker = cursorStyle.Render("› ")
		}
		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}
		row := marker + controlStyle.Render(box) + " " + controlStyle.Render("✎") + " "
		switch {
		case m.board.IsEditing(task.ID):
			row += m.editInput.View()
		case task.Completed:
			row += doneStyle.Render(clipText(task.Text, textWidth))
		default:
			row += textStyle.Render(clipText(task.Text, textWidth))
		}
		rows = append(rows, row)
	}
	return rows
}

// renderHelpOverlay renders the markdown cheat-sheet.
func (m Model) renderHelpOverlay(pal palette, maxWidth int) string {
	width := clamp(maxWidth, 40, 80)
	body := m.markdown.render(helpMarkdown(m.keys), width-4, m.board.DarkMode())
	footer := lipgloss.NewStyle().Foreground(pal.muted).Render("press ? or esc to close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.accent).
		Padding(0, 1).
		Width(width).
		Render(body + "\n\n" + footer)
}

// helpMarkdown lists every binding as a markdown table.
func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# Keys\n\n| key | action |\n|---|---|\n")
	for _, group := range k.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nClick a filter button, a `[ ]` box or a `✎` to use the mouse.\n")
	return b.String()
}

// clipText truncates s to width when width is positive.
func clipText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate(s, width)
}

// clamp bounds v to [minV, maxV]; maxV below minV yields minV.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// windowBounds returns an inclusive-exclusive list window that keeps selected visible.
func windowBounds(total, selected, windowSize int) (int, int) {
	if total <= 0 || windowSize <= 0 {
		return 0, 0
	}
	if total <= windowSize {
		return 0, total
	}
	selected = clamp(selected, 0, total-1)
	start := selected - windowSize/2
	if start < 0 {
		start = 0
	}
	end := start + windowSize
	if end > total {
		end = total
		start = max(0, end-windowSize)
	}
	return start, end
}

// fitLines pads or cuts content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay above base.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	canvas.Compose(lipgloss.NewLayer(base).X(0).Y(0).Z(0))
	canvas.Compose(lipgloss.NewLayer(centered).X(0).Y(0).Z(10))
	return canvas.Render()
}

// truncate truncates s to limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	if limit <= 1 {
		return string(rs[:limit])
	}
	return string(rs[:limit-1]) + "…"
}
