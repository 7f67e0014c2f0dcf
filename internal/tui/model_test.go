package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/taskboard/internal/app"
	"github.com/evanschultz/taskboard/internal/config"
	"github.com/evanschultz/taskboard/internal/domain"
)

type fakePrefs struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: map[string]string{}}
}

func (f *fakePrefs) GetPreference(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakePrefs) SetPreference(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func newSeededBoard(prefs app.PreferenceStore, texts ...string) *app.Board {
	board := app.NewBoard(prefs, nil, app.BoardConfig{})
	for _, text := range texts {
		board.AddTask(text)
	}
	return board
}

func TestModelStartupLoadsThemePreference(t *testing.T) {
	prefs := newFakePrefs()
	prefs.values["darkMode"] = "true"
	m := loadReadyModel(t, NewModel(newSeededBoard(prefs)))

	if !m.board.DarkMode() {
		t.Fatal("expected dark mode restored at startup")
	}
	if m.status != "ready" {
		t.Fatalf("expected ready status, got %q", m.status)
	}
	if !strings.Contains(renderView(m), "☾ dark") {
		t.Fatal("expected dark badge in view")
	}
}

func TestModelAddTaskTrimsAndClearsInput(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(newFakePrefs())))

	m = press(t, m, keyRune('a'))
	if m.mode != modeAddTask {
		t.Fatalf("expected add mode, got %v", m.mode)
	}
	m = typeText(t, m, "  Buy milk  ")
	if got := m.board.NewTaskInput(); got != "  Buy milk  " {
		t.Fatalf("expected add-box bound to input, got %q", got)
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	tasks := m.board.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Fatalf("unexpected tasks after add %#v", tasks)
	}
	if m.addInput.Value() != "" || m.board.NewTaskInput() != "" {
		t.Fatalf("expected add-box cleared, got %q", m.addInput.Value())
	}
	if m.mode != modeAddTask {
		t.Fatal("expected add-box to keep focus for the next task")
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = typeText(t, m, "   ")
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := len(m.board.Tasks()); got != 1 {
		t.Fatalf("expected blank adds ignored, got %d tasks", got)
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected esc to leave add-box, got %v", m.mode)
	}
}

func TestModelAddBoxCapturesQuitRune(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(nil)))
	m = press(t, m, keyRune('a'))
	m = typeText(t, m, "q")
	if m.mode != modeAddTask || m.addInput.Value() != "q" {
		t.Fatalf("expected q typed into add-box, mode=%v value=%q", m.mode, m.addInput.Value())
	}
}

func TestModelToggleAndFilter(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(newFakePrefs(), "one", "two")))

	m = applyMsg(t, m, keyRune('x'))
	first, _ := m.board.Task("task-1")
	if !first.Completed {
		t.Fatal("expected cursor task completed")
	}

	m = applyMsg(t, m, keyRune('2'))
	if m.board.Filter() != domain.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", m.board.Filter())
	}
	if visible := m.board.VisibleTasks(); len(visible) != 1 || visible[0].Text != "one" {
		t.Fatalf("unexpected completed view %#v", visible)
	}

	m = applyMsg(t, m, keyRune('3'))
	if visible := m.board.VisibleTasks(); len(visible) != 1 || visible[0].Text != "two" {
		t.Fatalf("unexpected pending view %#v", visible)
	}

	m = applyMsg(t, m, keyRune('f'))
	if m.board.Filter() != domain.FilterAll {
		t.Fatalf("expected filter to cycle back to all, got %q", m.board.Filter())
	}

	m = applyMsg(t, m, keyRune('2'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: ' ', Text: " "})
	if got := len(m.board.VisibleTasks()); got != 0 {
		t.Fatalf("expected reopened task to leave completed view, got %d", got)
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", m.cursor)
	}
	if !strings.Contains(renderView(m), "nothing completed") {
		t.Fatal("expected empty filter message")
	}
}

func TestModelCursorMovement(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one", "two", "three")))

	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = applyMsg(t, m, keyRune('j'))
	if m.cursor != 2 {
		t.Fatalf("expected cursor stopped at last row, got %d", m.cursor)
	}
	m = applyMsg(t, m, keyRune('k'))
	if task, _ := m.cursorTask(); task.Text != "two" {
		t.Fatalf("expected cursor on two, got %q", task.Text)
	}
	m = applyMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if m.cursor != 0 {
		t.Fatalf("expected wheel up to move cursor, got %d", m.cursor)
	}
}

func TestModelEditSavesVerbatim(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one")))

	m = press(t, m, keyRune('e'))
	if m.mode != modeEditTask || m.board.EditingTaskID() != "task-1" {
		t.Fatalf("expected edit mode on task-1, mode=%v id=%q", m.mode, m.board.EditingTaskID())
	}
	if m.editInput.Value() != "one" {
		t.Fatalf("expected edit box seeded, got %q", m.editInput.Value())
	}
	for range 3 {
		m = press(t, m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	task, _ := m.board.Task("task-1")
	if task.Text != "" {
		t.Fatalf("expected empty edit saved verbatim, got %q", task.Text)
	}
	if m.mode != modeNone || m.board.EditingTaskID() != "" {
		t.Fatal("expected edit mode cleared after save")
	}

	m = press(t, m, keyRune('e'))
	m = typeText(t, m, "  spaced  ")
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	task, _ = m.board.Task("task-1")
	if task.Text != "  spaced  " {
		t.Fatalf("expected untrimmed edit, got %q", task.Text)
	}
}

func TestModelEditEscCancels(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one")))

	m = press(t, m, keyRune('e'))
	m = typeText(t, m, " more")
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	task, _ := m.board.Task("task-1")
	if task.Text != "one" {
		t.Fatalf("expected text unchanged after cancel, got %q", task.Text)
	}
	if m.mode != modeNone || m.board.EditingTaskID() != "" {
		t.Fatal("expected edit mode cleared after cancel")
	}
}

func TestModelMouseControls(t *testing.T) {
	prefs := newFakePrefs()
	m := loadReadyModel(t, NewModel(newSeededBoard(prefs, "one", "two")))

	m = press(t, m, keyRune('e'))
	m = typeText(t, m, "zzz")
	m = press(t, m, tea.MouseClickMsg{X: editGlyphCol, Y: taskTop + 1, Button: tea.MouseLeft})
	if m.board.EditingTaskID() != "task-2" || m.board.EditedText() != "two" {
		t.Fatalf("expected edit moved to task-2, id=%q text=%q", m.board.EditingTaskID(), m.board.EditedText())
	}
	if first, _ := m.board.Task("task-1"); first.Text != "one" {
		t.Fatalf("expected abandoned edit to leave task-1 unchanged, got %q", first.Text)
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	m = applyMsg(t, m, tea.MouseClickMsg{X: checkboxStart + 1, Y: taskTop, Button: tea.MouseLeft})
	if first, _ := m.board.Task("task-1"); !first.Completed {
		t.Fatal("expected checkbox click to complete task-1")
	}

	bounds := filterButtonBounds()
	m = applyMsg(t, m, tea.MouseClickMsg{X: bounds[2][0], Y: filterRow, Button: tea.MouseLeft})
	if m.board.Filter() != domain.FilterPending {
		t.Fatalf("expected pending filter after click, got %q", m.board.Filter())
	}

	start, _ := m.themeToggleBounds()
	m = applyMsg(t, m, tea.MouseClickMsg{X: start, Y: headerRow, Button: tea.MouseLeft})
	if !m.board.DarkMode() || prefs.values["darkMode"] != "true" {
		t.Fatalf("expected theme click to persist dark mode, got %#v", prefs.values)
	}

	m = press(t, m, tea.MouseClickMsg{X: 3, Y: addRow, Button: tea.MouseLeft})
	if m.mode != modeAddTask {
		t.Fatalf("expected add-box click to focus input, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.MouseClickMsg{X: 0, Y: taskTop, Button: tea.MouseLeft})
	if m.mode != modeNone {
		t.Fatal("expected click outside add-box to blur it")
	}
}

func TestModelFilterHidingEditedTaskCancelsEdit(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(newFakePrefs(), "one", "two")))
	bounds := filterButtonBounds()

	m = press(t, m, keyRune('e'))
	m = applyMsg(t, m, tea.MouseClickMsg{X: bounds[2][0], Y: filterRow, Button: tea.MouseLeft})
	if m.mode != modeEditTask || m.board.EditingTaskID() != "task-1" {
		t.Fatalf("expected edit kept while task-1 stays visible, mode=%v id=%q", m.mode, m.board.EditingTaskID())
	}

	m = typeText(t, m, "zzz")
	m = applyMsg(t, m, tea.MouseClickMsg{X: bounds[1][0], Y: filterRow, Button: tea.MouseLeft})
	if m.board.Filter() != domain.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", m.board.Filter())
	}
	if m.mode != modeNone || m.board.EditingTaskID() != "" {
		t.Fatalf("expected hidden edit cancelled, mode=%v id=%q", m.mode, m.board.EditingTaskID())
	}
	if first, _ := m.board.Task("task-1"); first.Text != "one" {
		t.Fatalf("expected cancelled edit to leave text unchanged, got %q", first.Text)
	}

	m = applyMsg(t, m, keyRune('t'))
	if !m.board.DarkMode() {
		t.Fatal("expected normal-mode keys to work after the edit was dropped")
	}
}

func TestModelDefaultConfigKeysKeepAliases(t *testing.T) {
	keys := config.Default("/tmp/taskboard.db").Keys
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one"), WithKeyConfig(KeyConfig{
		AddTask:     keys.AddTask,
		EditTask:    keys.EditTask,
		ToggleTask:  keys.ToggleTask,
		ToggleTheme: keys.ToggleTheme,
		CycleFilter: keys.CycleFilter,
		CopyTask:    keys.CopyTask,
	})))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if first, _ := m.board.Task("task-1"); !first.Completed {
		t.Fatal("expected space to toggle completion")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.board.Filter() != domain.FilterCompleted {
		t.Fatalf("expected tab to cycle filter, got %q", m.board.Filter())
	}
	m = press(t, m, keyRune('n'))
	if m.mode != modeAddTask {
		t.Fatalf("expected n to focus the add-box, got %v", m.mode)
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = press(t, m, keyRune('i'))
	if m.mode != modeAddTask {
		t.Fatalf("expected i to focus the add-box, got %v", m.mode)
	}
}

func TestModelThemeTogglePersists(t *testing.T) {
	prefs := newFakePrefs()
	m := loadReadyModel(t, NewModel(newSeededBoard(prefs)))
	if prefs.values["darkMode"] != "false" {
		t.Fatalf("expected startup to store false, got %#v", prefs.values)
	}

	m = applyMsg(t, m, keyRune('t'))
	if !m.board.DarkMode() || prefs.values["darkMode"] != "true" {
		t.Fatalf("expected dark mode stored, got dark=%t values=%#v", m.board.DarkMode(), prefs.values)
	}
	if !strings.Contains(renderView(m), "☾ dark") {
		t.Fatal("expected dark badge after toggle")
	}
	m = applyMsg(t, m, keyRune('t'))
	if m.board.DarkMode() || prefs.values["darkMode"] != "false" {
		t.Fatalf("expected light mode stored, got %#v", prefs.values)
	}
	if !strings.Contains(renderView(m), "☀ light") {
		t.Fatal("expected light badge after second toggle")
	}
}

func TestModelThemeSaveFailureShowsErrorView(t *testing.T) {
	prefs := newFakePrefs()
	m := loadReadyModel(t, NewModel(newSeededBoard(prefs)))

	prefs.setErr = errors.New("disk full")
	m = applyMsg(t, m, keyRune('t'))
	if m.err == nil {
		t.Fatal("expected save error surfaced")
	}
	if !m.board.DarkMode() {
		t.Fatal("expected in-memory flag to keep toggled value")
	}
	if view := renderView(m); !strings.Contains(view, "disk full") || !strings.Contains(view, "press r to retry") {
		t.Fatalf("expected error view with cause and retry hint, got %q", view)
	}

	m = applyMsg(t, m, keyRune('t'))
	if !m.board.DarkMode() {
		t.Fatal("expected keys other than retry ignored in error view")
	}

	prefs.setErr = nil
	m = applyMsg(t, m, keyRune('r'))
	if m.err != nil {
		t.Fatalf("expected retry to clear error, got %v", m.err)
	}
	if prefs.values["darkMode"] != "true" {
		t.Fatalf("expected retry to store toggled value, got %#v", prefs.values)
	}
}

func TestModelLoadFailureRetry(t *testing.T) {
	prefs := newFakePrefs()
	prefs.getErr = errors.New("locked")
	m := loadReadyModel(t, NewModel(newSeededBoard(prefs)))
	if m.err == nil {
		t.Fatal("expected load error surfaced")
	}

	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit available from error view")
	}

	prefs.getErr = nil
	prefs.values["darkMode"] = "true"
	m = applyMsg(t, m, keyRune('r'))
	if m.err != nil || !m.board.DarkMode() {
		t.Fatalf("expected retry to load stored value, err=%v dark=%t", m.err, m.board.DarkMode())
	}
}

func TestModelCopyTask(t *testing.T) {
	var copied string
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one"), WithClipboard(func(text string) error {
		copied = text
		return nil
	})))

	m = applyMsg(t, m, keyRune('y'))
	if copied != "one" || m.status != "copied: one" {
		t.Fatalf("unexpected copy result copied=%q status=%q", copied, m.status)
	}

	m = loadReadyModel(t, NewModel(newSeededBoard(nil, "one"), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	})))
	m = applyMsg(t, m, keyRune('y'))
	if m.err != nil || !strings.Contains(m.status, "no clipboard") {
		t.Fatalf("expected copy failure in status only, err=%v status=%q", m.err, m.status)
	}
}

func TestModelHelpOverlay(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one")))

	m = applyMsg(t, m, keyRune('?'))
	if m.mode != modeHelp {
		t.Fatalf("expected help mode, got %v", m.mode)
	}
	if renderView(m) == "" {
		t.Fatal("expected help view content")
	}
	overlay := m.renderHelpOverlay(paletteFor(false), 100)
	for _, want := range []string{"toggle theme", "press ? or esc to close"} {
		if !strings.Contains(overlay, want) {
			t.Fatalf("expected %q in help overlay", want)
		}
	}
	m = applyMsg(t, m, keyRune('x'))
	if task, _ := m.board.Task("task-1"); task.Completed {
		t.Fatal("expected actions blocked while help is open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatal("expected esc to close help")
	}
}

func TestModelOptions(t *testing.T) {
	m := loadReadyModel(t, NewModel(newSeededBoard(nil, "one"),
		WithTitle("Chores"),
		WithShowHelp(false),
		WithCharLimit(5),
		WithInitialFilter("pending"),
		WithKeyConfig(KeyConfig{ToggleTheme: "D"}),
		WithLogger(nil),
		nil,
	))

	if m.title != "Chores" || m.showHelp {
		t.Fatalf("unexpected title/help options %q %t", m.title, m.showHelp)
	}
	if m.addInput.CharLimit != 5 || m.editInput.CharLimit != 5 {
		t.Fatal("expected char limit applied to both inputs")
	}
	if m.board.Filter() != domain.FilterPending {
		t.Fatalf("expected initial pending filter, got %q", m.board.Filter())
	}
	if _, ok := m.logger.(nopLogger); !ok {
		t.Fatalf("expected nil logger ignored, got %T", m.logger)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'D', Text: "D"})
	if !m.board.DarkMode() {
		t.Fatal("expected rebound theme key")
	}
	if !strings.Contains(renderView(m), "Chores") {
		t.Fatal("expected custom title rendered")
	}

	bad := NewModel(nil, WithInitialFilter("archived"))
	if bad.board.Filter() != domain.FilterAll {
		t.Fatalf("expected unknown filter ignored, got %q", bad.board.Filter())
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(nil)
	updated, cmd := m.Update(keyRune('q'))
	if updated == nil {
		t.Fatal("expected model return value")
	}
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
}

func TestModelViewStates(t *testing.T) {
	m := NewModel(nil)
	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeCellMotion {
		t.Fatal("expected loading view with mouse enabled")
	}

	m = loadReadyModel(t, m)
	out := renderView(m)
	for _, want := range []string{"Enhanced To-Do List", "☀ light", "All", "Completed", "Pending", "no tasks yet"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestWindowBounds(t *testing.T) {
	cases := []struct {
		total, selected, size int
		start, end            int
	}{
		{0, 0, 5, 0, 0},
		{3, 1, 5, 0, 3},
		{10, 0, 4, 0, 4},
		{10, 9, 4, 6, 10},
		{10, 5, 4, 3, 7},
	}
	for _, tc := range cases {
		start, end := windowBounds(tc.total, tc.selected, tc.size)
		if start != tc.start || end != tc.end {
			t.Fatalf("windowBounds(%d,%d,%d) = %d,%d want %d,%d", tc.total, tc.selected, tc.size, start, end, tc.start, tc.end)
		}
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := fitLines("a\nb\nc", 2); got != "a\n…" {
		t.Fatalf("unexpected fitLines %q", got)
	}
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

// press applies msg and drops the returned command, which for text inputs is
// only cursor blinking.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return out
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, keyRune(r))
	}
	return m
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func renderView(m Model) string {
	return fmt.Sprint(m.View().Content)
}
