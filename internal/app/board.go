package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/evanschultz/taskboard/internal/domain"
)

// DefaultThemeKey is the preference key holding the dark-mode flag.
const DefaultThemeKey = "darkMode"

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() string

// BoardConfig holds configuration for board.
type BoardConfig struct {
	ThemeKey string
	// DefaultDark applies only when the store has no value for ThemeKey.
	DefaultDark bool
}

// TaskCounts summarizes the collection for status rendering.
type TaskCounts struct {
	Total     int
	Completed int
	Pending   int
}

// Board owns the task collection, the transient editor state and the theme
// flag. It is not safe for concurrent use.
type Board struct {
	prefs       PreferenceStore
	idGen       IDGenerator
	themeKey    string
	defaultDark bool

	tasks         []domain.Task
	newTaskInput  string
	editingTaskID string
	editedText    string
	filter        domain.Filter
	darkMode      bool
}

// NewBoard constructs an empty board. A nil store keeps the theme flag in
// memory only; a nil idGen falls back to sequential ids.
func NewBoard(prefs PreferenceStore, idGen IDGenerator, cfg BoardConfig) *Board {
	if idGen == nil {
		idGen = SequentialIDs("task")
	}
	themeKey := strings.TrimSpace(cfg.ThemeKey)
	if themeKey == "" {
		themeKey = DefaultThemeKey
	}
	return &Board{
		prefs:       prefs,
		idGen:       idGen,
		themeKey:    themeKey,
		defaultDark: cfg.DefaultDark,
		tasks:       []domain.Task{},
		filter:      domain.FilterAll,
	}
}

// SequentialIDs returns a generator producing prefix-1, prefix-2, ...
func SequentialIDs(prefix string) IDGenerator {
	next := 0
	return func() string {
		next++
		return prefix + "-" + strconv.Itoa(next)
	}
}

// AddTask appends a pending task with the trimmed text and clears the add-box.
// Empty text after trimming leaves the board untouched and reports false.
func (b *Board) AddTask(raw string) (domain.Task, bool) {
	if strings.TrimSpace(raw) == "" {
		return domain.Task{}, false
	}
	task, err := domain.NewTask(b.idGen(), raw)
	if err != nil {
		return domain.Task{}, false
	}
	b.tasks = append(b.tasks, task)
	b.newTaskInput = ""
	return task, true
}

// SetNewTaskInput binds the add-box text.
func (b *Board) SetNewTaskInput(text string) {
	b.newTaskInput = text
}

// NewTaskInput returns the add-box text.
func (b *Board) NewTaskInput() string {
	return b.newTaskInput
}

// StartEdit puts one task in edit mode and seeds the scratch buffer. Any
// unsaved edit on another task is dropped.
func (b *Board) StartEdit(id, currentText string) {
	b.editingTaskID = id
	b.editedText = currentText
}

// SetEditedText binds the inline edit box.
func (b *Board) SetEditedText(text string) {
	b.editedText = text
}

// EditedText returns the scratch edit buffer.
func (b *Board) EditedText() string {
	return b.editedText
}

// EditingTaskID returns the task in edit mode, or "" when none is.
func (b *Board) EditingTaskID() string {
	return b.editingTaskID
}

// IsEditing reports whether id is the task in edit mode.
func (b *Board) IsEditing(id string) bool {
	return b.editingTaskID != "" && b.editingTaskID == id
}

// SaveEdit writes the scratch buffer to the task verbatim and leaves edit
// mode. No trimming or empty check is applied here.
func (b *Board) SaveEdit(id string) error {
	b.editingTaskID = ""
	idx := b.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("save edit %q: %w", id, ErrNotFound)
	}
	b.tasks[idx].Rename(b.editedText)
	return nil
}

// CancelEdit leaves edit mode without touching the task.
func (b *Board) CancelEdit() {
	b.editingTaskID = ""
	b.editedText = ""
}

// ToggleCompletion flips the completed flag of one task.
func (b *Board) ToggleCompletion(id string) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("toggle completion %q: %w", id, ErrNotFound)
	}
	b.tasks[idx].ToggleCompleted()
	return nil
}

// SetFilter changes the active view filter.
func (b *Board) SetFilter(kind domain.Filter) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFilter, kind)
	}
	b.filter = kind
	return nil
}

// Filter returns the active view filter.
func (b *Board) Filter() domain.Filter {
	return b.filter
}

// VisibleTasks projects the collection through the active filter. It is
// recomputed on every call.
func (b *Board) VisibleTasks() []domain.Task {
	return b.filter.Apply(b.tasks)
}

// Tasks returns a copy of the full collection in insertion order.
func (b *Board) Tasks() []domain.Task {
	return append([]domain.Task(nil), b.tasks...)
}

// Task returns one task by id.
func (b *Board) Task(id string) (domain.Task, bool) {
	idx := b.indexOf(id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return b.tasks[idx], true
}

func (b *Board) Counts() TaskCounts {
	counts := TaskCounts{Total: len(b.tasks)}
	for _, task := range b.tasks {
		if task.Completed {
			counts.Completed++
		} else {
			counts.Pending++
		}
	}
	return counts
}

// DarkMode returns the in-memory theme flag.
func (b *Board) DarkMode() bool {
	return b.darkMode
}

// ThemeKey returns the preference key used for the theme flag.
func (b *Board) ThemeKey() string {
	return b.themeKey
}

// LoadPreference reads the persisted theme flag once and writes the resulting
// value back, matching the save-after-every-change rule.
func (b *Board) LoadPreference(ctx context.Context) error {
	dark := b.defaultDark
	if b.prefs != nil {
		raw, ok, err := b.prefs.GetPreference(ctx, b.themeKey)
		if err != nil {
			return fmt.Errorf("load %s preference: %w", b.themeKey, err)
		}
		if ok {
			dark = raw == "true"
		}
	}
	b.darkMode = dark
	return b.savePreference(ctx)
}

// ToggleDarkMode flips the theme flag and persists it. The in-memory flag
// keeps the new value even when the save fails.
func (b *Board) ToggleDarkMode(ctx context.Context) error {
	b.darkMode = !b.darkMode
	return b.savePreference(ctx)
}

// SetDarkMode sets the theme flag and persists it.
func (b *Board) SetDarkMode(ctx context.Context, dark bool) error {
	b.darkMode = dark
	return b.savePreference(ctx)
}

func (b *Board) savePreference(ctx context.Context) error {
	if b.prefs == nil {
		return nil
	}
	if err := b.prefs.SetPreference(ctx, b.themeKey, strconv.FormatBool(b.darkMode)); err != nil {
		return fmt.Errorf("save %s preference: %w", b.themeKey, err)
	}
	return nil
}

func (b *Board) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for idx := range b.tasks {
		if b.tasks[idx].ID == id {
			return idx
		}
	}
	return -1
}
