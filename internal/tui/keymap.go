package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit          key.Binding
	toggleHelp    key.Binding
	moveUp        key.Binding
	moveDown      key.Binding
	addTask       key.Binding
	editTask      key.Binding
	toggleTask    key.Binding
	filterAll     key.Binding
	filterDone    key.Binding
	filterPending key.Binding
	cycleFilter   key.Binding
	toggleTheme   key.Binding
	copyTask      key.Binding
	submit        key.Binding
	cancel        key.Binding
	retry         key.Binding
	interrupt     key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveUp:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		addTask:       key.NewBinding(key.WithKeys("a", "n", "i"), key.WithHelp("a", "add task")),
		editTask:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		toggleTask:    key.NewBinding(key.WithKeys("x", " ", "space"), key.WithHelp("x/space", "toggle done")),
		filterAll:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		filterDone:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		filterPending: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "pending")),
		cycleFilter:   key.NewBinding(key.WithKeys("f", "tab"), key.WithHelp("f/tab", "next filter")),
		toggleTheme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		copyTask:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		retry:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		interrupt:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// applyKeyConfig rebinds the configurable actions. Blank values and values
// equal to the default primary key keep the default bindings and aliases.
func (k *keyMap) applyKeyConfig(cfg KeyConfig) {
	rebindIfChanged(&k.addTask, cfg.AddTask, "a", "add task")
	rebindIfChanged(&k.editTask, cfg.EditTask, "e", "edit task")
	rebindIfChanged(&k.toggleTask, cfg.ToggleTask, "x", "toggle done")
	rebindIfChanged(&k.toggleTheme, cfg.ToggleTheme, "t", "toggle theme")
	rebindIfChanged(&k.cycleFilter, cfg.CycleFilter, "f", "next filter")
	rebindIfChanged(&k.copyTask, cfg.CopyTask, "y", "copy text")
}

// rebindIfChanged calls configureBinding unless raw names the default key.
func rebindIfChanged(b *key.Binding, raw, fallback, desc string) {
	if value := strings.TrimSpace(raw); raw != " " && (value == "" || value == fallback) {
		return
	}
	configureBinding(b, raw, fallback, desc)
}

// configureBinding replaces a binding's keys and help from one configured value.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys maps a configured key to matcher strings and a help label.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if raw == " " {
		value = "space"
	}
	if value == "" {
		value = strings.TrimSpace(fallback)
	}
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + string(unicode.ToLower(r))}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.editTask, k.toggleTask, k.cycleFilter, k.toggleTheme, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addTask, k.editTask, k.toggleTask, k.copyTask, k.submit, k.cancel},
		{k.moveUp, k.moveDown, k.filterAll, k.filterDone, k.filterPending, k.cycleFilter},
		{k.toggleTheme, k.toggleHelp, k.quit},
	}
}
