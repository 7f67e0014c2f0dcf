package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// TestParseBindingKeys verifies key parsing behavior for configured overrides.
func TestParseBindingKeys(t *testing.T) {
	t.Run("space aliases", func(t *testing.T) {
		keys, help := parseBindingKeys("space", "x")
		if len(keys) != 2 || keys[0] != " " || keys[1] != "space" {
			t.Fatalf("unexpected parsed space keys %#v", keys)
		}
		if help != "space" {
			t.Fatalf("unexpected space help text %q", help)
		}
	})

	t.Run("uppercase rune includes shift alias", func(t *testing.T) {
		keys, help := parseBindingKeys("T", "t")
		if len(keys) != 2 || keys[0] != "T" || keys[1] != "shift+t" {
			t.Fatalf("unexpected uppercase parsed keys %#v", keys)
		}
		if help != "T" {
			t.Fatalf("unexpected uppercase help text %q", help)
		}
	})

	t.Run("multi rune lowercases key matcher", func(t *testing.T) {
		keys, help := parseBindingKeys("Ctrl+T", "t")
		if len(keys) != 1 || keys[0] != "ctrl+t" {
			t.Fatalf("unexpected multi-rune parsed keys %#v", keys)
		}
		if help != "Ctrl+T" {
			t.Fatalf("unexpected multi-rune help text %q", help)
		}
	})

	t.Run("blank uses fallback", func(t *testing.T) {
		keys, help := parseBindingKeys("", "x")
		if len(keys) != 1 || keys[0] != "x" {
			t.Fatalf("unexpected fallback parsed keys %#v", keys)
		}
		if help != "x" {
			t.Fatalf("unexpected fallback help text %q", help)
		}
	})
}

// TestConfigureBinding verifies binding override application behavior.
func TestConfigureBinding(t *testing.T) {
	b := key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "old"))
	configureBinding(&b, "d", "t", "toggle theme")
	keys := b.Keys()
	if len(keys) != 1 || keys[0] != "d" {
		t.Fatalf("unexpected configured keys %#v", keys)
	}
	if b.Help().Key != "d" || b.Help().Desc != "toggle theme" {
		t.Fatalf("unexpected configured help %#v", b.Help())
	}
}

// TestApplyKeyConfigKeepsUnsetDefaults verifies partial overrides.
func TestApplyKeyConfigKeepsUnsetDefaults(t *testing.T) {
	k := newKeyMap()
	k.applyKeyConfig(KeyConfig{ToggleTheme: "D"})
	if !key.Matches(tea.KeyPressMsg{Code: 'D', Text: "D"}, k.toggleTheme) {
		t.Fatal("expected D to toggle theme")
	}
	if key.Matches(tea.KeyPressMsg{Code: 't', Text: "t"}, k.toggleTheme) {
		t.Fatal("expected t unbound from theme toggle")
	}
	if !key.Matches(tea.KeyPressMsg{Code: 'e', Text: "e"}, k.editTask) {
		t.Fatal("expected edit binding untouched")
	}
}

// TestKeyMapHelpGroups verifies help rendering covers every control.
func TestKeyMapHelpGroups(t *testing.T) {
	k := newKeyMap()
	if len(k.ShortHelp()) == 0 {
		t.Fatal("expected short help bindings")
	}
	total := 0
	for _, group := range k.FullHelp() {
		total += len(group)
	}
	if total != 15 {
		t.Fatalf("expected 15 bindings in full help, got %d", total)
	}
}

// TestApplyKeyConfigDefaultPrimaryKeepsAliases verifies default values leave aliases bound.
func TestApplyKeyConfigDefaultPrimaryKeepsAliases(t *testing.T) {
	k := newKeyMap()
	k.applyKeyConfig(KeyConfig{AddTask: "a", ToggleTask: "x", CycleFilter: "f"})
	if !key.Matches(tea.KeyPressMsg{Code: 'n', Text: "n"}, k.addTask) {
		t.Fatal("expected n kept on add task")
	}
	if !key.Matches(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, k.toggleTask) {
		t.Fatal("expected space kept on toggle task")
	}
	if !key.Matches(tea.KeyPressMsg{Code: tea.KeyTab}, k.cycleFilter) {
		t.Fatal("expected tab kept on cycle filter")
	}

	k.applyKeyConfig(KeyConfig{CycleFilter: "c"})
	if key.Matches(tea.KeyPressMsg{Code: tea.KeyTab}, k.cycleFilter) {
		t.Fatal("expected tab dropped once cycle filter is rebound")
	}
}
