package tui

import (
	"strings"

	"github.com/evanschultz/taskboard/internal/domain"
)

// KeyConfig holds rebindable keys. Blank fields keep the defaults.
type KeyConfig struct {
	AddTask     string
	EditTask    string
	ToggleTask  string
	ToggleTheme string
	CycleFilter string
	CopyTask    string
}

// Logger receives model events. *log.Logger and the CLI runtime logger satisfy it.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type Option func(*Model)

func WithTitle(title string) Option {
	return func(m *Model) {
		if title = strings.TrimSpace(title); title != "" {
			m.title = title
		}
	}
}

func WithCharLimit(limit int) Option {
	return func(m *Model) {
		if limit < 0 {
			return
		}
		m.addInput.CharLimit = limit
		m.editInput.CharLimit = limit
	}
}

func WithShowHelp(show bool) Option {
	return func(m *Model) {
		m.showHelp = show
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyKeyConfig(cfg)
	}
}

// WithInitialFilter sets the filter applied before the first render. Unknown
// values are ignored.
func WithInitialFilter(raw string) Option {
	return func(m *Model) {
		filter, err := domain.ParseFilter(raw)
		if err != nil {
			return
		}
		_ = m.board.SetFilter(filter)
	}
}

func WithLogger(logger Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClipboard replaces the clipboard writer used by the copy action.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// nopLogger discards every event.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
