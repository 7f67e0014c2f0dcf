package domain

import "strings"

type Task struct {
	ID        string
	Text      string
	Completed bool
}

// NewTask validates creation input. Text is trimmed and must not be empty.
func NewTask(id, text string) (Task, error) {
	id = strings.TrimSpace(id)
	text = strings.TrimSpace(text)
	if id == "" {
		return Task{}, ErrInvalidID
	}
	if text == "" {
		return Task{}, ErrEmptyText
	}
	return Task{
		ID:   id,
		Text: text,
	}, nil
}

// Rename replaces the text verbatim. Unlike NewTask it neither trims nor
// rejects empty input.
func (t *Task) Rename(text string) {
	t.Text = text
}

func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
}
