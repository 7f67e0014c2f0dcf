package domain

import (
	"fmt"
	"slices"
	"strings"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending}

var filterLabels = map[Filter]string{
	FilterAll:       "All",
	FilterCompleted: "Completed",
	FilterPending:   "Pending",
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FilterAll, nil
	}
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

func (f Filter) Valid() bool {
	return slices.Contains(Filters, f)
}

func (f Filter) Label() string {
	if label, ok := filterLabels[f]; ok {
		return label
	}
	return string(f)
}

// Matches reports whether a task is visible under the filter.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Next returns the following filter in display order, wrapping around.
func (f Filter) Next() Filter {
	idx := slices.Index(Filters, f)
	if idx < 0 {
		return FilterAll
	}
	return Filters[(idx+1)%len(Filters)]
}

// Apply keeps the tasks matching f in their original order.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
