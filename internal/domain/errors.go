package domain

import "errors"

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrEmptyText     = errors.New("empty task text")
	ErrInvalidFilter = errors.New("invalid filter")
)
