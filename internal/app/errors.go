package app

import "errors"

// ErrNotFound reports an operation on a task id the board does not hold.
var ErrNotFound = errors.New("not found")
