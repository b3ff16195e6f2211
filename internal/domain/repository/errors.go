package repository

import "errors"

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("duplicate key")

// ErrLeaseLost is returned when a job's lease expired and another sweeper claimed it.
var ErrLeaseLost = errors.New("job lease lost")
