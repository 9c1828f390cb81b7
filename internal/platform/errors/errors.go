package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNoActiveTimer = errors.New("no active timer")
	ErrCorruptRecord = errors.New("corrupt record")
)
