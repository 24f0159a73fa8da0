package internal

import "errors"

// ErrNotFound is returned when an operation targets an id that is not in
// the store.
var ErrNotFound = errors.New("not found")

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
