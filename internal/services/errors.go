package services

import "errors"

var (
	ErrNotFound     = errors.New("[service]: link not found")
	ErrConflict     = errors.New("[service]: short identifier already taken")
	ErrUnauthorized = errors.New("[service]: invalid edit token")
	ErrExhausted    = errors.New("[service]: failed to allocate short identifier")
	ErrUnknown      = errors.New("[service]: unknown error")
)
