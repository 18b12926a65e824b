package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateGenre = errors.New("genre already exists")
	ErrIDMismatch     = errors.New("path and body identifiers do not match")
	ErrNotPermitted   = errors.New("operation not permitted for this user")
)
