package entity

import "errors"

// Sentinel errors shared by services and handlers. Services wrap these with
// context; handlers branch with errors.Is and map them to status codes.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("already exists")
)
