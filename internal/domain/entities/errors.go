package entities

import (
	"errors"
	"strconv"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnreachable  = errors.New("api unreachable")
	ErrConflict     = errors.New("id already taken")
)

func itoa(v int) string {
	return strconv.Itoa(v)
}
