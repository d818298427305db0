package domain

import "errors"

var (
	ErrInvalidLocation   = errors.New("invalid location")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrDuplicateID       = errors.New("duplicate review id")
)
