package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrLocationConflict    = errors.New("location already in use")
	ErrLocationsExhausted  = errors.New("no free storage location left")
	ErrInvalidLocationCode = errors.New("invalid location code")
	ErrMissingRecipient    = errors.New("missing sms recipient or message")
)
