package models

import "errors"

// Error taxonomy for the request path. Controllers map these onto HTTP
// statuses: ErrInvalidInput -> 400, ErrNotFound -> 404, anything else -> 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// RequestError carries a caller-facing message while matching one of the
// taxonomy sentinels through errors.Is.
type RequestError struct {
	Kind error
	Msg  string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Is(target error) bool { return target == e.Kind }

// Invalid builds an ErrInvalidInput with a caller-facing message.
func Invalid(msg string) error {
	return &RequestError{Kind: ErrInvalidInput, Msg: msg}
}

// NotFound builds an ErrNotFound with a caller-facing message.
func NotFound(msg string) error {
	return &RequestError{Kind: ErrNotFound, Msg: msg}
}
