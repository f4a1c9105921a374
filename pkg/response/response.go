package response

import (
	"errors"
)

type Error struct {
	Code   int
	Err    error
	Detail string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

// NewErrorWithDetail carries a human-readable detail string next to the short
// error message, so handlers can return {error, detail} payloads.
func NewErrorWithDetail(code int, err string, detail string) error {
	return &Error{Code: code, Err: errors.New(err), Detail: detail}
}
