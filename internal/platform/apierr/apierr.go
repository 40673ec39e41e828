// Package apierr attaches an HTTP status and a stable machine-readable code
// to an error so transport code can build a response without matching on
// error strings.
package apierr

import "fmt"

type Error struct {
	Status int
	Code   string
	Err    error
}

// Error reports the wrapped error when there is one; the code and status are
// fallbacks so a half-constructed value still prints something useful.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	case e.Status != 0:
		return fmt.Sprintf("http %d", e.Status)
	default:
		return "api error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
