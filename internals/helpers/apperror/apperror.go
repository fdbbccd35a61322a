// file: internals/helpers/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind is the error taxonomy the whole service branches on.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindStore
	KindNotFound
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, nil for pure domain errors
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Msg: msg}
}

// Store wraps an underlying read/write failure; op names the operation
// (e.g. "createSection") so logs can say which step died.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Msg: "store failure on " + op, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// StatusOf maps the taxonomy onto HTTP statuses.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindStore:
		return fiber.StatusInternalServerError
	default:
		if fe, ok := err.(*fiber.Error); ok {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
}
