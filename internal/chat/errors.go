package chat

import "errors"

var ErrUsernameTaken = errors.New("username already taken in room")

type ErrorCode string

const (
	ErrorCodeInvalidUsername ErrorCode = "invalid_username"
	ErrorCodeUsernameTaken   ErrorCode = "username_taken"
)

// Error is surfaced to the initiating connection only. It is never fatal and
// carries no server state.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}
