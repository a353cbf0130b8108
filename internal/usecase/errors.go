package usecase

import "fmt"

// Kind classifies a business error so the transport layer can pick a
// status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindNotFound
	KindPermission
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func authenticationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func permissionf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}
