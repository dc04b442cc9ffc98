package errs

import "fmt"

// Machine-readable error codes. Every error produced by the crud and storage
// layers carries one of these, so the http layer can map it to a status code
// without inspecting message text.
const (
	// EINVALID means the caller supplied data that violates a business rule.
	EINVALID = "invalid"
	// ENOTFOUND means a referenced id does not exist in the relevant store.
	ENOTFOUND = "not_found"
	// EINTERNAL means the operation is logically invalid given current state,
	// treated as a server-side failure rather than a client input error.
	EINTERNAL = "internal"
)

// Error is the application error type. Code is for machines, Message for people.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("kinograph error: code=%s message=%s", e.Code, e.Message)
}

// Errorf builds an *Error with the given code and a formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code of an error. A nil error has no code, and any
// error that isn't an *Error counts as internal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the human-readable message of an error. Non-*Error
// values get a generic message so internal details don't leak to clients.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	return "An internal error has occurred."
}
