// Package errors defines the stable error kinds surfaced by the
// domain services. Handlers map each kind to an HTTP status; nothing
// beyond code and message ever crosses the service boundary.
package errors

// DomainError is an error with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of e carrying a more specific message.
// The code, which callers match on, is preserved.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message}
}

// Is lets errors.Is match any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
