package domain

import "errors"

// Failure kinds. Match them with errors.Is; the concrete value returned by the
// session manager and the form layer is an *AuthError.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrTransportFailure     = errors.New("auth service unreachable")
	ErrMalformedSession     = errors.New("malformed persisted session")
	ErrValidation           = errors.New("validation failed")
	ErrSessionSuperseded    = errors.New("session changed while the request was in flight")
	ErrPersistence          = errors.New("session could not be persisted")
)

// Errors raised by the reference auth service.
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// FieldError is a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AuthError is the typed failure result handed back to the form layer.
// Message is safe to show to the user; Cause is for logs only.
type AuthError struct {
	Kind    error
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *AuthError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewAuthError builds an AuthError of the given kind.
func NewAuthError(kind error, msg string, cause error) *AuthError {
	return &AuthError{Kind: kind, Message: msg, Cause: cause}
}

// AsAuthError extracts the *AuthError from err, if any.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
