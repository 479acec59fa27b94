package songs

import (
	"context"
	"errors"
	"net/http"
)

// internalFailureMessage is returned for every failure without its own status.
const internalFailureMessage = "failed to load song list"

// StatusError is a failure carrying the HTTP status it should surface as.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ErrUnauthenticated is returned when no caller identity is present.
var ErrUnauthenticated = &StatusError{
	Status:  http.StatusUnauthorized,
	Message: "authentication required",
}

// AsStatusError passes a failure that already carries a status through
// unchanged and wraps anything else as an internal failure.
func AsStatusError(err error) *StatusError {
	if err == nil {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}
	return &StatusError{
		Status:  http.StatusInternalServerError,
		Message: internalFailureMessage,
		Err:     err,
	}
}

// Caller is the validated identity supplied by the authentication layer.
type Caller struct {
	UserID string
}

type callerKey struct{}

// WithCaller returns a context carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored in ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || c.UserID == "" {
		return Caller{}, false
	}
	return c, true
}
