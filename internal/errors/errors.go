package errors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"
)

// Domain errors shared by the matching, chat and realtime layers.
var (
	ErrDuplicateSwipe   = errors.New("already swiped on this user")
	ErrForbidden        = errors.New("not allowed to access this resource")
	ErrInvalidMessage   = errors.New("message payload does not match its kind")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrTransientStore   = errors.New("store temporarily unavailable")
	errUnknownStoreFail = errors.New("store failure")
)

// Invalid wraps ErrInvalidArgument with a human readable reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// FromStore classifies an error coming out of gorm / the SQL driver.
//
//   - gorm.ErrRecordNotFound → ErrNotFound
//   - broken connections, network errors → ErrTransientStore (retryable)
//   - context errors are returned untouched
//
// Anything else is wrapped so the caller still sees the original cause.
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	default:
		return fmt.Errorf("%w: %w", errUnknownStoreFail, err)
	}
}

// IsTransient reports whether retrying the whole operation is safe and useful.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientStore)
}
