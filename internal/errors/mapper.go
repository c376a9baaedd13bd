// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "match.muzz"

// Map converts domain/repo/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
// Every mapped status carries an ErrorInfo detail with a stable reason code.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrDuplicateSwipe):
		return withReason(codes.AlreadyExists, "DUPLICATE_SWIPE", err.Error())
	case errors.Is(err, ErrForbidden):
		return withReason(codes.PermissionDenied, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrInvalidMessage):
		return withReason(codes.InvalidArgument, "INVALID_MESSAGE", err.Error())
	case errors.Is(err, ErrInvalidArgument):
		return withReason(codes.InvalidArgument, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, ErrNotFound):
		return withReason(codes.NotFound, "NOT_FOUND", "record not found")
	case errors.Is(err, ErrUnauthenticated):
		return withReason(codes.Unauthenticated, "UNAUTHENTICATED", "authentication required")
	case errors.Is(err, ErrTransientStore):
		return withReason(codes.Unavailable, "STORE_UNAVAILABLE", "store temporarily unavailable, retry")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return withReason(codes.InvalidArgument, "INVALID_ARGUMENT", msg)
}

// Reason extracts the ErrorInfo reason from a status error, if any.
func Reason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

func withReason(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: errorDomain,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
