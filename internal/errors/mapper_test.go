package errors_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

func TestMap_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   codes.Code
		reason string
	}{
		{"duplicate swipe", svcErr.ErrDuplicateSwipe, codes.AlreadyExists, "DUPLICATE_SWIPE"},
		{"forbidden wrapped", fmt.Errorf("append: %w", svcErr.ErrForbidden), codes.PermissionDenied, "FORBIDDEN"},
		{"invalid message", svcErr.ErrInvalidMessage, codes.InvalidArgument, "INVALID_MESSAGE"},
		{"invalid argument", svcErr.Invalid("bad id %q", "x"), codes.InvalidArgument, "INVALID_ARGUMENT"},
		{"not found", svcErr.FromStore(gorm.ErrRecordNotFound), codes.NotFound, "NOT_FOUND"},
		{"transient", svcErr.FromStore(driver.ErrBadConn), codes.Unavailable, "STORE_UNAVAILABLE"},
		{"unauthenticated", svcErr.ErrUnauthenticated, codes.Unauthenticated, "UNAUTHENTICATED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := svcErr.Map(tc.err)
			assert.Equal(t, tc.code, status.Code(mapped))
			assert.Equal(t, tc.reason, svcErr.Reason(mapped))
		})
	}
}

func TestMap_ContextAndFallback(t *testing.T) {
	assert.Nil(t, svcErr.Map(nil))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(svcErr.Map(context.DeadlineExceeded)))
	assert.Equal(t, codes.Canceled, status.Code(svcErr.Map(context.Canceled)))
	assert.Equal(t, codes.Internal, status.Code(svcErr.Map(errors.New("boom"))))

	// already a status → untouched
	st := status.Error(codes.ResourceExhausted, "slow down")
	assert.Equal(t, st, svcErr.Map(st))
}

func TestFromStore(t *testing.T) {
	assert.NoError(t, svcErr.FromStore(nil))
	assert.True(t, svcErr.IsTransient(svcErr.FromStore(driver.ErrBadConn)))
	assert.False(t, svcErr.IsTransient(svcErr.FromStore(errors.New("syntax error"))))
	assert.ErrorIs(t, svcErr.FromStore(context.Canceled), context.Canceled)

	cause := errors.New("constraint failed")
	assert.ErrorIs(t, svcErr.FromStore(cause), cause)
}
