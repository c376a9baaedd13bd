package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

func TestEncodeDecode(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 123_000_000, time.UTC)
	token, err := Encode(At("abc", ts))
	require.NoError(t, err)

	c, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.True(t, ts.Equal(c.Time()))
	assert.False(t, c.IsZero())
}

func TestDecode_EmptyAndGarbage(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = Decode("%%%not-base64")
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)
}

func TestLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, Limit(0))
	assert.Equal(t, DefaultLimit, Limit(-3))
	assert.Equal(t, 7, Limit(7))
	assert.Equal(t, MaxLimit, Limit(MaxLimit+1))
}
