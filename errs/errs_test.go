package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidArgumentIs(t *testing.T) {
	err := InvalidArgument("bad letter %d", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, "bad letter 3", err.Error())
}

func TestInvalidStateIs(t *testing.T) {
	err := InvalidState("already enumerated")
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, "already enumerated", err.Error())
}

func TestResourceExhaustedIs(t *testing.T) {
	err := ResourceExhausted("pool exhausted")
	assert.True(t, errors.Is(err, ErrResourceExhausted))
}

func TestCancelledIs(t *testing.T) {
	err := Cancelled("stopped early")
	assert.True(t, errors.Is(err, ErrCancelled))
}

func TestWrapWithoutArgs(t *testing.T) {
	err := InvalidArgument("no format verbs here")
	assert.Equal(t, "no format verbs here", err.Error())
}
