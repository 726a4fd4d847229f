package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/sagascape/internal/apperr"
)

func TestError(t *testing.T) {
	t.Run("message without cause", func(t *testing.T) {
		err := apperr.New(apperr.CodeInvalidArgument, "bad point %d", 3)
		assert.Equal(t, "INVALID_ARGUMENT: bad point 3", err.Error())
	})
	t.Run("message with cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := apperr.Wrap(apperr.CodeInternal, cause, "render")
		assert.Equal(t, "INTERNAL_ERROR: render: boom", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

func TestIs(t *testing.T) {
	inner := apperr.New(apperr.CodeNotFound, "easing %q", "bounce")
	outer := apperr.Wrap(apperr.CodeInvalidConfig, inner, "scene")
	wrapped := fmt.Errorf("direct: %w", outer)

	assert.True(t, apperr.Is(wrapped, apperr.CodeInvalidConfig))
	assert.True(t, apperr.Is(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.Is(wrapped, apperr.CodeValidationFailure))
	assert.False(t, apperr.Is(errors.New("plain"), apperr.CodeNotFound))
	assert.Equal(t, apperr.CodeInvalidConfig, apperr.GetCode(wrapped))
	assert.Equal(t, apperr.Code(""), apperr.GetCode(errors.New("plain")))
}
