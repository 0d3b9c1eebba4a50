package errs_test

import (
	"errors"
	"testing"

	"certify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("recipientEmail")

		assert.Equal(t, "recipientEmail", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: recipientEmail", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("recipientEmail", cause)

		assert.Equal(t, "recipientEmail", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: recipientEmail (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("targetLanguage")

		assert.Equal(t, "targetLanguage", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: targetLanguage", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsRequiredErrorWithCause("text", errors.New("first\nsecond"))
		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("Processing", "Completed")

	assert.Equal(t, "Processing", err.From)
	assert.Equal(t, "Completed", err.To)
	assert.Equal(t, "invalid transition: Processing -> Completed", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestUnsupportedGlyphError(t *testing.T) {
	err := errs.NewUnsupportedGlyphError('✓')

	assert.Equal(t, '✓', err.Rune)
	assert.Equal(t, "unsupported glyph: '✓' (U+2713)", err.Error())
	assert.Equal(t, errs.ErrUnsupportedGlyph, err.Unwrap())
}

func TestTransportFailureError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewTransportFailureError("send email", cause)

		assert.Equal(t, "send email", err.Op)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "transport failure: send email (cause: connection refused)", err.Error())
		assert.Equal(t, errs.ErrTransportFailure, err.Unwrap())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewTransportFailureError("fetch page image", nil)
		assert.Equal(t, "transport failure: fetch page image", err.Error())
	})
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("order", "abc", 7)

	assert.Equal(t, "order", err.ParamName)
	assert.Equal(t, "abc", err.ID)
	assert.Equal(t, 7, err.Version)
	assert.Equal(t, "version conflict: param is: order, ID is: abc, version is: 7", err.Error())
	assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrUnsupportedGlyph)
		require.Error(t, errs.ErrTransportFailure)
		require.Error(t, errs.ErrVersionConflict)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "unsupported glyph", errs.ErrUnsupportedGlyph.Error())
		assert.Equal(t, "transport failure", errs.ErrTransportFailure.Error())
		assert.Equal(t, "version conflict", errs.ErrVersionConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("email"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsRequiredError("name"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewInvalidTransitionError("Idle", "Ready"), errs.ErrInvalidTransition)
		require.ErrorIs(t, errs.NewUnsupportedGlyphError('x'), errs.ErrUnsupportedGlyph)
		require.ErrorIs(t, errs.NewTransportFailureError("op", nil), errs.ErrTransportFailure)
		require.ErrorIs(t, errs.NewVersionConflictError("order", "id", 1), errs.ErrVersionConflict)
	})
}
