package order_test

import (
	"testing"

	"certify/internal/core/domain/model/order"
	"certify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessingStatus_Validate(t *testing.T) {
	valid := []order.ProcessingStatus{
		order.ProcessingIdle,
		order.ProcessingInProgress,
		order.ProcessingReady,
		order.ProcessingFailed,
	}
	for _, s := range valid {
		require.NoError(t, s.Validate())
	}

	require.Error(t, order.ProcessingUnknown.Validate())
	require.Error(t, order.ProcessingStatus(99).Validate())
}

func TestProcessingStatus_String(t *testing.T) {
	assert.Equal(t, "Idle", order.ProcessingIdle.String())
	assert.Equal(t, "Processing", order.ProcessingInProgress.String())
	assert.Equal(t, "Ready", order.ProcessingReady.String())
	assert.Equal(t, "Failed", order.ProcessingFailed.String())
	assert.Equal(t, "Unknown", order.ProcessingUnknown.String())
}

func TestProcessingStatus_CanTrigger(t *testing.T) {
	assert.True(t, order.ProcessingIdle.CanTrigger())
	assert.True(t, order.ProcessingFailed.CanTrigger())
	assert.False(t, order.ProcessingInProgress.CanTrigger())
	assert.False(t, order.ProcessingReady.CanTrigger())
}

func TestProcessingStatus_Start(t *testing.T) {
	t.Run("idle starts", func(t *testing.T) {
		s, err := order.ProcessingIdle.Start()
		require.NoError(t, err)
		assert.Equal(t, order.ProcessingInProgress, s)
	})

	t.Run("failed restarts", func(t *testing.T) {
		s, err := order.ProcessingFailed.Start()
		require.NoError(t, err)
		assert.Equal(t, order.ProcessingInProgress, s)
	})

	t.Run("in progress and ready are rejected", func(t *testing.T) {
		_, err := order.ProcessingInProgress.Start()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = order.ProcessingReady.Start()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestProcessingStatus_MarkReady(t *testing.T) {
	for _, from := range []order.ProcessingStatus{
		order.ProcessingIdle,
		order.ProcessingInProgress,
		order.ProcessingFailed,
		order.ProcessingReady,
	} {
		t.Run("allowed from "+from.String(), func(t *testing.T) {
			s, err := from.MarkReady()
			require.NoError(t, err)
			assert.Equal(t, order.ProcessingReady, s)
		})
	}

	t.Run("invalid value is rejected", func(t *testing.T) {
		_, err := order.ProcessingUnknown.MarkReady()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
