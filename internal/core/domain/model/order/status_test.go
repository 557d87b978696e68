package order_test

import (
	"testing"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass validation", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending, order.InProgress, order.Completed,
			order.Cancelled, order.QCPass, order.QCFail,
		}
		for _, s := range statuses {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		err := order.StatusUnknown.Validate()
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", order.Pending.String())
	assert.Equal(t, "in_progress", order.InProgress.String())
	assert.Equal(t, "completed", order.Completed.String())
	assert.Equal(t, "cancelled", order.Cancelled.String())
	assert.Equal(t, "qc_pass", order.QCPass.String())
	assert.Equal(t, "qc_fail", order.QCFail.String())
	assert.Equal(t, "unknown", order.StatusUnknown.String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, name := range []string{
			"pending", "in_progress", "completed", "cancelled", "qc_pass", "qc_fail",
		} {
			status, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("archived")
		require.Error(t, err)
	})
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.Completed.IsFinal())
	assert.True(t, order.Cancelled.IsFinal())
	assert.False(t, order.Pending.IsFinal())
	assert.False(t, order.InProgress.IsFinal())
	assert.False(t, order.QCFail.IsFinal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, order.Pending.IsActive())
	assert.True(t, order.InProgress.IsActive())
	assert.True(t, order.QCPass.IsActive())
	assert.True(t, order.QCFail.IsActive())
	assert.False(t, order.Completed.IsActive())
	assert.False(t, order.Cancelled.IsActive())
	assert.False(t, order.StatusUnknown.IsActive())
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("cancels from any active status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.InProgress, order.QCPass, order.QCFail,
		} {
			newStatus, err := s.Cancel()
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, newStatus)
		}
	})

	t.Run("cannot cancel completed or cancelled orders", func(t *testing.T) {
		_, err := order.Completed.Cancel()
		require.Error(t, err)

		_, err = order.Cancelled.Cancel()
		require.Error(t, err)
	})
}
