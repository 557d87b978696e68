package order_test

import (
	"testing"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() order.Spec {
	deadline := time.Now().AddDate(0, 1, 0)
	return order.Spec{
		ClientName:  "Royal Jewellers",
		ClientPhone: "+91 98765 43210",
		ClientEmail: "orders@royaljewellers.example",
		ProductName: "Diamond Necklace",
		Material:    order.Gold,
		Purity:      order.Purity22K,
		Weight:      decimal.NewFromInt(45),
		Quantity:    1,
		Deadline:    &deadline,
		Notes:       "engrave initials",
	}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "JF-2026-001", validSpec())
	require.NoError(t, err)
	return o
}

// advanceTo walks a fresh order forward until it reaches the wanted stage.
func advanceTo(t *testing.T, o *order.Order, stage order.Stage) {
	t.Helper()
	for o.Stage() != stage {
		require.NoError(t, o.Advance(order.QCOutcomeNone))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order at the first stage", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Design, o.Stage())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, int64(0), o.Version())
		assert.Equal(t, "JF-2026-001", o.OrderNo())
		assert.Empty(t, o.AssignedWorker())
		assert.True(t, o.IsActive())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, "JF-2026-001", validSpec())

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail without order number", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "", validSpec())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should report the first failing field", func(t *testing.T) {
		spec := validSpec()
		spec.ClientName = ""
		spec.ProductName = ""

		_, err := order.NewOrder(kernel.NewUUID(), "JF-2026-001", spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "clientName")
		assert.NotContains(t, err.Error(), "productName")
	})

	t.Run("should require purity for gold", func(t *testing.T) {
		spec := validSpec()
		spec.Purity = order.PurityNone

		_, err := order.NewOrder(kernel.NewUUID(), "JF-2026-001", spec)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "purity")
	})

	t.Run("should reject purity for silver", func(t *testing.T) {
		spec := validSpec()
		spec.Material = order.Silver
		spec.Purity = order.Purity22K

		_, err := order.NewOrder(kernel.NewUUID(), "JF-2026-001", spec)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should accept silver without purity", func(t *testing.T) {
		spec := validSpec()
		spec.Material = order.Silver
		spec.Purity = order.PurityNone

		o, err := order.NewOrder(kernel.NewUUID(), "JF-2026-002", spec)

		require.NoError(t, err)
		assert.Equal(t, order.Silver, o.Material())
		assert.Equal(t, order.PurityNone, o.Purity())
	})

	t.Run("should reject non-positive weight", func(t *testing.T) {
		spec := validSpec()
		spec.Weight = decimal.Zero

		_, err := order.NewOrder(kernel.NewUUID(), "JF-2026-001", spec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weight")

		spec.Weight = decimal.NewFromInt(-5)
		_, err = order.NewOrder(kernel.NewUUID(), "JF-2026-001", spec)
		require.Error(t, err)
	})

	t.Run("should reject quantity below one", func(t *testing.T) {
		spec := validSpec()
		spec.Quantity = 0

		_, err := order.NewOrder(kernel.NewUUID(), "JF-2026-001", spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("zero value order fails Validate", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full lifecycle state", func(t *testing.T) {
		id := kernel.NewUUID()
		createdAt := time.Now().Add(-time.Hour).UTC()

		o, err := order.RestoreOrder(id, "JF-2026-007", validSpec(),
			order.Polish, order.InProgress, "artisan-1", createdAt, 4)

		require.NoError(t, err)
		assert.Equal(t, order.Polish, o.Stage())
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, "artisan-1", o.AssignedWorker())
		assert.Equal(t, int64(4), o.Version())
		assert.Equal(t, int64(4), o.PersistedVersion())
		assert.Equal(t, createdAt, o.CreatedAt())
	})

	t.Run("rejects invalid stage and status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "JF-2026-007", validSpec(),
			order.StageUnknown, order.Pending, "", time.Now(), 0)
		require.Error(t, err)

		_, err = order.RestoreOrder(kernel.NewUUID(), "JF-2026-007", validSpec(),
			order.Design, order.StatusUnknown, "", time.Now(), 0)
		require.Error(t, err)
	})

	t.Run("rejects negative version", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "JF-2026-007", validSpec(),
			order.Design, order.Pending, "", time.Now(), -1)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("claims a pending order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Claim("artisan-1"))

		assert.Equal(t, "artisan-1", o.AssignedWorker())
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("re-claim by the same worker is idempotent", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim("artisan-1"))

		require.NoError(t, o.Claim("artisan-1"))

		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("claim by a different worker fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim("artisan-1"))

		err := o.Claim("artisan-2")

		require.ErrorIs(t, err, order.ErrTaskAlreadyClaimed)
		assert.Equal(t, "artisan-1", o.AssignedWorker())
	})

	t.Run("requires a worker identity", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Claim(""), errs.ErrValueIsRequired)
	})

	t.Run("cannot claim a cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.Claim("artisan-1"), order.ErrInvalidTransition)
	})
}

func TestOrder_Release(t *testing.T) {
	t.Run("release at the first stage reverts to pending", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim("artisan-1"))

		require.NoError(t, o.Release())

		assert.Empty(t, o.AssignedWorker())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, int64(2), o.Version())
	})

	t.Run("release past the first stage keeps in_progress", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Advance(order.QCOutcomeNone))
		require.NoError(t, o.Claim("artisan-1"))

		require.NoError(t, o.Release())

		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, order.Casting, o.Stage())
	})

	t.Run("release of an unclaimed order is a no-op", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Release())

		assert.Equal(t, int64(0), o.Version())
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("eight advances reach the terminal stage as completed", func(t *testing.T) {
		o := newTestOrder(t)

		for i := 0; i < 8; i++ {
			require.NoError(t, o.Advance(order.QCOutcomeNone))
		}

		assert.True(t, o.Stage().IsTerminal())
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, int64(8), o.Version())
	})

	t.Run("a ninth advance fails with terminal stage error", func(t *testing.T) {
		o := newTestOrder(t)
		for i := 0; i < 8; i++ {
			require.NoError(t, o.Advance(order.QCOutcomeNone))
		}

		err := o.Advance(order.QCOutcomeNone)

		require.ErrorIs(t, err, order.ErrTerminalStage)
		assert.Equal(t, int64(8), o.Version())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("advance clears the worker assignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim("artisan-1"))

		require.NoError(t, o.Advance(order.QCOutcomeNone))

		assert.Empty(t, o.AssignedWorker())
		assert.Equal(t, order.Casting, o.Stage())
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("cannot advance a cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.Advance(order.QCOutcomeNone), order.ErrInvalidTransition)
	})

	t.Run("qc fail rolls back to the preceding stage", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.QC)
		versionAtQC := o.Version()

		require.NoError(t, o.Advance(order.QCOutcomeFail))

		assert.Equal(t, order.Setting, o.Stage())
		assert.Equal(t, order.QCFail, o.Status())
		assert.Equal(t, versionAtQC+1, o.Version())
	})

	t.Run("qc pass advances to Final", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.QC)

		require.NoError(t, o.Advance(order.QCOutcomePass))

		assert.Equal(t, order.Final, o.Stage())
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("fail outcome outside QC advances normally", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Advance(order.QCOutcomeFail))

		assert.Equal(t, order.Casting, o.Stage())
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("rework after qc fail goes through QC again", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.QC)
		require.NoError(t, o.Advance(order.QCOutcomeFail))

		// Rework Setting, then pass QC this time.
		require.NoError(t, o.Advance(order.QCOutcomeNone))
		assert.Equal(t, order.QC, o.Stage())
		require.NoError(t, o.Advance(order.QCOutcomePass))
		assert.Equal(t, order.Final, o.Stage())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels an active order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim("artisan-1"))

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Empty(t, o.AssignedWorker())
		assert.False(t, o.IsActive())
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.Cancel(), order.ErrInvalidTransition)
	})

	t.Run("cannot cancel a completed order", func(t *testing.T) {
		o := newTestOrder(t)
		for i := 0; i < 8; i++ {
			require.NoError(t, o.Advance(order.QCOutcomeNone))
		}

		require.ErrorIs(t, o.Cancel(), order.ErrInvalidTransition)
	})
}

func TestNewEvidence(t *testing.T) {
	t.Run("creates valid evidence", func(t *testing.T) {
		id := kernel.NewUUID()

		e, err := order.NewEvidence(id, order.Polish, "img-1", "artisan-1", order.QCOutcomeNone)

		require.NoError(t, err)
		assert.True(t, e.OrderID().IsEqual(id))
		assert.Equal(t, order.Polish, e.Stage())
		assert.Equal(t, "img-1", e.Ref())
		assert.Equal(t, "artisan-1", e.Actor())
		assert.False(t, e.RecordedAt().IsZero())
	})

	t.Run("requires an evidence reference", func(t *testing.T) {
		_, err := order.NewEvidence(kernel.NewUUID(), order.Polish, "", "artisan-1", order.QCOutcomeNone)
		require.ErrorIs(t, err, order.ErrEvidenceIsRequired)
	})

	t.Run("requires an actor", func(t *testing.T) {
		_, err := order.NewEvidence(kernel.NewUUID(), order.Polish, "img-1", "", order.QCOutcomeNone)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects the terminal stage", func(t *testing.T) {
		_, err := order.NewEvidence(kernel.NewUUID(), order.Terminal, "img-1", "artisan-1", order.QCOutcomeNone)
		require.Error(t, err)
	})
}
