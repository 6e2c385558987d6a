package delivery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftDelivery(t *testing.T) *Delivery {
	t.Helper()
	d, err := NewDelivery("INV-1001", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	return d
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestDeliveryStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     DeliveryStatus
		to       DeliveryStatus
		canTrans bool
	}{
		{"draft to confirmed", DeliveryStatusDraft, DeliveryStatusConfirmed, true},
		{"draft to cancelled", DeliveryStatusDraft, DeliveryStatusCancelled, true},
		{"confirmed to draft", DeliveryStatusConfirmed, DeliveryStatusDraft, false},
		{"confirmed to cancelled", DeliveryStatusConfirmed, DeliveryStatusCancelled, false},
		{"cancelled to draft", DeliveryStatusCancelled, DeliveryStatusDraft, false},
		{"cancelled to confirmed", DeliveryStatusCancelled, DeliveryStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewDelivery(t *testing.T) {
	t.Run("creates draft delivery", func(t *testing.T) {
		vendorID := uuid.New()
		outletID := uuid.New()

		d, err := NewDelivery("INV-1001", vendorID, outletID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, DeliveryStatusDraft, d.Status)
		assert.Equal(t, vendorID, d.VendorID)
		assert.Equal(t, outletID, d.OutletID)
		assert.True(t, d.IsDraft())
		assert.True(t, d.CanModify())
		assert.Empty(t, d.Lines)
	})

	t.Run("defaults date when zero", func(t *testing.T) {
		d, err := NewDelivery("", uuid.New(), uuid.New(), time.Time{})

		require.NoError(t, err)
		assert.False(t, d.Date.IsZero())
	})

	t.Run("fails without vendor", func(t *testing.T) {
		_, err := NewDelivery("INV-1001", uuid.Nil, uuid.New(), time.Now())
		assert.Error(t, err)
	})

	t.Run("fails without outlet", func(t *testing.T) {
		_, err := NewDelivery("INV-1001", uuid.New(), uuid.Nil, time.Now())
		assert.Error(t, err)
	})
}

func TestDeliveryLines(t *testing.T) {
	t.Run("adds line to draft", func(t *testing.T) {
		d := newDraftDelivery(t)
		expiry := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

		line, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), &expiry)

		require.NoError(t, err)
		assert.Equal(t, d.ID, line.DeliveryID)
		assert.Equal(t, 1, d.LineCount())
		assert.True(t, decimal.NewFromInt(6).Equal(d.TotalQuantity()))
	})

	t.Run("lines carry their own outlet", func(t *testing.T) {
		d := newDraftDelivery(t)
		outletA := uuid.New()
		outletB := uuid.New()

		lineA, err := d.AddLine(uuid.New(), outletA, uuid.New(), decimal.NewFromInt(3), nil)
		require.NoError(t, err)
		lineB, err := d.AddLine(uuid.New(), outletB, uuid.New(), decimal.NewFromInt(4), nil)
		require.NoError(t, err)

		assert.Equal(t, outletA, lineA.OutletID)
		assert.Equal(t, outletB, lineB.OutletID)
	})

	t.Run("rejects line without outlet", func(t *testing.T) {
		d := newDraftDelivery(t)

		_, err := d.AddLine(uuid.New(), uuid.Nil, uuid.New(), decimal.NewFromInt(1), nil)

		assertDomainCode(t, err, "INVALID_OUTLET")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		d := newDraftDelivery(t)

		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.Zero, nil)

		assert.Error(t, err)
		assert.Equal(t, 0, d.LineCount())
	})

	t.Run("updates line in draft", func(t *testing.T) {
		d := newDraftDelivery(t)
		line, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), nil)
		require.NoError(t, err)

		newLocation := uuid.New()
		err = d.UpdateLine(line.ID, line.OutletID, newLocation, decimal.NewFromInt(9), nil)

		require.NoError(t, err)
		updated := d.GetLine(line.ID)
		require.NotNil(t, updated)
		assert.Equal(t, newLocation, updated.LocationID)
		assert.True(t, decimal.NewFromInt(9).Equal(updated.Quantity))
	})

	t.Run("removes line in draft", func(t *testing.T) {
		d := newDraftDelivery(t)
		line, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), nil)
		require.NoError(t, err)

		require.NoError(t, d.RemoveLine(line.ID))
		assert.Equal(t, 0, d.LineCount())
		assert.Nil(t, d.GetLine(line.ID))
	})

	t.Run("update of unknown line fails", func(t *testing.T) {
		d := newDraftDelivery(t)
		err := d.UpdateLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(1), nil)
		assertDomainCode(t, err, "LINE_NOT_FOUND")
	})
}

func TestDeliveryConfirm(t *testing.T) {
	t.Run("confirms draft with lines", func(t *testing.T) {
		d := newDraftDelivery(t)
		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), nil)
		require.NoError(t, err)

		err = d.Confirm()

		require.NoError(t, err)
		assert.Equal(t, DeliveryStatusConfirmed, d.Status)
		assert.True(t, d.IsConfirmed())
		assert.True(t, d.IsTerminal())
		require.NotNil(t, d.ConfirmedAt)
	})

	t.Run("rejects empty delivery", func(t *testing.T) {
		d := newDraftDelivery(t)

		err := d.Confirm()

		assertDomainCode(t, err, "EMPTY_DELIVERY")
		assert.Equal(t, DeliveryStatusDraft, d.Status)
	})

	t.Run("confirming twice fails", func(t *testing.T) {
		d := newDraftDelivery(t)
		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), nil)
		require.NoError(t, err)
		require.NoError(t, d.Confirm())

		err = d.Confirm()

		assertDomainCode(t, err, "INVALID_TRANSITION")
	})
}

func TestDeliveryCancel(t *testing.T) {
	t.Run("cancels draft", func(t *testing.T) {
		d := newDraftDelivery(t)

		err := d.Cancel()

		require.NoError(t, err)
		assert.Equal(t, DeliveryStatusCancelled, d.Status)
		require.NotNil(t, d.CancelledAt)
	})

	t.Run("cannot cancel confirmed delivery", func(t *testing.T) {
		d := newDraftDelivery(t)
		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), nil)
		require.NoError(t, err)
		require.NoError(t, d.Confirm())

		err = d.Cancel()

		assertDomainCode(t, err, "INVALID_TRANSITION")
	})
}

func TestDeliveryLocking(t *testing.T) {
	confirmed := func(t *testing.T) *Delivery {
		d := newDraftDelivery(t)
		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(6), nil)
		require.NoError(t, err)
		require.NoError(t, d.Confirm())
		return d
	}

	t.Run("confirmed delivery rejects new lines", func(t *testing.T) {
		d := confirmed(t)
		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(1), nil)
		assertDomainCode(t, err, "LOCKED_RECORD")
	})

	t.Run("confirmed delivery rejects line updates", func(t *testing.T) {
		d := confirmed(t)
		lineID := d.Lines[0].ID
		err := d.UpdateLine(lineID, uuid.New(), uuid.New(), decimal.NewFromInt(2), nil)
		assertDomainCode(t, err, "LOCKED_RECORD")
	})

	t.Run("confirmed delivery rejects line removal", func(t *testing.T) {
		d := confirmed(t)
		err := d.RemoveLine(d.Lines[0].ID)
		assertDomainCode(t, err, "LOCKED_RECORD")
	})

	t.Run("confirmed delivery rejects header changes", func(t *testing.T) {
		d := confirmed(t)
		err := d.UpdateHeader("INV-2", uuid.New(), time.Now())
		assertDomainCode(t, err, "LOCKED_RECORD")
	})

	t.Run("cancelled delivery is also locked", func(t *testing.T) {
		d := newDraftDelivery(t)
		require.NoError(t, d.Cancel())
		_, err := d.AddLine(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(1), nil)
		assertDomainCode(t, err, "LOCKED_RECORD")
	})

	t.Run("notes stay editable after confirm", func(t *testing.T) {
		d := confirmed(t)
		d.SetNotes("driver left pallet at back door")
		assert.Equal(t, "driver left pallet at back door", d.Notes)
	})
}
