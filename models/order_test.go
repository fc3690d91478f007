package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderStartsUnpaidAndUndelivered(t *testing.T) {
	order := Order{CreatedAt: time.Now()}

	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.DeliveredAt)
	assert.Equal(t, "Pending Payment", order.StatusLabel())
}

func TestMarkPaid(t *testing.T) {
	order := Order{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	order.MarkPaid(now)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, now, *order.PaidAt)
	assert.Equal(t, "Processing", order.StatusLabel())

	// One-way: a second call keeps the original timestamp.
	later := now.Add(48 * time.Hour)
	order.MarkPaid(later)
	assert.Equal(t, now, *order.PaidAt)
}

func TestMarkDelivered(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	t.Run("sets flag and timestamp together", func(t *testing.T) {
		order := Order{}
		order.MarkPaid(now.Add(-time.Hour))

		err := order.MarkDelivered(now, false)

		require.NoError(t, err)
		assert.True(t, order.IsDelivered)
		require.NotNil(t, order.DeliveredAt)
		assert.Equal(t, now, *order.DeliveredAt)
		assert.Equal(t, "Delivered", order.StatusLabel())
	})

	t.Run("one-way transition keeps original timestamp", func(t *testing.T) {
		order := Order{}
		require.NoError(t, order.MarkDelivered(now, false))

		later := now.Add(24 * time.Hour)
		require.NoError(t, order.MarkDelivered(later, false))
		assert.Equal(t, now, *order.DeliveredAt)
	})

	t.Run("unpaid order allowed when policy is off", func(t *testing.T) {
		order := Order{}

		err := order.MarkDelivered(now, false)

		require.NoError(t, err)
		assert.True(t, order.IsDelivered)
		assert.False(t, order.IsPaid)
	})

	t.Run("unpaid order rejected when policy is on", func(t *testing.T) {
		order := Order{}

		err := order.MarkDelivered(now, true)

		assert.ErrorIs(t, err, ErrOrderNotPaid)
		assert.False(t, order.IsDelivered)
		assert.Nil(t, order.DeliveredAt)
	})

	t.Run("paid order allowed when policy is on", func(t *testing.T) {
		order := Order{}
		order.MarkPaid(now.Add(-time.Hour))

		err := order.MarkDelivered(now, true)

		require.NoError(t, err)
		assert.True(t, order.IsDelivered)
	})
}

func TestStatusLabelIsDerivedNotStored(t *testing.T) {
	order := Order{IsPaid: true, IsDelivered: true}

	assert.Empty(t, order.Status)
	order.SyncStatus()
	assert.Equal(t, "Delivered", order.Status)
}
