package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/resto/internal/domain/models"
)

func lotExpiring(name string, expiry time.Time) models.InventoryLot {
	return models.InventoryLot{ItemName: name, ExpiryDate: expiry}
}

func TestFilterExpiringKeepsExactWindowOnly(t *testing.T) {
	today := time.Date(2026, time.March, 10, 9, 15, 0, 0, time.UTC)

	lots := []models.InventoryLot{
		lotExpiring("yesterday", today.AddDate(0, 0, -1)),
		lotExpiring("today", today),
		lotExpiring("tomorrow", today.AddDate(0, 0, 1)),
		lotExpiring("in two days", today.AddDate(0, 0, 2)),
	}

	out := FilterExpiring(lots, today, 1)

	require.Len(t, out, 1)
	assert.Equal(t, "tomorrow", out[0].ItemName)
}

func TestFilterExpiringIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, time.March, 10, 23, 50, 0, 0, time.UTC)

	// Expires early tomorrow morning, just a few hours away.
	lots := []models.InventoryLot{
		lotExpiring("milk", time.Date(2026, time.March, 11, 0, 10, 0, 0, time.UTC)),
	}

	out := FilterExpiring(lots, today, 1)
	require.Len(t, out, 1)
}

func TestFilterExpiringWiderWindow(t *testing.T) {
	today := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	lots := []models.InventoryLot{
		lotExpiring("tomorrow", today.AddDate(0, 0, 1)),
		lotExpiring("in three days", today.AddDate(0, 0, 3)),
	}

	out := FilterExpiring(lots, today, 3)

	require.Len(t, out, 1)
	assert.Equal(t, "in three days", out[0].ItemName)
}

func TestFilterExpiringAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is only 23 hours long in New York.
	today := time.Date(2026, time.March, 7, 12, 0, 0, 0, loc)
	lots := []models.InventoryLot{
		lotExpiring("milk", time.Date(2026, time.March, 8, 12, 0, 0, 0, loc)),
	}

	out := FilterExpiring(lots, today, 1)

	require.Len(t, out, 1)
	assert.Equal(t, "milk", out[0].ItemName)
}

func TestFilterExpiringEmptyInput(t *testing.T) {
	assert.Empty(t, FilterExpiring(nil, time.Now(), 1))
}
