//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"courtbook/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := reservation.NewTimeSlot(start, start)
	assert.ErrorIs(t, err, reservation.ErrInvalidInterval)

	_, err = reservation.NewTimeSlot(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, reservation.ErrInvalidInterval)

	slot, err := reservation.NewTimeSlot(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, slot.Duration())
}

func TestTimeSlot_Overlaps(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mk := func(fromMin, toMin int) reservation.TimeSlot {
		slot, err := reservation.NewTimeSlot(base.Add(time.Duration(fromMin)*time.Minute), base.Add(time.Duration(toMin)*time.Minute))
		require.NoError(t, err)
		return slot
	}

	a := mk(0, 60)
	assert.True(t, a.Overlaps(mk(30, 90)))
	assert.True(t, a.Overlaps(mk(0, 60)))
	// Half-open ranges: back-to-back slots share a boundary instant but do
	// not overlap.
	assert.False(t, a.Overlaps(mk(60, 120)))
	assert.False(t, a.Overlaps(mk(-60, 0)))
}

func TestTimeSlot_ValidateSingleSlot(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	slot, err := reservation.NewTimeSlot(base, base.Add(2*time.Hour))
	require.NoError(t, err)

	assert.ErrorIs(t, slot.ValidateSingleSlot(time.Hour), reservation.ErrWrongSlotLength)
	assert.NoError(t, slot.ValidateSingleSlot(2*time.Hour))
}

func TestNewGuest(t *testing.T) {
	_, err := reservation.NewGuest("   ", "", 500)
	assert.ErrorIs(t, err, reservation.ErrEmptyGuestName)

	_, err = reservation.NewGuest("Alex Doe", "", -1)
	assert.ErrorIs(t, err, reservation.ErrNegativeGuestFee)

	g, err := reservation.NewGuest("  Alex Doe ", "G-42", 1500)
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", g.Name())
	assert.Equal(t, int64(1500), g.FeeCents())
}

func TestReservation_CancelIsOneWay(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	slot, err := reservation.NewTimeSlot(base, base.Add(time.Hour))
	require.NoError(t, err)

	res := reservation.NewReservation(uuid.New(), uuid.New(), slot, nil)
	require.True(t, res.IsActive())

	require.NoError(t, res.Cancel())
	assert.False(t, res.IsActive())
	assert.ErrorIs(t, res.Cancel(), reservation.ErrAlreadyCancelled)
}

func TestTotalGuestFees(t *testing.T) {
	g1, err := reservation.NewGuest("A", "", 500)
	require.NoError(t, err)
	g2, err := reservation.NewGuest("B", "", 250)
	require.NoError(t, err)

	assert.Equal(t, int64(750), reservation.TotalGuestFees([]reservation.Guest{g1, g2}))
	assert.Equal(t, int64(0), reservation.TotalGuestFees(nil))
}
