package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateFilter(t *testing.T) {
	for _, s := range []string{"ALL", "current", "Past", "FUTURE", "waiting", "REJECTED"} {
		f, err := ParseStateFilter(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, f)
	}

	f, err := ParseStateFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseStateFilter("SOMEDAY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

// Every booking falls in exactly one of CURRENT, PAST, FUTURE for a fixed now,
// and ALL matches everything.
func TestTimeBucketsPartition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		{ID: "past", Start: now.Add(-3 * time.Hour), End: now.Add(-1 * time.Hour)},
		{ID: "ends-now", Start: now.Add(-2 * time.Hour), End: now}, // end == now is past
		{ID: "active", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{ID: "starts-now", Start: now, End: now.Add(time.Hour)}, // start == now is current
		{ID: "future", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
	}
	wantBucket := map[string]StateFilter{
		"past":       FilterPast,
		"ends-now":   FilterPast,
		"active":     FilterCurrent,
		"starts-now": FilterCurrent,
		"future":     FilterFuture,
	}

	for _, b := range bookings {
		assert.True(t, FilterAll.Matches(b, now), b.ID)
		matched := 0
		for _, f := range []StateFilter{FilterCurrent, FilterPast, FilterFuture} {
			if f.Matches(b, now) {
				matched++
				assert.Equal(t, wantBucket[b.ID], f, b.ID)
			}
		}
		assert.Equal(t, 1, matched, "booking %s must land in exactly one time bucket", b.ID)
	}
}

func TestStatusFilters(t *testing.T) {
	now := time.Now()
	waiting := &Booking{Status: StatusWaiting}
	approved := &Booking{Status: StatusApproved}
	rejected := &Booking{Status: StatusRejected}

	assert.True(t, FilterWaiting.Matches(waiting, now))
	assert.False(t, FilterWaiting.Matches(approved, now))
	assert.True(t, FilterRejected.Matches(rejected, now))
	assert.False(t, FilterRejected.Matches(waiting, now))
}
