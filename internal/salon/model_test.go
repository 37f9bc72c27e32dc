package salon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"00:00", 0},
		{"09:30", 9*time.Hour + 30*time.Minute},
		{"14:00:00", 14 * time.Hour},
		{"23:59:59", 23*time.Hour + 59*time.Minute + 59*time.Second},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "9:30", "24:00", "14:60", "noon", "14:00:00:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "09:30:00", FormatClock(9*time.Hour+30*time.Minute))
	assert.Equal(t, "23:59:59", FormatClock(23*time.Hour+59*time.Minute+59*time.Second))
}

func TestParseFormatClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00:00", "09:30:00", "18:45:15"} {
		d, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(d))
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 14, 22, 45, 12, 999, loc)

	got := DateOnly(in)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, AppointmentStatus("").Valid())
	assert.False(t, AppointmentStatus("booked").Valid())
	assert.False(t, AppointmentStatus("Scheduled").Valid())
}

func TestAppointmentStatusBlocksSlot(t *testing.T) {
	blocking := []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusInProgress, StatusNoShow}
	for _, s := range blocking {
		assert.True(t, s.BlocksSlot(), string(s))
	}
	assert.False(t, StatusCancelled.BlocksSlot())
	assert.False(t, StatusCompleted.BlocksSlot())
}
