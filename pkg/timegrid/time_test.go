package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock   string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:05", 545, true},
		{"14:30", 870, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:5", 0, false},
		{"9:05", 0, false},
		{"09:5", 0, false},
		{"0905", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		minutes, err := ParseClock(tc.clock)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidTime, tc.clock)
			continue
		}
		require.NoError(t, err, tc.clock)
		assert.Equal(t, tc.minutes, minutes, tc.clock)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "09:05", FormatMinutes(545))
	assert.Equal(t, "23:59", FormatMinutes(1439))
	// Values past midnight wrap into the next day by caller convention.
	assert.Equal(t, "00:30", FormatMinutes(1470))
	assert.Equal(t, "00:00", FormatMinutes(-10))
}

func TestClockRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 5, 15, 30, 45, 59} {
			clock := FormatMinutes(hour*60 + minute)
			parsed, err := ParseClock(clock)
			require.NoError(t, err)
			assert.Equal(t, clock, FormatMinutes(parsed))
		}
	}
}
