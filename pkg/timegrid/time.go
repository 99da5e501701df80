package timegrid

import (
	"errors"
	"fmt"
)

// ErrInvalidTime reports a clock string that is not strict "HH:MM".
var ErrInvalidTime = errors.New("invalid clock time, want HH:MM")

// MinutesPerDay is the number of minutes in a single grid day.
const MinutesPerDay = 24 * 60

// ParseClock converts a strict "HH:MM" string into minutes since
// midnight. Loose forms such as "9:5" are rejected rather than
// silently normalised.
func ParseClock(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
		}
	}
	hours := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minutes := int(clock[3]-'0')*10 + int(clock[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return hours*60 + minutes, nil
}

// FormatMinutes renders minutes since midnight as zero-padded "HH:MM".
// The caller is expected to pass a value in [0, 1439]; larger values
// wrap into the following day.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	minutes %= MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// mustClock is a test/internal helper: panics on malformed input.
func mustClock(clock string) int {
	m, err := ParseClock(clock)
	if err != nil {
		panic(err)
	}
	return m
}
