package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeSetAndToday(t *testing.T) {
	at := time.Date(2025, time.March, 12, 14, 30, 0, 0, time.UTC)
	fc := NewFake(at)

	assert.Equal(t, at, fc.Now())
	assert.Equal(t, time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), fc.Today())
}

func TestFakeAdvanceDays(t *testing.T) {
	fc := NewFake(time.Date(2025, time.January, 30, 9, 0, 0, 0, time.UTC))
	fc.AdvanceDays(3)
	assert.Equal(t, time.Date(2025, time.February, 2, 9, 0, 0, 0, time.UTC), fc.Now())
}

func TestFakeReset(t *testing.T) {
	fc := NewFake(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))
	fc.Reset()
	// After reset the fake falls through to the real clock.
	assert.WithinDuration(t, time.Now(), fc.Now(), 5*time.Second)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to previous sunday",
			in:   time.Date(2025, time.June, 11, 17, 45, 0, 0, time.UTC), // Wed
			want: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps to itself",
			in:   time.Date(2025, time.June, 8, 23, 59, 0, 0, time.UTC),
			want: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday maps back six days",
			in:   time.Date(2025, time.June, 14, 1, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekStart(tc.in))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.June, 8, 22, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.June, 11, 1, 0, 0, 0, time.UTC)
	require.Equal(t, 3, DaysBetween(a, b))
	require.Equal(t, -3, DaysBetween(b, a))
	require.Equal(t, 0, DaysBetween(a, a))
}
