//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"equipsched/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 16, hour, minute, 0, 0, time.UTC)
}

func span(t *testing.T, startHour, endHour int) schedule.Interval {
	t.Helper()
	iv, err := schedule.NewInterval(at(startHour, 0), at(endHour, 0))
	require.NoError(t, err)
	return iv
}

func TestNewInterval(t *testing.T) {
	t.Run("end after start", func(t *testing.T) {
		iv, err := schedule.NewInterval(at(9, 0), at(17, 0))
		require.NoError(t, err)
		assert.Equal(t, at(9, 0), iv.Start())
		assert.Equal(t, at(17, 0), iv.End())
		assert.Equal(t, 8*time.Hour, iv.Duration())
		assert.InDelta(t, 8.0, iv.Hours(), 1e-9)
	})

	t.Run("zero-length interval rejected", func(t *testing.T) {
		_, err := schedule.NewInterval(at(9, 0), at(9, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("inverted interval rejected", func(t *testing.T) {
		_, err := schedule.NewInterval(at(17, 0), at(9, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})
}

func TestIntervalOverlaps(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    schedule.Interval
		overlap bool
	}{
		{name: "disjoint", a: span(t, 8, 10), b: span(t, 12, 14), overlap: false},
		{name: "adjacent at boundary", a: span(t, 10, 12), b: span(t, 12, 14), overlap: false},
		{name: "partial", a: span(t, 8, 13), b: span(t, 11, 15), overlap: true},
		{name: "contained", a: span(t, 10, 11), b: span(t, 9, 12), overlap: true},
		{name: "identical", a: span(t, 9, 17), b: span(t, 9, 17), overlap: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
			// overlap(X,Y) == overlap(Y,X)
			assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntervalIntersection(t *testing.T) {
	t.Run("partial overlap clips to common range", func(t *testing.T) {
		got, ok := span(t, 8, 13).Intersection(span(t, 11, 15))
		require.True(t, ok)
		assert.Equal(t, at(11, 0), got.Start())
		assert.Equal(t, at(13, 0), got.End())
	})

	t.Run("no intersection for adjacent intervals", func(t *testing.T) {
		_, ok := span(t, 10, 12).Intersection(span(t, 12, 14))
		assert.False(t, ok)
	})
}

func TestIntervalContains(t *testing.T) {
	assert.True(t, span(t, 9, 12).Contains(span(t, 10, 11)))
	assert.True(t, span(t, 9, 12).Contains(span(t, 9, 12)))
	assert.False(t, span(t, 10, 11).Contains(span(t, 9, 12)))
	assert.False(t, span(t, 9, 12).Contains(span(t, 11, 13)))
}

func TestIntervalToTstzrange(t *testing.T) {
	iv := span(t, 9, 17)
	assert.Equal(t, "[2025-06-16T09:00:00Z,2025-06-16T17:00:00Z)", iv.ToTstzrange())
}
