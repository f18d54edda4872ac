//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"equipsched/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intervalCmp = cmp.Options{
	cmp.Comparer(func(a, b schedule.Interval) bool {
		return a.Start().Equal(b.Start()) && a.End().Equal(b.End())
	}),
}

func day() time.Time {
	return time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
}

func TestComputeAvailability(t *testing.T) {
	excavator := uuid.New()

	t.Run("free periods are the complement of the bookings", func(t *testing.T) {
		schedules := []*schedule.Schedule{
			booking(t, excavator, 9, 11, schedule.StatusScheduled),
			booking(t, excavator, 14, 16, schedule.StatusScheduled),
		}

		got := schedule.ComputeAvailability(excavator, day(), schedules, nil)

		want := []schedule.Interval{
			span(t, 0, 9),
			span(t, 11, 14),
			span(t, 16, 24),
		}
		if diff := cmp.Diff(want, got.AvailablePeriods, intervalCmp); diff != "" {
			t.Errorf("available periods mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, got.IsAvailable)
		assert.InDelta(t, 4.0, got.ScheduledHours, 1e-9)
		assert.Empty(t, got.Conflicts)
		assert.Equal(t, day(), got.Date)
	})

	t.Run("full-day booking leaves no free periods", func(t *testing.T) {
		schedules := []*schedule.Schedule{booking(t, excavator, 0, 24, schedule.StatusScheduled)}

		got := schedule.ComputeAvailability(excavator, day(), schedules, nil)

		assert.Empty(t, got.AvailablePeriods)
		assert.False(t, got.IsAvailable)
		assert.InDelta(t, 24.0, got.ScheduledHours, 1e-9)
	})

	t.Run("empty day is fully available", func(t *testing.T) {
		got := schedule.ComputeAvailability(excavator, day(), nil, nil)

		require.Len(t, got.AvailablePeriods, 1)
		assert.Equal(t, day(), got.AvailablePeriods[0].Start())
		assert.Equal(t, day().Add(24*time.Hour), got.AvailablePeriods[0].End())
		assert.Zero(t, got.ScheduledHours)
		assert.True(t, got.IsAvailable)
	})

	t.Run("overlapping bookings are not double counted", func(t *testing.T) {
		schedules := []*schedule.Schedule{
			booking(t, excavator, 9, 13, schedule.StatusScheduled),
			booking(t, excavator, 11, 15, schedule.StatusScheduled),
		}

		got := schedule.ComputeAvailability(excavator, day(), schedules, nil)

		assert.InDelta(t, 6.0, got.ScheduledHours, 1e-9)
		want := []schedule.Interval{span(t, 0, 9), span(t, 15, 24)}
		if diff := cmp.Diff(want, got.AvailablePeriods, intervalCmp); diff != "" {
			t.Errorf("available periods mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bookings spanning midnight are clipped to the day", func(t *testing.T) {
		slot, err := schedule.NewInterval(day().Add(-2*time.Hour), day().Add(3*time.Hour))
		require.NoError(t, err)
		notes, err := schedule.NewNotes("")
		require.NoError(t, err)
		overnight := schedule.ReconstructSchedule(
			uuid.New(), excavator, slot, schedule.StatusScheduled,
			nil, nil, notes, uuid.New(), day(), day(),
		)

		got := schedule.ComputeAvailability(excavator, day(), []*schedule.Schedule{overnight}, nil)

		assert.InDelta(t, 3.0, got.ScheduledHours, 1e-9)
		require.Len(t, got.AvailablePeriods, 1)
		assert.Equal(t, day().Add(3*time.Hour), got.AvailablePeriods[0].Start())
	})

	t.Run("cancelled bookings free the day", func(t *testing.T) {
		schedules := []*schedule.Schedule{booking(t, excavator, 0, 24, schedule.StatusCancelled)}

		got := schedule.ComputeAvailability(excavator, day(), schedules, nil)

		assert.True(t, got.IsAvailable)
		assert.Zero(t, got.ScheduledHours)
	})

	t.Run("candidate interval attaches conflicts", func(t *testing.T) {
		schedules := []*schedule.Schedule{booking(t, excavator, 9, 11, schedule.StatusScheduled)}
		candidate := span(t, 10, 12)

		got := schedule.ComputeAvailability(excavator, day(), schedules, &candidate)

		require.Len(t, got.Conflicts, 1)
		assert.Equal(t, schedules[0].ID(), got.Conflicts[0].ConflictingScheduleID)
		assert.Equal(t, schedule.PartialOverlap, got.Conflicts[0].Type)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		schedules := []*schedule.Schedule{
			booking(t, excavator, 14, 16, schedule.StatusScheduled),
			booking(t, excavator, 9, 11, schedule.StatusScheduled),
		}

		first := schedule.ComputeAvailability(excavator, day(), schedules, nil)
		second := schedule.ComputeAvailability(excavator, day(), schedules, nil)

		if diff := cmp.Diff(first, second, intervalCmp, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("availability not deterministic (-first +second):\n%s", diff)
		}
	})
}
