//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"equipsched/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(t *testing.T, equipmentID uuid.UUID, startHour, endHour int, status schedule.Status) *schedule.Schedule {
	t.Helper()
	slot, err := schedule.NewInterval(at(startHour, 0), at(endHour, 0))
	require.NoError(t, err)
	notes, err := schedule.NewNotes("")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return schedule.ReconstructSchedule(
		uuid.New(), equipmentID, slot, status, nil, nil, notes, uuid.New(), now, now,
	)
}

func TestFindConflicts(t *testing.T) {
	excavator := uuid.New()
	crane := uuid.New()

	t.Run("no conflict on adjacent intervals", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, excavator, 12, 14, schedule.StatusScheduled)}
		got := schedule.FindConflicts(excavator, span(t, 10, 12), existing, nil)
		assert.Empty(t, got)
	})

	t.Run("exact duplicate is a full overlap", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, excavator, 9, 17, schedule.StatusScheduled)}
		got := schedule.FindConflicts(excavator, span(t, 9, 17), existing, nil)
		require.Len(t, got, 1)
		assert.Equal(t, schedule.FullOverlap, got[0].Type)
		assert.Equal(t, at(9, 0), got[0].OverlapStart)
		assert.Equal(t, at(17, 0), got[0].OverlapEnd)
		assert.InDelta(t, 8.0, got[0].OverlapHours, 1e-9)
		assert.Equal(t, existing[0].ID(), got[0].ConflictingScheduleID)
	})

	t.Run("partial overlap clips to common range", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, excavator, 11, 15, schedule.StatusScheduled)}
		got := schedule.FindConflicts(excavator, span(t, 8, 13), existing, nil)
		require.Len(t, got, 1)
		assert.Equal(t, schedule.PartialOverlap, got[0].Type)
		assert.Equal(t, at(11, 0), got[0].OverlapStart)
		assert.Equal(t, at(13, 0), got[0].OverlapEnd)
		assert.InDelta(t, 2.0, got[0].OverlapHours, 1e-9)
	})

	t.Run("containment in either direction is a full overlap", func(t *testing.T) {
		inside := []*schedule.Schedule{booking(t, excavator, 9, 12, schedule.StatusScheduled)}
		got := schedule.FindConflicts(excavator, span(t, 10, 11), inside, nil)
		require.Len(t, got, 1)
		assert.Equal(t, schedule.FullOverlap, got[0].Type)

		outside := []*schedule.Schedule{booking(t, excavator, 10, 11, schedule.StatusScheduled)}
		got = schedule.FindConflicts(excavator, span(t, 9, 12), outside, nil)
		require.Len(t, got, 1)
		assert.Equal(t, schedule.FullOverlap, got[0].Type)
	})

	t.Run("editing in place excludes the schedule itself", func(t *testing.T) {
		current := booking(t, excavator, 9, 17, schedule.StatusScheduled)
		id := current.ID()
		got := schedule.FindConflicts(excavator, span(t, 9, 17), []*schedule.Schedule{current}, &id)
		assert.Empty(t, got)
	})

	t.Run("other equipment never conflicts", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, crane, 9, 17, schedule.StatusScheduled)}
		got := schedule.FindConflicts(excavator, span(t, 9, 17), existing, nil)
		assert.Empty(t, got)
	})

	t.Run("cancelled schedules are invisible", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, excavator, 10, 12, schedule.StatusCancelled)}
		got := schedule.FindConflicts(excavator, span(t, 10, 12), existing, nil)
		assert.Empty(t, got)
	})

	t.Run("active and completed schedules still block", func(t *testing.T) {
		existing := []*schedule.Schedule{
			booking(t, excavator, 8, 10, schedule.StatusActive),
			booking(t, excavator, 10, 12, schedule.StatusCompleted),
		}
		got := schedule.FindConflicts(excavator, span(t, 9, 11), existing, nil)
		assert.Len(t, got, 2)
	})

	t.Run("conflicts ordered by existing start ascending", func(t *testing.T) {
		first := booking(t, excavator, 8, 10, schedule.StatusScheduled)
		second := booking(t, excavator, 11, 13, schedule.StatusScheduled)
		third := booking(t, excavator, 14, 16, schedule.StatusScheduled)
		existing := []*schedule.Schedule{third, first, second}

		got := schedule.FindConflicts(excavator, span(t, 9, 15), existing, nil)
		require.Len(t, got, 3)
		assert.Equal(t, first.ID(), got[0].ConflictingScheduleID)
		assert.Equal(t, second.ID(), got[1].ConflictingScheduleID)
		assert.Equal(t, third.ID(), got[2].ConflictingScheduleID)
	})

	t.Run("no side effects on input", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, excavator, 11, 15, schedule.StatusScheduled)}
		before := existing[0].Slot()
		_ = schedule.FindConflicts(excavator, span(t, 8, 13), existing, nil)
		assert.Equal(t, before, existing[0].Slot())
		assert.Equal(t, schedule.StatusScheduled, existing[0].Status())
	})
}

func TestValidateCandidate(t *testing.T) {
	excavator := uuid.New()

	t.Run("invalid interval rejected before conflict search", func(t *testing.T) {
		candidate := schedule.Candidate{
			EquipmentID: excavator,
			Slot:        schedule.Interval{},
		}
		_, err := schedule.ValidateCandidate(candidate, []*schedule.Schedule{
			booking(t, excavator, 0, 24, schedule.StatusScheduled),
		})
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("rejected result carries the full conflict list", func(t *testing.T) {
		existing := []*schedule.Schedule{
			booking(t, excavator, 8, 10, schedule.StatusScheduled),
			booking(t, excavator, 12, 14, schedule.StatusScheduled),
		}
		result, err := schedule.ValidateCandidate(schedule.Candidate{
			EquipmentID: excavator,
			Slot:        span(t, 9, 13),
		}, existing)
		require.NoError(t, err)
		assert.False(t, result.OK())
		assert.Len(t, result.Conflicts, 2)
	})

	t.Run("free slot passes", func(t *testing.T) {
		existing := []*schedule.Schedule{booking(t, excavator, 8, 10, schedule.StatusScheduled)}
		result, err := schedule.ValidateCandidate(schedule.Candidate{
			EquipmentID: excavator,
			Slot:        span(t, 10, 12),
		}, existing)
		require.NoError(t, err)
		assert.True(t, result.OK())
	})

	t.Run("exclusion allows saving an unchanged schedule", func(t *testing.T) {
		current := booking(t, excavator, 9, 17, schedule.StatusScheduled)
		id := current.ID()
		result, err := schedule.ValidateCandidate(schedule.Candidate{
			EquipmentID: excavator,
			Slot:        span(t, 9, 17),
			ExcludeID:   &id,
		}, []*schedule.Schedule{current})
		require.NoError(t, err)
		assert.True(t, result.OK())
	})
}
