package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is the computed free/busy picture for one equipment on
// one calendar day. Timestamps are expected to be already localized to the
// organization's reference timezone; no conversion happens here.
type AvailabilityWindow struct {
	EquipmentID      uuid.UUID
	Date             time.Time
	IsAvailable      bool
	ScheduledHours   float64
	AvailablePeriods []Interval
	Conflicts        []Conflict
}

// ComputeAvailability sweeps the day [dayStart, dayStart+24h), merging the
// busy intervals of all blocking schedules clipped to the day boundary. The
// complement of the merged busy set forms AvailablePeriods; ScheduledHours is
// the length of the busy union, so overlapping schedules are not
// double-counted. When candidate is non-nil its conflicts against the day's
// schedules are attached; otherwise Conflicts stays empty.
func ComputeAvailability(equipmentID uuid.UUID, date time.Time, schedules []*Schedule, candidate *Interval) AvailabilityWindow {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	day := Interval{start: dayStart, end: dayEnd}

	busy := make([]Interval, 0, len(schedules))
	for _, s := range schedules {
		if s.EquipmentID() != equipmentID || !s.BlocksEquipment() {
			continue
		}
		if clipped, ok := day.Intersection(s.Slot()); ok {
			busy = append(busy, clipped)
		}
	}
	busy = mergeIntervals(busy)

	free := make([]Interval, 0, len(busy)+1)
	cursor := dayStart
	scheduled := time.Duration(0)
	for _, b := range busy {
		if b.start.After(cursor) {
			free = append(free, Interval{start: cursor, end: b.start})
		}
		scheduled += b.Duration()
		cursor = b.end
	}
	if cursor.Before(dayEnd) {
		free = append(free, Interval{start: cursor, end: dayEnd})
	}

	conflicts := []Conflict{}
	if candidate != nil {
		conflicts = FindConflicts(equipmentID, *candidate, schedules, nil)
	}

	return AvailabilityWindow{
		EquipmentID:      equipmentID,
		Date:             dayStart,
		IsAvailable:      len(free) > 0,
		ScheduledHours:   scheduled.Hours(),
		AvailablePeriods: free,
		Conflicts:        conflicts,
	}
}

// mergeIntervals coalesces overlapping or touching intervals into a sorted,
// disjoint set.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return intervals
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})
	merged := intervals[:1]
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
