package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type ConflictType string

const (
	FullOverlap    ConflictType = "full_overlap"
	PartialOverlap ConflictType = "partial_overlap"
)

// Conflict describes a detected overlap between a candidate interval and one
// existing schedule. Conflicts are computed on demand and never persisted.
type Conflict struct {
	EquipmentID           uuid.UUID    `json:"equipment_id"`
	ConflictingScheduleID uuid.UUID    `json:"conflicting_schedule_id"`
	OverlapStart          time.Time    `json:"overlap_start"`
	OverlapEnd            time.Time    `json:"overlap_end"`
	OverlapHours          float64      `json:"overlap_hours"`
	Type                  ConflictType `json:"conflict_type"`
}

// FindConflicts returns one Conflict per existing schedule of the given
// equipment whose interval overlaps the candidate, ordered by the existing
// schedule's start time. Cancelled schedules, schedules of other equipment
// and the excluded schedule (when editing in place) are skipped. The function
// is pure: it only reads its arguments.
func FindConflicts(equipmentID uuid.UUID, candidate Interval, existing []*Schedule, excludeID *uuid.UUID) []Conflict {
	type hit struct {
		conflict      Conflict
		existingStart time.Time
	}
	hits := make([]hit, 0)
	for _, s := range existing {
		if s.EquipmentID() != equipmentID {
			continue
		}
		if !s.BlocksEquipment() {
			continue
		}
		if excludeID != nil && s.ID() == *excludeID {
			continue
		}
		overlap, ok := candidate.Intersection(s.Slot())
		if !ok {
			continue
		}
		hits = append(hits, hit{
			conflict: Conflict{
				EquipmentID:           equipmentID,
				ConflictingScheduleID: s.ID(),
				OverlapStart:          overlap.Start(),
				OverlapEnd:            overlap.End(),
				OverlapHours:          overlap.Hours(),
				Type:                  classifyOverlap(candidate, s.Slot()),
			},
			existingStart: s.Slot().Start(),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].existingStart.Before(hits[j].existingStart)
	})
	conflicts := make([]Conflict, len(hits))
	for i, h := range hits {
		conflicts[i] = h.conflict
	}
	return conflicts
}

// full_overlap means one interval entirely contains the other (identical
// intervals included); any other intersection is partial.
func classifyOverlap(candidate, existing Interval) ConflictType {
	if existing.Contains(candidate) || candidate.Contains(existing) {
		return FullOverlap
	}
	return PartialOverlap
}
