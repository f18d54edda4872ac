package schedule

import (
	"github.com/google/uuid"
)

// Candidate is a proposed booking to validate before it is handed to the
// persistence layer. ExcludeID is set when editing an existing schedule so
// the unchanged record does not conflict with itself.
type Candidate struct {
	EquipmentID uuid.UUID
	Slot        Interval
	ExcludeID   *uuid.UUID
}

// ValidationResult carries the complete conflict list for a candidate. An
// empty list means the candidate may be booked; callers decide whether a
// non-empty list blocks submission or merely warns.
type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) OK() bool {
	return len(r.Conflicts) == 0
}

// ValidateCandidate is the single pre-persistence gate for create and update
// flows. It rejects an inverted or empty interval with ErrInvalidInterval
// before any conflict search runs, then reports every overlap with the
// blocking schedules of the same equipment.
//
// This is a deterministic pre-check, not a concurrency guarantee: two writers
// validating against the same snapshot can both pass. The schedules table
// carries an exclusion constraint on (equipment_id, slot) so the database
// re-validates atomically at commit time.
func ValidateCandidate(candidate Candidate, existing []*Schedule) (ValidationResult, error) {
	if !candidate.Slot.End().After(candidate.Slot.Start()) {
		return ValidationResult{}, ErrInvalidInterval
	}
	conflicts := FindConflicts(candidate.EquipmentID, candidate.Slot, existing, candidate.ExcludeID)
	return ValidationResult{Conflicts: conflicts}, nil
}
