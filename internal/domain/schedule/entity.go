package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid schedule status")
	ErrScheduleCancelled = errors.New("schedule is already cancelled")
	ErrScheduleCompleted = errors.New("completed schedule cannot be modified")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotesTooLong      = errors.New("notes must be 1000 characters or fewer")
)

const maxNotesLength = 1000

// Schedule reserves one piece of equipment for a half-open time interval.
type Schedule struct {
	id          uuid.UUID
	equipmentID uuid.UUID
	slot        Interval
	status      Status
	projectID   *uuid.UUID
	operatorID  *uuid.UUID
	notes       Notes
	createdBy   uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSchedule(equipmentID uuid.UUID, slot Interval, projectID, operatorID *uuid.UUID, notes Notes, createdBy uuid.UUID) *Schedule {
	return &Schedule{
		id:          uuid.New(),
		equipmentID: equipmentID,
		slot:        slot,
		status:      StatusScheduled,
		projectID:   projectID,
		operatorID:  operatorID,
		notes:       notes,
		createdBy:   createdBy,
	}
}

func ReconstructSchedule(
	id, equipmentID uuid.UUID,
	slot Interval,
	status Status,
	projectID, operatorID *uuid.UUID,
	notes Notes,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Schedule {
	return &Schedule{
		id:          id,
		equipmentID: equipmentID,
		slot:        slot,
		status:      status,
		projectID:   projectID,
		operatorID:  operatorID,
		notes:       notes,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Schedule) ID() uuid.UUID          { return s.id }
func (s *Schedule) EquipmentID() uuid.UUID { return s.equipmentID }
func (s *Schedule) Slot() Interval         { return s.slot }
func (s *Schedule) Status() Status         { return s.status }
func (s *Schedule) ProjectID() *uuid.UUID  { return s.projectID }
func (s *Schedule) OperatorID() *uuid.UUID { return s.operatorID }
func (s *Schedule) Notes() Notes           { return s.notes }
func (s *Schedule) CreatedBy() uuid.UUID   { return s.createdBy }
func (s *Schedule) CreatedAt() time.Time   { return s.createdAt }
func (s *Schedule) UpdatedAt() time.Time   { return s.updatedAt }

func (s *Schedule) IsCancelled() bool {
	return s.status == StatusCancelled
}

// BlocksEquipment reports whether this schedule occupies its equipment for
// conflict purposes. Cancelled schedules never block.
func (s *Schedule) BlocksEquipment() bool {
	return s.status != StatusCancelled
}

func (s *Schedule) Reschedule(slot Interval) error {
	switch s.status {
	case StatusCancelled:
		return ErrScheduleCancelled
	case StatusCompleted:
		return ErrScheduleCompleted
	}
	s.slot = slot
	return nil
}

// UpdateDetails replaces the assignment fields that do not affect conflict
// detection.
func (s *Schedule) UpdateDetails(projectID, operatorID *uuid.UUID, notes Notes) error {
	switch s.status {
	case StatusCancelled:
		return ErrScheduleCancelled
	case StatusCompleted:
		return ErrScheduleCompleted
	}
	s.projectID = projectID
	s.operatorID = operatorID
	s.notes = notes
	return nil
}

func (s *Schedule) Cancel() error {
	if s.status == StatusCancelled {
		return ErrScheduleCancelled
	}
	if s.status == StatusCompleted {
		return ErrScheduleCompleted
	}
	s.status = StatusCancelled
	return nil
}

// Transition enforces the forward-only lifecycle
// scheduled -> active -> completed, with cancellation allowed from any
// non-terminal state.
func (s *Schedule) Transition(next Status) error {
	if next == StatusCancelled {
		return s.Cancel()
	}
	allowed := map[Status][]Status{
		StatusScheduled: {StatusActive, StatusCompleted},
		StatusActive:    {StatusCompleted},
	}
	for _, candidate := range allowed[s.status] {
		if candidate == next {
			s.status = next
			return nil
		}
	}
	return ErrInvalidTransition
}

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	if len(value) > maxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: value}, nil
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}
