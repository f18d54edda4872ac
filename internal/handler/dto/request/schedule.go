package request

import (
	"strings"
	"time"

	"equipsched/internal/domain/schedule"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	EquipmentID uuid.UUID  `json:"equipment_id" binding:"required"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     time.Time  `json:"end_time" binding:"required"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	OperatorID  *uuid.UUID `json:"operator_id,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

func (r CreateScheduleRequest) ToDomain(createdBy uuid.UUID) (*schedule.Schedule, error) {
	slot, err := schedule.NewInterval(r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}

	notes, err := schedule.NewNotes(trimmedNotes(r.Notes))
	if err != nil {
		return nil, err
	}

	return schedule.NewSchedule(r.EquipmentID, slot, r.ProjectID, r.OperatorID, notes, createdBy), nil
}

type UpdateScheduleRequest struct {
	StartTime  time.Time  `json:"start_time" binding:"required"`
	EndTime    time.Time  `json:"end_time" binding:"required"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	OperatorID *uuid.UUID `json:"operator_id,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

type UpdateScheduleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled active completed cancelled"`
}

type CheckConflictsQuery struct {
	EquipmentID uuid.UUID  `form:"equipment_id" binding:"required"`
	StartTime   time.Time  `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime     time.Time  `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ExcludeID   *uuid.UUID `form:"exclude_id"`
}

type ListSchedulesQuery struct {
	EquipmentID *uuid.UUID `form:"equipment_id"`
	ProjectID   *uuid.UUID `form:"project_id"`
	OperatorID  *uuid.UUID `form:"operator_id"`
	Status      *string    `form:"status" binding:"omitempty,oneof=scheduled active completed cancelled"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit       int        `form:"limit"`
}

func trimmedNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	return strings.TrimSpace(*notes)
}
