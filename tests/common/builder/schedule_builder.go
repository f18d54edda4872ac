//go:build unit || e2e

package builder

import (
	"time"

	domschedule "equipsched/internal/domain/schedule"
	reqdto "equipsched/internal/handler/dto/request"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleBuilder struct {
	ID            uuid.UUID
	EquipmentID   uuid.UUID
	EquipmentName string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	ProjectID     *uuid.UUID
	OperatorID    *uuid.UUID
	OperatorName  *string
	Notes         *string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewScheduleBuilder() *ScheduleBuilder {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	notes := "Routine excavation work"
	return &ScheduleBuilder{
		ID:            uuid.New(),
		EquipmentID:   uuid.New(),
		EquipmentName: "Excavator CAT 320",
		StartTime:     start,
		EndTime:       start.Add(4 * time.Hour),
		Status:        "scheduled",
		Notes:         &notes,
		CreatedBy:     uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Build methods
func (b *ScheduleBuilder) BuildDomain() *domschedule.Schedule {
	slot, _ := domschedule.NewInterval(b.StartTime, b.EndTime)
	notes, _ := domschedule.NewNotes(derefOrEmpty(b.Notes))
	status, _ := domschedule.NewStatus(b.Status)
	return domschedule.ReconstructSchedule(
		b.ID, b.EquipmentID, slot, status,
		b.ProjectID, b.OperatorID, notes,
		b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ScheduleBuilder) BuildCreateRequestDTO() reqdto.CreateScheduleRequest {
	return reqdto.CreateScheduleRequest{
		EquipmentID: b.EquipmentID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		ProjectID:   b.ProjectID,
		OperatorID:  b.OperatorID,
		Notes:       b.Notes,
	}
}

func (b *ScheduleBuilder) BuildUpdateRequestDTO() reqdto.UpdateScheduleRequest {
	return reqdto.UpdateScheduleRequest{
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		ProjectID:  b.ProjectID,
		OperatorID: b.OperatorID,
		Notes:      b.Notes,
	}
}

func (b *ScheduleBuilder) BuildViewQuery() *queries.ScheduleView {
	return &queries.ScheduleView{
		ID:            b.ID,
		EquipmentID:   b.EquipmentID,
		EquipmentName: b.EquipmentName,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		ProjectID:     b.ProjectID,
		OperatorID:    b.OperatorID,
		OperatorName:  b.OperatorName,
		Notes:         b.Notes,
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *ScheduleBuilder) BuildListItem() *queries.ScheduleListItem {
	return &queries.ScheduleListItem{
		ID:            b.ID,
		EquipmentID:   b.EquipmentID,
		EquipmentName: b.EquipmentName,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

// Fluent builder methods
func (b *ScheduleBuilder) WithID(id uuid.UUID) *ScheduleBuilder {
	b.ID = id
	return b
}

func (b *ScheduleBuilder) WithEquipmentID(equipmentID uuid.UUID) *ScheduleBuilder {
	b.EquipmentID = equipmentID
	return b
}

func (b *ScheduleBuilder) WithSlot(start, end time.Time) *ScheduleBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ScheduleBuilder) WithStatus(status string) *ScheduleBuilder {
	b.Status = status
	return b
}

func (b *ScheduleBuilder) WithNotes(notes string) *ScheduleBuilder {
	b.Notes = &notes
	return b
}

func (b *ScheduleBuilder) WithOperatorID(operatorID uuid.UUID) *ScheduleBuilder {
	b.OperatorID = &operatorID
	return b
}

func (b *ScheduleBuilder) WithCreatedBy(createdBy uuid.UUID) *ScheduleBuilder {
	b.CreatedBy = createdBy
	return b
}

func (b *ScheduleBuilder) AsCancelled() *ScheduleBuilder {
	b.Status = "cancelled"
	return b
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
