package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ScheduleView struct {
	ID            uuid.UUID  `json:"id"`
	EquipmentID   uuid.UUID  `json:"equipment_id"`
	EquipmentName string     `json:"equipment_name"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Status        string     `json:"status"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	OperatorID    *uuid.UUID `json:"operator_id,omitempty"`
	OperatorName  *string    `json:"operator_name,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ScheduleListItem struct {
	ID            uuid.UUID `json:"id"`
	EquipmentID   uuid.UUID `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type EquipmentView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	EquipmentType string    `json:"equipment_type"`
	Brand         *string   `json:"brand,omitempty"`
	Model         *string   `json:"model,omitempty"`
	SerialNumber  *string   `json:"serial_number,omitempty"`
	HourlyRate    *float64  `json:"hourly_rate,omitempty"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	FullName string    `json:"full_name"`
	IsActive bool      `json:"is_active"`
}

// ScheduleFilters narrows schedule listings. Nil fields are ignored.
type ScheduleFilters struct {
	EquipmentID *uuid.UUID
	ProjectID   *uuid.UUID
	OperatorID  *uuid.UUID
	Status      *string
	From        *time.Time
	To          *time.Time
}

// EquipmentStatistics summarizes scheduling load for one equipment over a
// queried period.
type EquipmentStatistics struct {
	EquipmentID             uuid.UUID `json:"equipment_id"`
	TotalSchedules          int       `json:"total_schedules"`
	ActiveSchedules         int       `json:"active_schedules"`
	UpcomingSchedules       int       `json:"upcoming_schedules"`
	CompletedSchedules      int       `json:"completed_schedules"`
	CancelledSchedules      int       `json:"cancelled_schedules"`
	ScheduledHours          float64   `json:"scheduled_hours"`
	UtilizationRate         float64   `json:"utilization_rate"`
	AverageScheduleDuration float64   `json:"average_schedule_duration"`
}

const MaxListLimit = 200

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
