package request

import (
	"time"

	"equipsched/internal/domain/equipment"
)

type CreateEquipmentRequest struct {
	Name          string   `json:"name" binding:"required"`
	EquipmentType string   `json:"equipment_type" binding:"required"`
	Brand         *string  `json:"brand,omitempty"`
	Model         *string  `json:"model,omitempty"`
	SerialNumber  *string  `json:"serial_number,omitempty"`
	HourlyRate    *float64 `json:"hourly_rate,omitempty"`
}

func (r CreateEquipmentRequest) ToDomain() (*equipment.Equipment, error) {
	return equipment.NewEquipment(r.Name, r.EquipmentType, r.Brand, r.Model, r.SerialNumber, r.HourlyRate)
}

type UpdateEquipmentRequest struct {
	Name          string   `json:"name" binding:"required"`
	EquipmentType string   `json:"equipment_type" binding:"required"`
	Brand         *string  `json:"brand,omitempty"`
	Model         *string  `json:"model,omitempty"`
	SerialNumber  *string  `json:"serial_number,omitempty"`
	HourlyRate    *float64 `json:"hourly_rate,omitempty"`
}

type UpdateEquipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available in_use maintenance retired"`
}

// Date-granular range, both ends inclusive.
type AvailabilityQuery struct {
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02"`
}

type StatisticsQuery struct {
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02"`
}

type ListEquipmentQuery struct {
	OnlyActive bool `form:"only_active"`
	Limit      int  `form:"limit"`
}
