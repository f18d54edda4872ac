//go:build unit || e2e

package builder

import (
	"time"

	domequipment "equipsched/internal/domain/equipment"
	reqdto "equipsched/internal/handler/dto/request"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
)

type EquipmentBuilder struct {
	ID            uuid.UUID
	Name          string
	EquipmentType string
	Brand         *string
	Model         *string
	SerialNumber  *string
	HourlyRate    *float64
	Status        string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewEquipmentBuilder() *EquipmentBuilder {
	now := time.Now()
	brand := "Caterpillar"
	model := "320 GC"
	serial := "CAT0320-" + uuid.NewString()[:8]
	rate := 185.50
	return &EquipmentBuilder{
		ID:            uuid.New(),
		Name:          "Excavator CAT 320",
		EquipmentType: "excavator",
		Brand:         &brand,
		Model:         &model,
		SerialNumber:  &serial,
		HourlyRate:    &rate,
		Status:        "available",
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Build methods
func (b *EquipmentBuilder) BuildDomain() *domequipment.Equipment {
	status, _ := domequipment.NewStatus(b.Status)
	return domequipment.ReconstructEquipment(
		b.ID, b.Name, b.EquipmentType,
		b.Brand, b.Model, b.SerialNumber, b.HourlyRate,
		status, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *EquipmentBuilder) BuildCreateRequestDTO() reqdto.CreateEquipmentRequest {
	return reqdto.CreateEquipmentRequest{
		Name:          b.Name,
		EquipmentType: b.EquipmentType,
		Brand:         b.Brand,
		Model:         b.Model,
		SerialNumber:  b.SerialNumber,
		HourlyRate:    b.HourlyRate,
	}
}

func (b *EquipmentBuilder) BuildUpdateRequestDTO() reqdto.UpdateEquipmentRequest {
	return reqdto.UpdateEquipmentRequest{
		Name:          b.Name,
		EquipmentType: b.EquipmentType,
		Brand:         b.Brand,
		Model:         b.Model,
		SerialNumber:  b.SerialNumber,
		HourlyRate:    b.HourlyRate,
	}
}

func (b *EquipmentBuilder) BuildViewQuery() *queries.EquipmentView {
	return &queries.EquipmentView{
		ID:            b.ID,
		Name:          b.Name,
		EquipmentType: b.EquipmentType,
		Brand:         b.Brand,
		Model:         b.Model,
		SerialNumber:  b.SerialNumber,
		HourlyRate:    b.HourlyRate,
		Status:        b.Status,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *EquipmentBuilder) WithID(id uuid.UUID) *EquipmentBuilder {
	b.ID = id
	return b
}

func (b *EquipmentBuilder) WithName(name string) *EquipmentBuilder {
	b.Name = name
	return b
}

func (b *EquipmentBuilder) WithEquipmentType(equipmentType string) *EquipmentBuilder {
	b.EquipmentType = equipmentType
	return b
}

func (b *EquipmentBuilder) WithStatus(status string) *EquipmentBuilder {
	b.Status = status
	return b
}

func (b *EquipmentBuilder) WithSerialNumber(serial string) *EquipmentBuilder {
	b.SerialNumber = &serial
	return b
}

func (b *EquipmentBuilder) AsRetired() *EquipmentBuilder {
	b.Status = "retired"
	return b
}

func (b *EquipmentBuilder) AsInactive() *EquipmentBuilder {
	b.IsActive = false
	return b
}
