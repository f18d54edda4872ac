package equipment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("equipment name is required")
	ErrEmptyType        = errors.New("equipment type is required")
	ErrNegativeRate     = errors.New("hourly rate cannot be negative")
	ErrEquipmentRetired = errors.New("equipment is retired")
)

// Equipment is a single schedulable machine in the fleet.
type Equipment struct {
	id            uuid.UUID
	name          string
	equipmentType string
	brand         *string
	model         *string
	serialNumber  *string
	hourlyRate    *float64
	status        Status
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewEquipment(name, equipmentType string, brand, model, serialNumber *string, hourlyRate *float64) (*Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	equipmentType = strings.TrimSpace(equipmentType)
	if equipmentType == "" {
		return nil, ErrEmptyType
	}
	if hourlyRate != nil && *hourlyRate < 0 {
		return nil, ErrNegativeRate
	}

	return &Equipment{
		id:            uuid.New(),
		name:          name,
		equipmentType: equipmentType,
		brand:         brand,
		model:         model,
		serialNumber:  serialNumber,
		hourlyRate:    hourlyRate,
		status:        StatusAvailable,
		isActive:      true,
	}, nil
}

func ReconstructEquipment(
	id uuid.UUID,
	name, equipmentType string,
	brand, model, serialNumber *string,
	hourlyRate *float64,
	status Status,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Equipment {
	return &Equipment{
		id:            id,
		name:          name,
		equipmentType: equipmentType,
		brand:         brand,
		model:         model,
		serialNumber:  serialNumber,
		hourlyRate:    hourlyRate,
		status:        status,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (e *Equipment) ID() uuid.UUID         { return e.id }
func (e *Equipment) Name() string          { return e.name }
func (e *Equipment) EquipmentType() string { return e.equipmentType }
func (e *Equipment) Brand() *string        { return e.brand }
func (e *Equipment) Model() *string        { return e.model }
func (e *Equipment) SerialNumber() *string { return e.serialNumber }
func (e *Equipment) HourlyRate() *float64  { return e.hourlyRate }
func (e *Equipment) Status() Status        { return e.status }
func (e *Equipment) IsActive() bool        { return e.isActive }
func (e *Equipment) CreatedAt() time.Time  { return e.createdAt }
func (e *Equipment) UpdatedAt() time.Time  { return e.updatedAt }

// IsSchedulable reports whether new bookings may target this equipment.
// Retired and deactivated machines are excluded; a machine under maintenance
// can still be booked for future dates.
func (e *Equipment) IsSchedulable() bool {
	return e.isActive && e.status != StatusRetired
}

func (e *Equipment) UpdateDetails(name, equipmentType string, brand, model, serialNumber *string, hourlyRate *float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	equipmentType = strings.TrimSpace(equipmentType)
	if equipmentType == "" {
		return ErrEmptyType
	}
	if hourlyRate != nil && *hourlyRate < 0 {
		return ErrNegativeRate
	}
	e.name = name
	e.equipmentType = equipmentType
	e.brand = brand
	e.model = model
	e.serialNumber = serialNumber
	e.hourlyRate = hourlyRate
	return nil
}

func (e *Equipment) ChangeStatus(next Status) error {
	if e.status == StatusRetired {
		return ErrEquipmentRetired
	}
	e.status = next
	return nil
}

func (e *Equipment) Deactivate() {
	e.isActive = false
}
