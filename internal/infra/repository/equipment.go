package repository

import (
	"context"

	"equipsched/internal/domain/equipment"
	"equipsched/internal/infra"
	"equipsched/internal/infra/db"
	"equipsched/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type EquipmentRepository struct{}

func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{}
}

func (r *EquipmentRepository) Create(ctx context.Context, tx db.DBTX, e *equipment.Equipment) error {
	query := `
		INSERT INTO equipment (
			id, name, equipment_type, brand, model, serial_number,
			hourly_rate, status, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		e.ID(), e.Name(), e.EquipmentType(),
		pgconv.StringPtrToPgtype(e.Brand()), pgconv.StringPtrToPgtype(e.Model()),
		pgconv.StringPtrToPgtype(e.SerialNumber()),
		e.HourlyRate(), e.Status().String(), e.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create equipment", err)
	}
	return nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*equipment.Equipment, error) {
	query := `
		SELECT id, name, equipment_type, brand, model, serial_number,
		       hourly_rate, status, is_active, created_at, updated_at
		FROM equipment
		WHERE id = $1`

	var (
		equipmentID   uuid.UUID
		name          string
		equipmentType string
		brand         pgtype.Text
		model         pgtype.Text
		serialNumber  pgtype.Text
		hourlyRate    pgtype.Numeric
		statusStr     string
		isActive      bool
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, query, id).Scan(
		&equipmentID, &name, &equipmentType, &brand, &model, &serialNumber,
		&hourlyRate, &statusStr, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment by ID", err)
	}

	rate, err := pgconv.Float64PtrFromNumeric(hourlyRate)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt hourly rate", err)
	}
	status, err := equipment.NewStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt equipment status", err)
	}

	return equipment.ReconstructEquipment(
		equipmentID, name, equipmentType,
		pgconv.StringPtrFromPgtype(brand), pgconv.StringPtrFromPgtype(model),
		pgconv.StringPtrFromPgtype(serialNumber),
		rate, status, isActive,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *EquipmentRepository) Update(ctx context.Context, tx db.DBTX, e *equipment.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $2,
		    equipment_type = $3,
		    brand = $4,
		    model = $5,
		    serial_number = $6,
		    hourly_rate = $7,
		    status = $8,
		    is_active = $9,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		e.ID(), e.Name(), e.EquipmentType(),
		pgconv.StringPtrToPgtype(e.Brand()), pgconv.StringPtrToPgtype(e.Model()),
		pgconv.StringPtrToPgtype(e.SerialNumber()),
		e.HourlyRate(), e.Status().String(), e.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update equipment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}

// Deactivate soft-deletes: existing schedules stay intact, new bookings are
// refused at the usecase layer.
func (r *EquipmentRepository) Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query := `
		UPDATE equipment
		SET is_active = false,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate equipment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}
