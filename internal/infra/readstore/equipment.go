package readstore

import (
	"context"

	"equipsched/internal/infra"
	"equipsched/internal/infra/db"
	"equipsched/internal/pkg/pgconv"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type EquipmentReadStore struct {
	db db.DBTX
}

func NewEquipmentReadStore(db db.DBTX) *EquipmentReadStore {
	return &EquipmentReadStore{db: db}
}

const equipmentColumns = `
	id, name, equipment_type, brand, model, serial_number, hourly_rate,
	status, is_active, created_at, updated_at`

func (r *EquipmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EquipmentView, error) {
	query := `
		SELECT` + equipmentColumns + `
		FROM equipment
		WHERE id = $1`

	view, err := scanEquipmentView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment by ID", err)
	}
	return view, nil
}

func (r *EquipmentReadStore) List(ctx context.Context, onlyActive bool, limit int) ([]*queries.EquipmentView, error) {
	query := `
		SELECT` + equipmentColumns + `
		FROM equipment`
	if onlyActive {
		query += `
		WHERE is_active`
	}
	query += `
		ORDER BY name, id
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list equipment", err)
	}
	defer rows.Close()

	views := make([]*queries.EquipmentView, 0)
	for rows.Next() {
		view, scanErr := scanEquipmentView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan equipment row", scanErr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate equipment rows", err)
	}
	return views, nil
}

func scanEquipmentView(row rowScanner) (*queries.EquipmentView, error) {
	var (
		view         queries.EquipmentView
		brand        pgtype.Text
		model        pgtype.Text
		serialNumber pgtype.Text
		hourlyRate   pgtype.Numeric
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.Name, &view.EquipmentType,
		&brand, &model, &serialNumber, &hourlyRate,
		&view.Status, &view.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rate, err := pgconv.Float64PtrFromNumeric(hourlyRate)
	if err != nil {
		return nil, err
	}

	view.Brand = pgconv.StringPtrFromPgtype(brand)
	view.Model = pgconv.StringPtrFromPgtype(model)
	view.SerialNumber = pgconv.StringPtrFromPgtype(serialNumber)
	view.HourlyRate = rate
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
