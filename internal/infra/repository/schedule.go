package repository

import (
	"context"

	"equipsched/internal/domain/schedule"
	"equipsched/internal/infra"
	"equipsched/internal/infra/db"
	"equipsched/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleRepository struct{}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

func (r *ScheduleRepository) Create(ctx context.Context, tx db.DBTX, s *schedule.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, equipment_id, start_time, end_time, status,
			project_id, operator_id, notes, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		s.ID(), s.EquipmentID(), s.Slot().Start(), s.Slot().End(), s.Status().String(),
		pgconv.UUIDPtrToPgtype(s.ProjectID()), pgconv.UUIDPtrToPgtype(s.OperatorID()),
		notesToPgtype(s.Notes()), s.CreatedBy(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create schedule", err)
	}
	return nil
}

// FindByIDForUpdate locks the row for the rest of the transaction so status
// transitions and reschedules read a stable state.
func (r *ScheduleRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*schedule.Schedule, error) {
	query := `
		SELECT id, equipment_id, start_time, end_time, status,
		       project_id, operator_id, notes, created_by, created_at, updated_at
		FROM schedules
		WHERE id = $1
		FOR UPDATE`

	var (
		scheduleID  uuid.UUID
		equipmentID uuid.UUID
		startTime   pgtype.Timestamptz
		endTime     pgtype.Timestamptz
		statusStr   string
		projectID   pgtype.UUID
		operatorID  pgtype.UUID
		notesText   pgtype.Text
		createdBy   uuid.UUID
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, query, id).Scan(
		&scheduleID, &equipmentID, &startTime, &endTime, &statusStr,
		&projectID, &operatorID, &notesText, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find schedule for update", err)
	}

	slot, err := schedule.NewInterval(pgconv.TimeFromPgtype(startTime), pgconv.TimeFromPgtype(endTime))
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt schedule interval", err)
	}
	status, err := schedule.NewStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt schedule status", err)
	}
	notesValue := ""
	if s := pgconv.StringPtrFromPgtype(notesText); s != nil {
		notesValue = *s
	}
	notes, err := schedule.NewNotes(notesValue)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt schedule notes", err)
	}

	return schedule.ReconstructSchedule(
		scheduleID, equipmentID, slot, status,
		pgconv.UUIDPtrFromPgtype(projectID), pgconv.UUIDPtrFromPgtype(operatorID),
		notes, createdBy,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *ScheduleRepository) Update(ctx context.Context, tx db.DBTX, s *schedule.Schedule) error {
	query := `
		UPDATE schedules
		SET start_time = $2,
		    end_time = $3,
		    project_id = $4,
		    operator_id = $5,
		    notes = $6,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		s.ID(), s.Slot().Start(), s.Slot().End(),
		pgconv.UUIDPtrToPgtype(s.ProjectID()), pgconv.UUIDPtrToPgtype(s.OperatorID()),
		notesToPgtype(s.Notes()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update schedule", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("schedule not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ScheduleRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status schedule.Status) error {
	query := `
		UPDATE schedules
		SET status = $2,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update schedule status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("schedule not found", nil, infra.KindNotFound)
	}
	return nil
}

func notesToPgtype(n schedule.Notes) pgtype.Text {
	if n.IsEmpty() {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(n.String())
}
