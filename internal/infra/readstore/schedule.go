package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equipsched/internal/domain/schedule"
	"equipsched/internal/infra"
	"equipsched/internal/infra/db"
	"equipsched/internal/pkg/pgconv"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(db db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: db}
}

const scheduleViewColumns = `
	s.id, s.equipment_id, e.name, s.start_time, s.end_time, s.status,
	s.project_id, s.operator_id, u.full_name, s.notes, s.created_by,
	s.created_at, s.updated_at`

func (r *ScheduleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ScheduleView, error) {
	query := `
		SELECT` + scheduleViewColumns + `
		FROM schedules s
		JOIN equipment e ON e.id = s.equipment_id
		LEFT JOIN users u ON u.id = s.operator_id
		WHERE s.id = $1`

	row := r.db.QueryRow(ctx, query, id)
	view, err := scanScheduleView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find schedule by ID", err)
	}
	return view, nil
}

func (r *ScheduleReadStore) List(ctx context.Context, filters queries.ScheduleFilters, limit int) ([]*queries.ScheduleListItem, error) {
	var (
		conds []string
		args  []any
	)
	addCond := func(expr string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filters.EquipmentID != nil {
		addCond("s.equipment_id = $%d", *filters.EquipmentID)
	}
	if filters.ProjectID != nil {
		addCond("s.project_id = $%d", *filters.ProjectID)
	}
	if filters.OperatorID != nil {
		addCond("s.operator_id = $%d", *filters.OperatorID)
	}
	if filters.Status != nil {
		addCond("s.status = $%d", *filters.Status)
	}
	// Half-open period filter: a schedule matches when it intersects [from, to).
	if filters.From != nil {
		addCond("s.end_time > $%d", *filters.From)
	}
	if filters.To != nil {
		addCond("s.start_time < $%d", *filters.To)
	}

	query := `
		SELECT s.id, s.equipment_id, e.name, s.start_time, s.end_time, s.status, s.created_at
		FROM schedules s
		JOIN equipment e ON e.id = s.equipment_id`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf("\n\t\tORDER BY s.start_time DESC, s.id\n\t\tLIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedules", err)
	}
	defer rows.Close()

	items := make([]*queries.ScheduleListItem, 0)
	for rows.Next() {
		var (
			item      queries.ScheduleListItem
			startTime pgtype.Timestamptz
			endTime   pgtype.Timestamptz
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&item.ID, &item.EquipmentID, &item.EquipmentName,
			&startTime, &endTime, &item.Status, &createdAt,
		); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule row", scanErr)
		}
		item.StartTime = pgconv.TimeFromPgtype(startTime)
		item.EndTime = pgconv.TimeFromPgtype(endTime)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate schedule rows", err)
	}
	return items, nil
}

// FindBlockingByEquipment loads the non-cancelled schedules of one equipment
// that intersect the half-open window [from, to), reconstructed as domain
// entities for the conflict engine.
func (r *ScheduleReadStore) FindBlockingByEquipment(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) ([]*schedule.Schedule, error) {
	query := `
		SELECT id, equipment_id, start_time, end_time, status,
		       project_id, operator_id, notes, created_by, created_at, updated_at
		FROM schedules
		WHERE equipment_id = $1
		  AND status != 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, equipmentID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load blocking schedules", err)
	}
	defer rows.Close()

	schedules := make([]*schedule.Schedule, 0)
	for rows.Next() {
		entity, scanErr := scanScheduleEntity(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking schedule", scanErr)
		}
		schedules = append(schedules, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocking schedules", err)
	}
	return schedules, nil
}

func (r *ScheduleReadStore) CountByStatus(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM schedules
		WHERE equipment_id = $1
		  AND start_time < $3
		  AND end_time > $2
		GROUP BY status`

	rows, err := r.db.Query(ctx, query, equipmentID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count schedules by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if scanErr := rows.Scan(&status, &count); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", scanErr)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheduleView(row rowScanner) (*queries.ScheduleView, error) {
	var (
		view         queries.ScheduleView
		startTime    pgtype.Timestamptz
		endTime      pgtype.Timestamptz
		projectID    pgtype.UUID
		operatorID   pgtype.UUID
		operatorName pgtype.Text
		notes        pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.EquipmentID, &view.EquipmentName,
		&startTime, &endTime, &view.Status,
		&projectID, &operatorID, &operatorName, &notes, &view.CreatedBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.StartTime = pgconv.TimeFromPgtype(startTime)
	view.EndTime = pgconv.TimeFromPgtype(endTime)
	view.ProjectID = pgconv.UUIDPtrFromPgtype(projectID)
	view.OperatorID = pgconv.UUIDPtrFromPgtype(operatorID)
	view.OperatorName = pgconv.StringPtrFromPgtype(operatorName)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func scanScheduleEntity(row rowScanner) (*schedule.Schedule, error) {
	var (
		id          uuid.UUID
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
	err := row.Scan(
		&id, &equipmentID, &startTime, &endTime, &statusStr,
		&projectID, &operatorID, &notesText, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot, err := schedule.NewInterval(pgconv.TimeFromPgtype(startTime), pgconv.TimeFromPgtype(endTime))
	if err != nil {
		return nil, err
	}
	status, err := schedule.NewStatus(statusStr)
	if err != nil {
		return nil, err
	}
	notesValue := ""
	if s := pgconv.StringPtrFromPgtype(notesText); s != nil {
		notesValue = *s
	}
	notes, err := schedule.NewNotes(notesValue)
	if err != nil {
		return nil, err
	}

	return schedule.ReconstructSchedule(
		id, equipmentID, slot, status,
		pgconv.UUIDPtrFromPgtype(projectID), pgconv.UUIDPtrFromPgtype(operatorID),
		notes, createdBy,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
