package commands

import (
	"context"
	"errors"
	"fmt"

	"equipsched/internal/domain/schedule"
	reqdto "equipsched/internal/handler/dto/request"
	"equipsched/internal/infra"
	"equipsched/internal/infra/db"
	"equipsched/internal/pkg/errs"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEquipmentNotFound       = errs.New("equipment not found")
	ErrEquipmentNotSchedulable = errs.New("equipment cannot be scheduled")
	ErrScheduleNotFound        = errs.New("schedule not found")
	ErrScheduleConflict        = errs.New("schedule conflict")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError carries every detected overlap so the handler can return the
// full list alongside the 409.
type ConflictError struct {
	Conflicts []schedule.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflicts with %d existing schedule(s)", len(e.Conflicts))
}

type ScheduleRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *schedule.Schedule) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*schedule.Schedule, error)
	Update(ctx context.Context, tx db.DBTX, s *schedule.Schedule) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status schedule.Status) error
}

type ScheduleCommands interface {
	Create(ctx context.Context, req reqdto.CreateScheduleRequest, createdBy uuid.UUID) (*queries.ScheduleView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateScheduleRequest) (*queries.ScheduleView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*queries.ScheduleView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type scheduleCommandsImpl struct {
	scheduleRepo  ScheduleRepository
	equipmentRepo EquipmentRepository
	scheduleStore queries.ScheduleReadStore
	pool          *pgxpool.Pool
}

func NewScheduleCommands(
	scheduleRepo ScheduleRepository,
	equipmentRepo EquipmentRepository,
	scheduleStore queries.ScheduleReadStore,
	pool *pgxpool.Pool,
) ScheduleCommands {
	return &scheduleCommandsImpl{
		scheduleRepo:  scheduleRepo,
		equipmentRepo: equipmentRepo,
		scheduleStore: scheduleStore,
		pool:          pool,
	}
}

func (c *scheduleCommandsImpl) Create(ctx context.Context, req reqdto.CreateScheduleRequest, createdBy uuid.UUID) (*queries.ScheduleView, error) {
	entity, err := req.ToDomain(createdBy)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.ensureSchedulable(ctx, entity.EquipmentID()); err != nil {
		return nil, err
	}

	if err := c.checkConflicts(ctx, entity.EquipmentID(), entity.Slot(), nil); err != nil {
		return nil, err
	}

	_, err = db.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, c.scheduleRepo.Create(ctx, tx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// A concurrent writer won the exclusion constraint race.
			return nil, errs.Mark(err, ErrScheduleConflict)
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.Mark(err, ErrEquipmentNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.scheduleStore.FindByID(ctx, entity.ID())
}

func (c *scheduleCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateScheduleRequest) (*queries.ScheduleView, error) {
	slot, err := schedule.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	notes, err := schedule.NewNotes(stringOrEmpty(req.Notes))
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = db.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		entity, findErr := c.scheduleRepo.FindByIDForUpdate(ctx, tx, id)
		if findErr != nil {
			return struct{}{}, findErr
		}

		if rescheduleErr := entity.Reschedule(slot); rescheduleErr != nil {
			return struct{}{}, errs.Mark(rescheduleErr, ErrDomainValidation)
		}
		if detailsErr := entity.UpdateDetails(req.ProjectID, req.OperatorID, notes); detailsErr != nil {
			return struct{}{}, errs.Mark(detailsErr, ErrDomainValidation)
		}

		if conflictErr := c.checkConflicts(ctx, entity.EquipmentID(), slot, &id); conflictErr != nil {
			return struct{}{}, conflictErr
		}

		return struct{}{}, c.scheduleRepo.Update(ctx, tx, entity)
	})
	if err != nil {
		return nil, c.mapWriteError(err)
	}

	return c.scheduleStore.FindByID(ctx, id)
}

func (c *scheduleCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*queries.ScheduleView, error) {
	next, err := schedule.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = db.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		entity, findErr := c.scheduleRepo.FindByIDForUpdate(ctx, tx, id)
		if findErr != nil {
			return struct{}{}, findErr
		}
		if transitionErr := entity.Transition(next); transitionErr != nil {
			return struct{}{}, errs.Mark(transitionErr, ErrDomainValidation)
		}
		return struct{}{}, c.scheduleRepo.UpdateStatus(ctx, tx, id, entity.Status())
	})
	if err != nil {
		return nil, c.mapWriteError(err)
	}

	return c.scheduleStore.FindByID(ctx, id)
}

func (c *scheduleCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	_, err := db.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		entity, findErr := c.scheduleRepo.FindByIDForUpdate(ctx, tx, id)
		if findErr != nil {
			return struct{}{}, findErr
		}
		if cancelErr := entity.Cancel(); cancelErr != nil {
			return struct{}{}, errs.Mark(cancelErr, ErrDomainValidation)
		}
		return struct{}{}, c.scheduleRepo.UpdateStatus(ctx, tx, id, entity.Status())
	})
	if err != nil {
		return c.mapWriteError(err)
	}
	return nil
}

func (c *scheduleCommandsImpl) ensureSchedulable(ctx context.Context, equipmentID uuid.UUID) error {
	entity, err := c.equipmentRepo.FindByID(ctx, c.pool, equipmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrEquipmentNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !entity.IsSchedulable() {
		return ErrEquipmentNotSchedulable
	}
	return nil
}

// checkConflicts runs the pure engine over the current snapshot. Two
// concurrent writers can both pass here; the exclusion constraint on the
// schedules table settles the race at commit time.
func (c *scheduleCommandsImpl) checkConflicts(ctx context.Context, equipmentID uuid.UUID, slot schedule.Interval, excludeID *uuid.UUID) error {
	existing, err := c.scheduleStore.FindBlockingByEquipment(ctx, equipmentID, slot.Start(), slot.End())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result, err := schedule.ValidateCandidate(schedule.Candidate{
		EquipmentID: equipmentID,
		Slot:        slot,
		ExcludeID:   excludeID,
	}, existing)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if !result.OK() {
		return &ConflictError{Conflicts: result.Conflicts}
	}
	return nil
}

func (c *scheduleCommandsImpl) mapWriteError(err error) error {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return err
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrScheduleNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrScheduleConflict)
	case errors.Is(err, ErrDomainValidation):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
