package commands

import (
	"context"
	"errors"

	"equipsched/internal/domain/equipment"
	reqdto "equipsched/internal/handler/dto/request"
	"equipsched/internal/infra"
	"equipsched/internal/infra/db"
	"equipsched/internal/pkg/errs"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateSerialNumber = errs.New("serial number already registered")

type EquipmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, e *equipment.Equipment) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*equipment.Equipment, error)
	Update(ctx context.Context, tx db.DBTX, e *equipment.Equipment) error
	Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type EquipmentCommands interface {
	Create(ctx context.Context, req reqdto.CreateEquipmentRequest) (*queries.EquipmentView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateEquipmentRequest) (*queries.EquipmentView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*queries.EquipmentView, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type equipmentCommandsImpl struct {
	equipmentRepo  EquipmentRepository
	equipmentStore queries.EquipmentReadStore
	pool           *pgxpool.Pool
}

func NewEquipmentCommands(
	equipmentRepo EquipmentRepository,
	equipmentStore queries.EquipmentReadStore,
	pool *pgxpool.Pool,
) EquipmentCommands {
	return &equipmentCommandsImpl{
		equipmentRepo:  equipmentRepo,
		equipmentStore: equipmentStore,
		pool:           pool,
	}
}

func (c *equipmentCommandsImpl) Create(ctx context.Context, req reqdto.CreateEquipmentRequest) (*queries.EquipmentView, error) {
	entity, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, c.equipmentRepo.Create(ctx, tx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateSerialNumber)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.equipmentStore.FindByID(ctx, entity.ID())
}

func (c *equipmentCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateEquipmentRequest) (*queries.EquipmentView, error) {
	_, err := db.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		entity, findErr := c.equipmentRepo.FindByID(ctx, tx, id)
		if findErr != nil {
			return struct{}{}, findErr
		}
		if updateErr := entity.UpdateDetails(req.Name, req.EquipmentType, req.Brand, req.Model, req.SerialNumber, req.HourlyRate); updateErr != nil {
			return struct{}{}, errs.Mark(updateErr, ErrDomainValidation)
		}
		return struct{}{}, c.equipmentRepo.Update(ctx, tx, entity)
	})
	if err != nil {
		return nil, c.mapEquipmentWriteError(err)
	}

	return c.equipmentStore.FindByID(ctx, id)
}

func (c *equipmentCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*queries.EquipmentView, error) {
	next, err := equipment.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = db.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		entity, findErr := c.equipmentRepo.FindByID(ctx, tx, id)
		if findErr != nil {
			return struct{}{}, findErr
		}
		if changeErr := entity.ChangeStatus(next); changeErr != nil {
			return struct{}{}, errs.Mark(changeErr, ErrDomainValidation)
		}
		return struct{}{}, c.equipmentRepo.Update(ctx, tx, entity)
	})
	if err != nil {
		return nil, c.mapEquipmentWriteError(err)
	}

	return c.equipmentStore.FindByID(ctx, id)
}

func (c *equipmentCommandsImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := db.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		if _, findErr := c.equipmentRepo.FindByID(ctx, tx, id); findErr != nil {
			return struct{}{}, findErr
		}
		return struct{}{}, c.equipmentRepo.Deactivate(ctx, tx, id)
	})
	if err != nil {
		return c.mapEquipmentWriteError(err)
	}
	return nil
}

func (c *equipmentCommandsImpl) mapEquipmentWriteError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrEquipmentNotFound)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrDuplicateSerialNumber)
	case errors.Is(err, ErrDomainValidation):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
