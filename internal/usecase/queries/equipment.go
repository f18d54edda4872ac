package queries

import (
	"context"

	"github.com/google/uuid"
)

type EquipmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error)
	List(ctx context.Context, onlyActive bool, limit int) ([]*EquipmentView, error)
}

type equipmentQueriesImpl struct {
	store EquipmentReadStore
}

func NewEquipmentQueries(store EquipmentReadStore) EquipmentQueries {
	return &equipmentQueriesImpl{store: store}
}

func (q *equipmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *equipmentQueriesImpl) List(ctx context.Context, onlyActive bool, limit int) ([]*EquipmentView, error) {
	return q.store.List(ctx, onlyActive, ValidateLimit(limit))
}
