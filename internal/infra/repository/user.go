package repository

import (
	"context"

	"equipsched/internal/infra"
	"equipsched/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query := `
		UPDATE users
		SET last_login = now(),
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
