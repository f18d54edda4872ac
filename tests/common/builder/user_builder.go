//go:build unit || e2e

package builder

import (
	reqdto "equipsched/internal/handler/dto/request"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID       uuid.UUID
	Email    string
	Password string
	Role     string
	FullName string
	IsActive bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		Email:    "operator@example.com",
		Password: "password123",
		Role:     "operator",
		FullName: "Test Operator",
		IsActive: true,
	}
}

// Build methods
func (b *UserBuilder) BuildLoginRequestDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    b.Email,
		Password: b.Password,
	}
}

func (b *UserBuilder) BuildAuthorizedView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       b.ID,
		Email:    b.Email,
		Role:     b.Role,
		FullName: b.FullName,
		IsActive: b.IsActive,
	}
}

// Fluent builder methods
func (b *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	b.ID = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.Role = role
	return b
}

func (b *UserBuilder) AsInactive() *UserBuilder {
	b.IsActive = false
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Role = "admin"
	return b
}
