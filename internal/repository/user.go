package repository

import (
	"context"

	"taskflow/internal/domain"
)

// UserRepository exposes persistence operations for User rows.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Delete removes the user and every task they own within one transaction.
	Delete(ctx context.Context, id int64) error
}
