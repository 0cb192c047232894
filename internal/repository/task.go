package repository

import (
	"context"

	"taskflow/internal/domain"
)

// TaskRepository exposes persistence operations for Task rows.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	// Update replaces title, description and completed wholesale.
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	// Stats counts tasks for one owner, or globally when ownerID is nil.
	Stats(ctx context.Context, ownerID *int64) (*domain.TaskStats, error)
}
