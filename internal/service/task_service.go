package service

import (
	"context"
	"errors"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

// TaskService coordinates task level operations backed by the repository.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, title, description string, completed bool) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id int64, title, description string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	// Stats counts tasks scoped to the user, or globally for admins.
	Stats(ctx context.Context, user *domain.User) (*domain.TaskStats, error)
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ownerID int64, title, description string, completed bool) (*domain.Task, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}

	task := &domain.Task{
		Title:       title,
		Description: description,
		Completed:   completed,
		OwnerID:     ownerID,
	}

	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *taskService) ListAll(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

// Update replaces title, description and completed wholesale; it never touches
// the owner.
func (s *taskService) Update(ctx context.Context, id int64, title, description string, completed bool) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Completed = completed

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) Stats(ctx context.Context, user *domain.User) (*domain.TaskStats, error) {
	var ownerID *int64
	if !user.IsAdmin() {
		ownerID = &user.ID
	}
	return s.tasks.Stats(ctx, ownerID)
}
