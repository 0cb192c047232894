package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/repository"
	"taskflow/internal/repository/sqlite"
)

func TestTaskCreate(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	svc := NewTaskService(sqlite.NewTaskRepository(db))
	ctx := context.Background()

	alice := seedAdmin(t, users, "alice")

	task, err := svc.Create(ctx, alice.ID, "write report", "quarterly numbers", false)
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, alice.ID, task.OwnerID)

	_, err = svc.Create(ctx, alice.ID, "", "", false)
	assert.Error(t, err)
}

func TestTaskUpdate_FullReplace(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	tasks := sqlite.NewTaskRepository(db)
	svc := NewTaskService(tasks)
	ctx := context.Background()

	alice := seedAdmin(t, users, "alice")
	task, err := svc.Create(ctx, alice.ID, "draft", "long description", false)
	require.NoError(t, err)

	// description is replaced, not merged
	updated, err := svc.Update(ctx, task.ID, "final", "", true)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Empty(t, updated.Description)
	assert.True(t, updated.Completed)
	assert.Equal(t, alice.ID, updated.OwnerID)
}

func TestTaskUpdate_Missing(t *testing.T) {
	db := newTestDB(t)
	tasks := sqlite.NewTaskRepository(db)
	svc := NewTaskService(tasks)
	ctx := context.Background()

	_, err := svc.Update(ctx, 99, "x", "", false)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskDelete_Missing(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(sqlite.NewTaskRepository(db))

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskStats_Scoping(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	userSvc := NewUserService(users)
	svc := NewTaskService(sqlite.NewTaskRepository(db))
	ctx := context.Background()

	admin := seedAdmin(t, users, "admin")
	alice, err := userSvc.Register(ctx, "alice", "secretpw")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, alice.ID, "done", "", true)
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, alice.ID, "open", "", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin.ID, "admin task", "", false)
	require.NoError(t, err)

	scoped, err := svc.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(4), scoped.Total)
	assert.Equal(t, int64(3), scoped.Completed)
	assert.Equal(t, "75.00%", scoped.CompletionRate())

	global, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(5), global.Total)
	assert.Equal(t, int64(2), global.Pending)
}
