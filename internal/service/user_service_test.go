package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
	"taskflow/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, sqlite.NewUserRepository(db).Init(ctx))
	require.NoError(t, sqlite.NewTaskRepository(db).Init(ctx))
	return db
}

func seedAdmin(t *testing.T, users repository.UserRepository, username string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{Username: username, PasswordHash: string(hash), Role: domain.RoleAdmin}
	_, err = users.Create(context.Background(), admin)
	require.NoError(t, err)
	return admin
}

func TestRegister_AlwaysUserRole(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	svc := NewUserService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secretpw")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, registered.Role)
	assert.Empty(t, registered.PasswordHash)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secretpw")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(sqlite.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secretpw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "otherpw")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_EmptyFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(sqlite.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secretpw")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "alice", "")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(sqlite.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secretpw")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "secretpw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Authenticate(ctx, "alice", "wrongpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown usernames fail identically, never as not-found
	_, err = svc.Authenticate(ctx, "ghost", "secretpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDelete_SelfGuard(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	svc := NewUserService(users)

	admin := seedAdmin(t, users, "admin")

	_, err := svc.Delete(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDelete)
}

func TestDelete_OtherUser(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	svc := NewUserService(users)
	ctx := context.Background()

	admin := seedAdmin(t, users, "admin")
	alice, err := svc.Register(ctx, "alice", "secretpw")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, alice.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", deleted.Username)

	_, err = users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_Missing(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	svc := NewUserService(users)

	admin := seedAdmin(t, users, "admin")

	_, err := svc.Delete(context.Background(), admin.ID+100, admin.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestList_HidesHashes(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	svc := NewUserService(users)
	ctx := context.Background()

	seedAdmin(t, users, "admin")
	_, err := svc.Register(ctx, "alice", "secretpw")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, u := range all {
		assert.Empty(t, u.PasswordHash)
	}
}
