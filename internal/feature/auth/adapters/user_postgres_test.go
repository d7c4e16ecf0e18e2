package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktracker/internal/feature/auth/domain/entity"
	"tasktracker/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// Create User table
	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestNewUserPostgres(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserPostgres(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserPostgres_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := &entity.User{Name: "Alice", Email: "alice@example.com", Password: "hashed-password"}
		err := repo.Create(context.Background(), user)

		require.NoError(t, err)
		assert.NotZero(t, user.ID, "expected an assigned ID")
	})

	t.Run("duplicate email returns ErrEmailAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		first := &entity.User{Name: "Alice", Email: "alice@example.com", Password: "hash-a"}
		require.NoError(t, repo.Create(context.Background(), first))

		// Same email, different name and password
		second := &entity.User{Name: "Bob", Email: "alice@example.com", Password: "hash-b"}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		created := &entity.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByEmail(context.Background(), "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Alice", found.Name)
	})

	t.Run("unknown email returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		created := &entity.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", found.Email)
	})

	t.Run("unknown id returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		_, err := repo.FindByID(context.Background(), 12345)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
