package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"perfume-store/internal/models"
	"perfume-store/internal/utils"
)

type failingHasher struct{}

func (failingHasher) HashPassword(string) (string, error) {
	return "", errors.New("hash failed")
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	exists, err := store.GetUserByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	id, err := store.CreateUser(ctx, "b@example.com", "hash-b", models.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = store.CreateUser(ctx, "a@example.com", "hash-a", models.RoleAdmin)
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, "b@example.com", "other", models.RoleAdmin)
	assert.Error(t, err)

	user, err := store.GetUserWithCredentials(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash-b", user.PasswordHash)

	_, err = store.GetUserWithCredentials(ctx, "missing@example.com")
	assert.Error(t, err)

	list, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a@example.com", list[0].Email)
	assert.Empty(t, list[1].PasswordHash)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Администратор создается один раз", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		store := NewMemoryStore()

		require.NoError(t, EnsureAdmin(ctx, store, utils.BcryptPasswords{}, "admin@example.com", "admin123", zap.New(core)))
		require.NoError(t, EnsureAdmin(ctx, store, utils.BcryptPasswords{}, "admin@example.com", "admin123", zap.New(core)))

		user, err := store.GetUserWithCredentials(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NoError(t, utils.CheckPassword("admin123", user.PasswordHash))
		assert.Equal(t, 1, logs.FilterMessage("admin user created").Len())
	})

	t.Run("Пустой email", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, EnsureAdmin(ctx, store, failingHasher{}, "", "x", zap.NewNop()))

		list, _ := store.ListUsers(ctx)
		assert.Empty(t, list)
	})

	t.Run("Ошибка хеширования", func(t *testing.T) {
		err := EnsureAdmin(ctx, NewMemoryStore(), failingHasher{}, "admin@example.com", "x", zap.NewNop())
		assert.ErrorContains(t, err, "hash failed")
	})
}
