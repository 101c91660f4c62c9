package users

import (
	"context"
	"fmt"

	"perfume-store/internal/models"

	"go.uber.org/zap"
)

// Store - хранилище пользователей админки
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, passwordHash, role string) (string, error)
}

// Hasher хеширует пароль перед сохранением
type Hasher interface {
	HashPassword(password string) (string, error)
}

// EnsureAdmin создает администратора с указанным email, если его еще нет.
// Пустой email отключает создание.
func EnsureAdmin(ctx context.Context, store Store, hasher Hasher, email, password string, log *zap.Logger) error {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}

	exists, err := store.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := hasher.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	id, err := store.CreateUser(ctx, email, hash, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("admin user created", zap.String("id", id), zap.String("email", email))
	return nil
}
