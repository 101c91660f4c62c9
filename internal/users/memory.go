// Package users хранит пользователей панели администратора без базы данных
// и создает администратора при первом запуске.
package users

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"perfume-store/internal/models"

	"github.com/google/uuid"
)

// MemoryStore хранит пользователей в памяти процесса (STORAGE_DRIVER=memory)
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

// NewMemoryStore создает пустое хранилище пользователей
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]models.User)}
}

// GetUserByEmail проверяет, существует ли пользователь с таким email
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

// CreateUser сохраняет пользователя и возвращает его id
func (s *MemoryStore) CreateUser(ctx context.Context, email, passwordHash, role string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return "", fmt.Errorf("%s: %w", email, ErrEmailTaken)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
	}
	s.byEmail[email] = user
	return user.ID, nil
}

// GetUserWithCredentials возвращает пользователя вместе с хешем пароля
func (s *MemoryStore) GetUserWithCredentials(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrUserNotFound)
	}
	return &user, nil
}

// ListUsers возвращает пользователей в порядке email без хешей паролей
func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.User, 0, len(s.byEmail))
	for _, u := range s.byEmail {
		u.PasswordHash = ""
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}
