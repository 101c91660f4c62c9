// Package session хранит состояние покупателя по ключам: корзину, избранное,
// сравнение, просмотренные ароматы, уведомления и профиль. Каждый ключ
// сохраняется отдельно в конверте с номером версии формата.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Ключи состояния сессии
const (
	KeyCart           = "cart"
	KeyWishlist       = "wishlist"
	KeyComparison     = "comparison"
	KeyRecentlyViewed = "recentlyViewed"
	KeyNotifications  = "notifications"
	KeyProfile        = "profile"
)

// Keys перечисляет все ключи состояния
var Keys = []string{KeyCart, KeyWishlist, KeyComparison, KeyRecentlyViewed, KeyNotifications, KeyProfile}

// ErrNotFound - ключ еще не сохранялся
var ErrNotFound = errors.New("session state not found")

// Record - сохраненное значение ключа
type Record struct {
	Version int             `json:"version" db:"version"`
	Payload json.RawMessage `json:"payload" db:"payload"`
}

// Store - хранилище состояния сессий. Каждое сохранение пишется сразу.
type Store interface {
	Load(ctx context.Context, sessionID, key string) (Record, error)
	Save(ctx context.Context, sessionID, key string, rec Record) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore хранит состояние в памяти процесса
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]Record
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]Record)}
}

// Load возвращает копию сохраненного значения
func (s *MemoryStore) Load(ctx context.Context, sessionID, key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[sessionID][key]
	if !ok {
		return Record{}, fmt.Errorf("%s/%s: %w", sessionID, key, ErrNotFound)
	}
	rec.Payload = append(json.RawMessage(nil), rec.Payload...)
	return rec, nil
}

// Save заменяет значение ключа
func (s *MemoryStore) Save(ctx context.Context, sessionID, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.data[sessionID]
	if !ok {
		keys = make(map[string]Record)
		s.data[sessionID] = keys
	}
	rec.Payload = append(json.RawMessage(nil), rec.Payload...)
	keys[key] = rec
	return nil
}

// Delete удаляет все ключи сессии
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, sessionID)
	return nil
}
