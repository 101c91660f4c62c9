package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"perfume-store/internal/cart"
	"perfume-store/internal/collections"
	"perfume-store/internal/models"
)

// CurrentVersion - текущая версия формата всех ключей.
// Версия 0 - значение в том виде, в каком его хранила старая витрина в localStorage.
const CurrentVersion = 1

// ErrUnsupportedVersion - значение записано более новой версией сервиса
var ErrUnsupportedVersion = errors.New("unsupported state version")

// Migration переводит значение ключа из версии v в v+1
type Migration func(payload json.RawMessage) (json.RawMessage, error)

// migrations[key][v] переводит версию v в v+1
var migrations = map[string][]Migration{
	KeyCart:           {migrateCartV0},
	KeyWishlist:       {migrateIDsV0(0)},
	KeyComparison:     {migrateIDsV0(collections.MaxComparison)},
	KeyRecentlyViewed: {migrateIDsV0(collections.MaxRecentlyViewed)},
	KeyNotifications:  {migrateNotificationsV0},
	KeyProfile:        {migrateProfileV0},
}

// Encode упаковывает значение в конверт текущей версии
func Encode(v interface{}) (Record, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode state: %w", err)
	}
	return Record{Version: CurrentVersion, Payload: payload}, nil
}

// Decode применяет миграции до текущей версии и распаковывает значение в dst
func Decode(key string, rec Record, dst interface{}) error {
	if rec.Version > CurrentVersion || rec.Version < 0 {
		return fmt.Errorf("%s version %d: %w", key, rec.Version, ErrUnsupportedVersion)
	}

	payload := rec.Payload
	steps := migrations[key]
	for v := rec.Version; v < CurrentVersion; v++ {
		if v >= len(steps) {
			break
		}
		migrated, err := steps[v](payload)
		if err != nil {
			return fmt.Errorf("failed to migrate %s from version %d: %w", key, v, err)
		}
		payload = migrated
	}

	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Legacy оборачивает значение из localStorage в конверт версии 0
func Legacy(payload json.RawMessage) Record {
	return Record{Version: 0, Payload: payload}
}

func isNull(payload json.RawMessage) bool {
	return len(payload) == 0 || string(payload) == "null"
}

// Старая корзина хранила позиции вместе с описанием аромата,
// лишние поля отбрасываются, повторы объединяются.
func migrateCartV0(payload json.RawMessage) (json.RawMessage, error) {
	var lines []models.CartLine
	if !isNull(payload) {
		if err := json.Unmarshal(payload, &lines); err != nil {
			return nil, err
		}
	}
	return json.Marshal(cart.Normalize(lines))
}

func migrateIDsV0(limit int) Migration {
	return func(payload json.RawMessage) (json.RawMessage, error) {
		var ids []int64
		if !isNull(payload) {
			if err := json.Unmarshal(payload, &ids); err != nil {
				return nil, err
			}
		}
		ids = collections.Dedupe(ids)
		if limit > 0 && len(ids) > limit {
			ids = ids[:limit]
		}
		return json.Marshal(ids)
	}
}

func migrateNotificationsV0(payload json.RawMessage) (json.RawMessage, error) {
	var feed []models.Notification
	if !isNull(payload) {
		if err := json.Unmarshal(payload, &feed); err != nil {
			return nil, err
		}
	}
	out := make([]models.Notification, 0, len(feed))
	for _, n := range feed {
		if n.ID == "" {
			continue
		}
		out = append(out, n)
	}
	return json.Marshal(out)
}

func migrateProfileV0(payload json.RawMessage) (json.RawMessage, error) {
	var profile models.Profile
	if !isNull(payload) {
		if err := json.Unmarshal(payload, &profile); err != nil {
			return nil, err
		}
	}
	return json.Marshal(profile)
}
