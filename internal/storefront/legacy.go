package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"perfume-store/internal/cart"
	"perfume-store/internal/models"
	"perfume-store/internal/notifications"
	"perfume-store/internal/orders"
	"perfume-store/internal/session"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Ключи, под которыми старая витрина хранила профиль
var legacyProfileKeys = map[string]func(p *models.Profile, v string){
	"userName":    func(p *models.Profile, v string) { p.Name = v },
	"userEmail":   func(p *models.Profile, v string) { p.Email = v },
	"userPhone":   func(p *models.Profile, v string) { p.Phone = v },
	"userAddress": func(p *models.Profile, v string) { p.Address = v },
}

const legacyOrdersKey = "orders"

// ImportLegacy переносит состояние из localStorage старой витрины.
// Каждый ключ переносится независимо; ошибки ключей возвращаются в Failed.
func (s *Service) ImportLegacy(ctx context.Context, sessionID string, req models.ImportStateRequest) (*models.ImportStateResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	resp := &models.ImportStateResponse{Imported: []string{}, Failed: map[string]string{}}
	fail := func(key string, err error) {
		resp.Failed[key] = err.Error()
	}

	for _, key := range session.Keys {
		raw, ok := req[key]
		if !ok {
			continue
		}
		value, err := decodeLegacy(key, raw)
		if err != nil {
			fail(key, err)
			continue
		}
		if err := s.save(ctx, sessionID, key, value); err != nil {
			return nil, err
		}
		resp.Imported = append(resp.Imported, key)
	}

	if profile, ok, err := legacyProfile(req); err != nil {
		fail(session.KeyProfile, err)
	} else if ok {
		if err := s.save(ctx, sessionID, session.KeyProfile, profile); err != nil {
			return nil, err
		}
		resp.Imported = append(resp.Imported, session.KeyProfile)
	}

	if raw, ok := req[legacyOrdersKey]; ok {
		n, err := s.importLegacyOrders(ctx, sessionID, raw)
		resp.Orders = n
		if err != nil {
			fail(legacyOrdersKey, err)
		}
		if n > 0 {
			resp.Imported = append(resp.Imported, legacyOrdersKey)
		}
	}

	if len(resp.Failed) == 0 {
		resp.Failed = nil
	}
	sort.Strings(resp.Imported)
	return resp, nil
}

func decodeLegacy(key string, raw json.RawMessage) (interface{}, error) {
	rec := session.Legacy(raw)
	switch key {
	case session.KeyCart:
		lines := []models.CartLine{}
		if err := session.Decode(key, rec, &lines); err != nil {
			return nil, err
		}
		return lines, nil
	case session.KeyNotifications:
		feed := []models.Notification{}
		if err := session.Decode(key, rec, &feed); err != nil {
			return nil, err
		}
		return feed, nil
	case session.KeyProfile:
		var profile models.Profile
		if err := session.Decode(key, rec, &profile); err != nil {
			return nil, err
		}
		return profile, nil
	default:
		ids := []int64{}
		if err := session.Decode(key, rec, &ids); err != nil {
			return nil, err
		}
		return ids, nil
	}
}

func legacyProfile(req models.ImportStateRequest) (models.Profile, bool, error) {
	var (
		profile models.Profile
		found   bool
		errs    error
	)
	for key, set := range legacyProfileKeys {
		raw, ok := req[key]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		set(&profile, v)
		found = true
	}
	return profile, found, errs
}

// Старые заказы проверяются по позициям и сохраняются только для чтения.
// Повторный перенос в той же сессии ничего не добавляет.
func (s *Service) importLegacyOrders(ctx context.Context, sessionID string, raw json.RawMessage) (int, error) {
	var legacy []models.Order
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return 0, err
	}

	var errs error
	imported := 0
	for _, order := range legacy {
		order, err := orders.FromLegacy(sessionID, order, s.now())
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := s.orders.Create(ctx, order); err != nil {
			if !errors.Is(err, orders.ErrDuplicateOrder) {
				errs = multierr.Append(errs, err)
			}
			continue
		}
		imported++
	}
	if errs != nil {
		s.log.Warn("legacy orders rejected",
			zap.String("session_id", sessionID),
			zap.Int("imported", imported),
			zap.Error(errs),
		)
	}
	return imported, errs
}

// Snapshot собирает все состояние сессии. Ключи читаются независимо:
// ошибки чтения отдельных ключей объединяются, прочитанное возвращается.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (*models.SessionSnapshot, error) {
	snap := &models.SessionSnapshot{
		Wishlist:       []int64{},
		Comparison:     []int64{},
		RecentlyViewed: []int64{},
		Orders:         []models.Order{},
	}

	var errs error
	lines, err := s.loadCart(ctx, sessionID)
	errs = multierr.Append(errs, err)
	if lookup, err := s.lookup(ctx); err == nil {
		snap.Cart = cart.Price(lines, lookup)
	} else {
		errs = multierr.Append(errs, err)
	}

	for key, dst := range map[string]*[]int64{
		session.KeyWishlist:       &snap.Wishlist,
		session.KeyComparison:     &snap.Comparison,
		session.KeyRecentlyViewed: &snap.RecentlyViewed,
	} {
		ids, err := s.loadIDs(ctx, sessionID, key)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		*dst = ids
	}

	feed, err := s.loadFeed(ctx, sessionID)
	errs = multierr.Append(errs, err)
	snap.Notifications = notifications.View(feed)

	snap.Profile, err = s.Profile(ctx, sessionID)
	errs = multierr.Append(errs, err)

	list, err := s.orders.ListBySession(ctx, sessionID)
	if err == nil {
		snap.Orders = list
	}
	errs = multierr.Append(errs, err)

	return snap, errs
}
