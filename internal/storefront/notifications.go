package storefront

import (
	"context"

	"perfume-store/internal/models"
	"perfume-store/internal/notifications"
	"perfume-store/internal/session"
)

func (s *Service) loadFeed(ctx context.Context, sessionID string) ([]models.Notification, error) {
	feed := []models.Notification{}
	if err := s.load(ctx, sessionID, session.KeyNotifications, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// push добавляет уведомление в ленту; вызывается под блокировкой сессии
func (s *Service) push(ctx context.Context, sessionID string, n models.Notification) error {
	feed, err := s.loadFeed(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, session.KeyNotifications, notifications.Push(feed, n))
}

// Notifications возвращает ленту и число непрочитанных
func (s *Service) Notifications(ctx context.Context, sessionID string) (models.NotificationsResponse, error) {
	feed, err := s.loadFeed(ctx, sessionID)
	if err != nil {
		return models.NotificationsResponse{}, err
	}
	return notifications.View(feed), nil
}

// MarkNotificationRead помечает уведомление прочитанным
func (s *Service) MarkNotificationRead(ctx context.Context, sessionID, id string) (models.NotificationsResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	feed, err := s.loadFeed(ctx, sessionID)
	if err != nil {
		return models.NotificationsResponse{}, err
	}
	feed, err = notifications.MarkRead(feed, id)
	if err != nil {
		return models.NotificationsResponse{}, err
	}
	if err := s.save(ctx, sessionID, session.KeyNotifications, feed); err != nil {
		return models.NotificationsResponse{}, err
	}
	return notifications.View(feed), nil
}

// MarkAllNotificationsRead помечает всю ленту прочитанной
func (s *Service) MarkAllNotificationsRead(ctx context.Context, sessionID string) (models.NotificationsResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	feed, err := s.loadFeed(ctx, sessionID)
	if err != nil {
		return models.NotificationsResponse{}, err
	}
	feed = notifications.MarkAllRead(feed)
	if err := s.save(ctx, sessionID, session.KeyNotifications, feed); err != nil {
		return models.NotificationsResponse{}, err
	}
	return notifications.View(feed), nil
}

// ClearNotifications очищает ленту
func (s *Service) ClearNotifications(ctx context.Context, sessionID string) (models.NotificationsResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	feed := notifications.ClearAll()
	if err := s.save(ctx, sessionID, session.KeyNotifications, feed); err != nil {
		return models.NotificationsResponse{}, err
	}
	return notifications.View(feed), nil
}

// Profile возвращает данные для автозаполнения
func (s *Service) Profile(ctx context.Context, sessionID string) (models.Profile, error) {
	var profile models.Profile
	err := s.load(ctx, sessionID, session.KeyProfile, &profile)
	return profile, err
}

// UpdateProfile сохраняет данные профиля
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, profile models.Profile) (models.Profile, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.save(ctx, sessionID, session.KeyProfile, profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}
