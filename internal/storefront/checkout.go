package storefront

import (
	"context"
	"fmt"
	"strings"

	"perfume-store/internal/checkout"
	"perfume-store/internal/metrics"
	"perfume-store/internal/models"
	"perfume-store/internal/notifications"
	"perfume-store/internal/session"

	"go.uber.org/zap"
)

// draft возвращает черновик оформления сессии, создавая его по профилю.
// Черновик живет только в памяти: закрытие мастера теряет только его.
// Черновики давно не заходивших сессий вытесняются.
func (s *Service) draft(ctx context.Context, sessionID string) (*checkout.Wizard, error) {
	if v, ok := s.drafts.Get(sessionID); ok {
		return v.(*checkout.Wizard), nil
	}

	profile, err := s.Profile(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	w := checkout.NewWizard(profile)
	s.drafts.Add(sessionID, w)
	return w, nil
}

func (s *Service) setDraft(sessionID string, w *checkout.Wizard) {
	s.drafts.Add(sessionID, w)
}

// withDraft выполняет fn над черновиком под блокировкой сессии и возвращает состояние мастера
func (s *Service) withDraft(ctx context.Context, sessionID string, fn func(w *checkout.Wizard)) (*models.CheckoutResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	w, err := s.draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		fn(w)
	}

	view, err := s.cartView(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := w.View(view, s.pricing)
	return &resp, nil
}

// Checkout возвращает состояние мастера оформления
func (s *Service) Checkout(ctx context.Context, sessionID string) (*models.CheckoutResponse, error) {
	return s.withDraft(ctx, sessionID, nil)
}

// SetCheckoutContact сохраняет контакты в черновик
func (s *Service) SetCheckoutContact(ctx context.Context, sessionID string, c models.ContactInfo) (*models.CheckoutResponse, error) {
	return s.withDraft(ctx, sessionID, func(w *checkout.Wizard) { w.SetContact(c) })
}

// SetCheckoutDelivery сохраняет способ доставки и оплаты в черновик
func (s *Service) SetCheckoutDelivery(ctx context.Context, sessionID string, d models.DeliveryInfo) (*models.CheckoutResponse, error) {
	return s.withDraft(ctx, sessionID, func(w *checkout.Wizard) { w.SetDelivery(d) })
}

// CheckoutNext переходит на следующий шаг. Если шаг не заполнен,
// переход не выполняется, а в ответе перечислены незаполненные поля.
func (s *Service) CheckoutNext(ctx context.Context, sessionID string) (*models.CheckoutResponse, error) {
	return s.withDraft(ctx, sessionID, func(w *checkout.Wizard) { w.Next() })
}

// CheckoutBack возвращает на предыдущий шаг
func (s *Service) CheckoutBack(ctx context.Context, sessionID string) (*models.CheckoutResponse, error) {
	return s.withDraft(ctx, sessionID, func(w *checkout.Wizard) { w.Back() })
}

// ApplyPromo применяет промокод к черновику
func (s *Service) ApplyPromo(ctx context.Context, sessionID, code string) (*models.CheckoutResponse, error) {
	return s.withDraft(ctx, sessionID, func(w *checkout.Wizard) { w.ApplyPromo(code, s.pricing) })
}

// AbandonCheckout закрывает мастер. Корзина не меняется.
func (s *Service) AbandonCheckout(ctx context.Context, sessionID string) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	s.drafts.Remove(sessionID)
}

// CompleteCheckout оформляет заказ: сохраняет его, очищает корзину,
// добавляет одно уведомление и запоминает контакты в профиле.
func (s *Service) CompleteCheckout(ctx context.Context, sessionID string) (*models.CompleteCheckoutResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	w, err := s.draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := s.cartView(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	saved, err := s.Profile(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	profile := profileFromCheckout(saved, w.Contact(), w.Delivery())

	// Черновик меняется только после того, как заказ сохранен
	next := *w
	order, err := next.Complete(checkout.CompleteInput{
		SessionID: sessionID,
		Cart:      view,
		Pricing:   s.pricing,
		Now:       s.now(),
		Profile:   profile,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	metrics.OrderCreated()
	s.setDraft(sessionID, &next)

	if err := s.save(ctx, sessionID, session.KeyCart, []models.CartLine{}); err != nil {
		return nil, fmt.Errorf("order %s created, cart not cleared: %w", order.ID, err)
	}

	note := notifications.OrderPlaced(order, order.CreatedAt)
	if err := s.push(ctx, sessionID, note); err != nil {
		return nil, fmt.Errorf("order %s created, notification not saved: %w", order.ID, err)
	}

	if err := s.save(ctx, sessionID, session.KeyProfile, profile); err != nil {
		s.log.Warn("failed to save profile after checkout", zap.String("session_id", sessionID), zap.Error(err))
	}

	return &models.CompleteCheckoutResponse{Order: order, Notification: note}, nil
}

// При самовывозе сохраненный адрес остается прежним
func profileFromCheckout(profile models.Profile, c models.ContactInfo, d models.DeliveryInfo) models.Profile {
	profile.Name = strings.TrimSpace(c.Name)
	profile.Email = strings.TrimSpace(c.Email)
	profile.Phone = strings.TrimSpace(c.Phone)
	if d.Method == models.DeliveryCourier {
		profile.Address = strings.TrimSpace(d.Address)
	}
	return profile
}
