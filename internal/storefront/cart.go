package storefront

import (
	"context"
	"fmt"

	"perfume-store/internal/cart"
	"perfume-store/internal/models"
	"perfume-store/internal/session"
)

func (s *Service) loadCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	if err := s.load(ctx, sessionID, session.KeyCart, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Service) lookup(ctx context.Context) (cart.Lookup, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	return cart.IndexProducts(products), nil
}

func (s *Service) cartView(ctx context.Context, sessionID string) (models.CartView, error) {
	lines, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}
	lookup, err := s.lookup(ctx)
	if err != nil {
		return models.CartView{}, err
	}
	return cart.Price(lines, lookup), nil
}

// Cart возвращает корзину по текущим ценам каталога
func (s *Service) Cart(ctx context.Context, sessionID string) (models.CartView, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	return s.cartView(ctx, sessionID)
}

// mutateCart применяет изменение к корзине и сразу сохраняет ее целиком
func (s *Service) mutateCart(ctx context.Context, sessionID string, fn func([]models.CartLine, cart.Lookup) ([]models.CartLine, error)) (models.CartView, error) {
	lookup, err := s.lookup(ctx)
	if err != nil {
		return models.CartView{}, err
	}
	lines, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}
	lines, err = fn(lines, lookup)
	if err != nil {
		return models.CartView{}, err
	}
	if err := s.save(ctx, sessionID, session.KeyCart, lines); err != nil {
		return models.CartView{}, err
	}
	return cart.Price(lines, lookup), nil
}

// AddToCart добавляет аромат в корзину
func (s *Service) AddToCart(ctx context.Context, sessionID string, productID int64) (*models.CartResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	var name string
	view, err := s.mutateCart(ctx, sessionID, func(lines []models.CartLine, lookup cart.Lookup) ([]models.CartLine, error) {
		if p, ok := lookup(productID); ok {
			name = p.Name
		}
		return cart.AddItem(lines, productID, lookup)
	})
	if err != nil {
		return nil, err
	}

	return &models.CartResponse{
		Cart: view,
		Toast: &models.Toast{
			Title:       "Добавлено в корзину",
			Description: name,
		},
	}, nil
}

// SetCartQuantity задает количество; ноль и меньше удаляют позицию
func (s *Service) SetCartQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*models.CartResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	view, err := s.mutateCart(ctx, sessionID, func(lines []models.CartLine, lookup cart.Lookup) ([]models.CartLine, error) {
		return cart.SetQuantity(lines, productID, qty, lookup)
	})
	if err != nil {
		return nil, err
	}
	return &models.CartResponse{Cart: view}, nil
}

// RemoveFromCart удаляет позицию
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*models.CartResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	view, err := s.mutateCart(ctx, sessionID, func(lines []models.CartLine, _ cart.Lookup) ([]models.CartLine, error) {
		return cart.RemoveItem(lines, productID), nil
	})
	if err != nil {
		return nil, err
	}
	return &models.CartResponse{
		Cart:  view,
		Toast: &models.Toast{Title: "Удалено из корзины"},
	}, nil
}

// ClearCart очищает корзину
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.save(ctx, sessionID, session.KeyCart, []models.CartLine{}); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return &models.CartResponse{Cart: cart.Price(nil, cart.IndexProducts(nil))}, nil
}
