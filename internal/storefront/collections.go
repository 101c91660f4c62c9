package storefront

import (
	"context"

	"perfume-store/internal/collections"
	"perfume-store/internal/models"
	"perfume-store/internal/session"
)

// Wishlist возвращает избранные ароматы
func (s *Service) Wishlist(ctx context.Context, sessionID string) ([]models.Product, error) {
	ids, err := s.loadIDs(ctx, sessionID, session.KeyWishlist)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	return productsByID(products, ids), nil
}

// ToggleWishlist добавляет аромат в избранное или убирает его оттуда
func (s *Service) ToggleWishlist(ctx context.Context, sessionID string, productID int64) (*models.ToggleResponse, error) {
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	ids, err := s.loadIDs(ctx, sessionID, session.KeyWishlist)
	if err != nil {
		return nil, err
	}
	ids, added := collections.Toggle(ids, productID)
	if err := s.save(ctx, sessionID, session.KeyWishlist, ids); err != nil {
		return nil, err
	}

	toast := &models.Toast{Title: "Удалено из избранного", Description: product.Name}
	if added {
		toast.Title = "Добавлено в избранное"
	}
	return &models.ToggleResponse{IDs: ids, Added: added, Toast: toast}, nil
}

// Comparison возвращает ароматы в сравнении и их общие ноты
func (s *Service) Comparison(ctx context.Context, sessionID string) (*models.ComparisonResponse, error) {
	ids, err := s.loadIDs(ctx, sessionID, session.KeyComparison)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	selected := productsByID(products, ids)
	return &models.ComparisonResponse{
		Products:    selected,
		SharedNotes: collections.SharedNotes(selected),
	}, nil
}

// ToggleComparison добавляет аромат в сравнение или убирает его.
// При заполненном сравнении возвращает collections.ErrComparisonFull.
func (s *Service) ToggleComparison(ctx context.Context, sessionID string, productID int64) (*models.ToggleResponse, error) {
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	ids, err := s.loadIDs(ctx, sessionID, session.KeyComparison)
	if err != nil {
		return nil, err
	}
	ids, added, err := collections.ToggleBounded(ids, productID, collections.MaxComparison)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, session.KeyComparison, ids); err != nil {
		return nil, err
	}

	toast := &models.Toast{Title: "Удалено из сравнения", Description: product.Name}
	if added {
		toast.Title = "Добавлено к сравнению"
	}
	return &models.ToggleResponse{IDs: ids, Added: added, Toast: toast}, nil
}
