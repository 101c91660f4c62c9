package storefront

import (
	"context"
	"fmt"

	"perfume-store/internal/catalog"
	"perfume-store/internal/collections"
	"perfume-store/internal/models"
	"perfume-store/internal/session"
)

// ListProducts фильтрует и сортирует каталог
func (s *Service) ListProducts(ctx context.Context, q models.ProductListQuery) ([]models.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	result := catalog.FilterAndSort(products, catalog.NewCriteria(q))
	for i := range result {
		result[i].Reviews = nil
	}
	return result, nil
}

// Facets возвращает значения для фильтров каталога
func (s *Service) Facets(ctx context.Context) (models.FacetsResponse, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return models.FacetsResponse{}, err
	}
	return catalog.Facets(products), nil
}

// ViewProduct возвращает аромат и записывает просмотр в недавно просмотренные.
// Без сессии просмотр не записывается.
func (s *Service) ViewProduct(ctx context.Context, sessionID string, id int64) (*models.Product, error) {
	product, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		return product, nil
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	viewed, err := s.loadIDs(ctx, sessionID, session.KeyRecentlyViewed)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, session.KeyRecentlyViewed, collections.RecentlyViewed(viewed, id)); err != nil {
		return nil, err
	}
	return product, nil
}

// RecentlyViewed возвращает недавно просмотренные ароматы, последние первыми
func (s *Service) RecentlyViewed(ctx context.Context, sessionID string) ([]models.Product, error) {
	ids, err := s.loadIDs(ctx, sessionID, session.KeyRecentlyViewed)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	return productsByID(products, ids), nil
}

// Reviews возвращает отзывы аромата в выбранном порядке
func (s *Service) Reviews(ctx context.Context, productID int64, sort catalog.ReviewSort) ([]models.Review, error) {
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return catalog.SortReviews(product.Reviews, sort), nil
}

// AddReview добавляет отзыв; рейтинг пересчитывается вместе с добавлением
func (s *Service) AddReview(ctx context.Context, productID int64, in models.CreateReviewRequest) (*models.Product, *models.Review, error) {
	product, review, err := s.products.AddReview(ctx, productID, in, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add review: %w", err)
	}
	s.catalog.Invalidate()
	return product, review, nil
}

// MarkReviewHelpful засчитывает голос «отзыв полезен»
func (s *Service) MarkReviewHelpful(ctx context.Context, productID int64, reviewID int, voter string) (*models.Review, error) {
	review, err := s.products.MarkReviewHelpful(ctx, productID, reviewID, voter)
	if err != nil {
		return nil, fmt.Errorf("failed to mark review helpful: %w", err)
	}
	s.catalog.Invalidate()
	return review, nil
}

// Recommendations собирает подборку для покупателя. productID - открытая
// карточка аромата, 0 вне карточки.
func (s *Service) Recommendations(ctx context.Context, sessionID string, productID int64) (*models.Recommendations, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	in := catalog.RecommendInput{}
	if productID != 0 {
		current, err := s.catalog.Product(ctx, productID)
		if err != nil {
			return nil, err
		}
		in.Current = current
	}

	lines, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		in.Cart = append(in.Cart, line.ProductID)
	}
	if in.Wishlist, err = s.loadIDs(ctx, sessionID, session.KeyWishlist); err != nil {
		return nil, err
	}
	if in.RecentlyViewed, err = s.loadIDs(ctx, sessionID, session.KeyRecentlyViewed); err != nil {
		return nil, err
	}

	rec := catalog.Recommend(products, in)
	return &rec, nil
}
