package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"perfume-store/internal/models"
)

// MemoryRepository хранит каталог в памяти процесса (STORAGE_DRIVER=memory и тесты)
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	nextID   int64
}

// NewMemoryRepository создает репозиторий с начальным набором ароматов
func NewMemoryRepository(seed ...models.Product) *MemoryRepository {
	r := &MemoryRepository{
		products: make(map[int64]models.Product, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		if p.Reviews != nil {
			p.Rating, p.ReviewsCount = Summarize(p.Reviews)
		}
		r.products[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

// ListProducts возвращает ароматы в порядке id
func (r *MemoryRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// GetProduct возвращает аромат вместе с отзывами
func (r *MemoryRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return &p, nil
}

// CreateProduct добавляет аромат
func (r *MemoryRepository) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := in.Product(r.nextID)
	r.nextID++
	r.products[p.ID] = p
	return &p, nil
}

// UpdateProduct заменяет описание аромата, сохраняя отзывы и рейтинг
func (r *MemoryRepository) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}

	p := in.Product(id)
	p.Reviews = old.Reviews
	p.Rating = old.Rating
	p.ReviewsCount = old.ReviewsCount
	r.products[id] = p
	return &p, nil
}

// DeleteProduct удаляет аромат
func (r *MemoryRepository) DeleteProduct(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}

// ImportProducts добавляет пачку ароматов
func (r *MemoryRepository) ImportProducts(ctx context.Context, items []models.ProductInput) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, in := range items {
		p := in.Product(r.nextID)
		r.nextID++
		r.products[p.ID] = p
	}
	return len(items), nil
}

// AddReview добавляет отзыв и пересчитывает рейтинг под одной блокировкой
func (r *MemoryRepository) AddReview(ctx context.Context, productID int64, in models.CreateReviewRequest, now time.Time) (*models.Product, *models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	updated, review := AddReview(p, in, now)
	r.products[productID] = updated
	return &updated, &review, nil
}

// MarkReviewHelpful увеличивает счетчик полезности отзыва
func (r *MemoryRepository) MarkReviewHelpful(ctx context.Context, productID int64, reviewID int, voter string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	for i, review := range p.Reviews {
		if review.ID != reviewID {
			continue
		}
		voted, err := MarkHelpful(review, voter)
		if err != nil {
			return nil, err
		}
		reviews := make([]models.Review, len(p.Reviews))
		copy(reviews, p.Reviews)
		reviews[i] = voted
		p.Reviews = reviews
		r.products[productID] = p
		return &voted, nil
	}

	return nil, fmt.Errorf("review %d of product %d: %w", reviewID, productID, ErrReviewNotFound)
}
