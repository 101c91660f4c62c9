// Package storefront связывает каталог, корзину, оформление заказа, заказы,
// избранное, сравнение и уведомления в операции одной покупательской сессии.
// Операции одной сессии выполняются последовательно, каждое изменение
// сразу записывается в хранилище состояния.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"perfume-store/internal/catalog"
	"perfume-store/internal/checkout"
	"perfume-store/internal/models"
	"perfume-store/internal/orders"
	"perfume-store/internal/session"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// ProductRepository - хранилище каталога, в которое пишет админка и отзывы
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ImportProducts(ctx context.Context, items []models.ProductInput) (int, error)
	AddReview(ctx context.Context, productID int64, in models.CreateReviewRequest, now time.Time) (*models.Product, *models.Review, error)
	MarkReviewHelpful(ctx context.Context, productID int64, reviewID int, voter string) (*models.Review, error)
}

// Deps - зависимости сервиса
type Deps struct {
	Products ProductRepository
	Catalog  *catalog.Cache
	State    session.Store
	Orders   *orders.Store
	Pricing  checkout.Pricing
	Log      *zap.Logger
	// MaxDrafts ограничивает число черновиков оформления в памяти,
	// при переполнении вытесняется давно не использованный
	MaxDrafts int
}

// defaultMaxDrafts используется, если MaxDrafts не задан
const defaultMaxDrafts = 10000

// Service выполняет операции витрины
type Service struct {
	products ProductRepository
	catalog  *catalog.Cache
	state    session.Store
	orders   *orders.Store
	pricing  checkout.Pricing
	log      *zap.Logger
	now      func() time.Time

	locks keyedMutex

	drafts *lru.Cache
}

// New создает новый экземпляр Service
func New(deps Deps) *Service {
	size := deps.MaxDrafts
	if size <= 0 {
		size = defaultMaxDrafts
	}
	drafts, _ := lru.New(size)

	return &Service{
		products: deps.Products,
		catalog:  deps.Catalog,
		state:    deps.State,
		orders:   deps.Orders,
		pricing:  deps.Pricing,
		log:      deps.Log,
		now:      time.Now,
		locks:    keyedMutex{locks: make(map[string]*refLock)},
		drafts:   drafts,
	}
}

// load читает ключ состояния; отсутствующий ключ оставляет dst нулевым
func (s *Service) load(ctx context.Context, sessionID, key string, dst interface{}) error {
	rec, err := s.state.Load(ctx, sessionID, key)
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	return session.Decode(key, rec, dst)
}

// save сразу записывает ключ состояния
func (s *Service) save(ctx context.Context, sessionID, key string, v interface{}) error {
	rec, err := session.Encode(v)
	if err != nil {
		return err
	}
	if err := s.state.Save(ctx, sessionID, key, rec); err != nil {
		s.log.Error("failed to save session state",
			zap.String("session_id", sessionID),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Service) loadIDs(ctx context.Context, sessionID, key string) ([]int64, error) {
	ids := []int64{}
	if err := s.load(ctx, sessionID, key, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// productsByID возвращает ароматы из каталога в порядке ids, пропуская удаленные
func productsByID(products []models.Product, ids []int64) []models.Product {
	index := make(map[int64]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := index[id]; ok {
			p.Reviews = nil
			out = append(out, p)
		}
	}
	return out
}

// keyedMutex сериализует операции одной сессии, не блокируя другие
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
