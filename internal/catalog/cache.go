package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"perfume-store/internal/metrics"
	"perfume-store/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrCatalogUnavailable возвращается, когда каталог не удалось загрузить
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Source - источник списка ароматов
type Source interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Cache хранит список ароматов ttl с момента загрузки. Свежий кеш
// не обращается к источнику. Ошибка загрузки не повторяется автоматически.
type Cache struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger

	group singleflight.Group

	mu        sync.RWMutex
	products  []models.Product
	fetchedAt time.Time
	loaded    bool
	// generation растет при каждом Invalidate; загрузка, начатая
	// в прошлом поколении, результат не сохраняет
	generation uint64
}

// NewCache создает новый экземпляр Cache
func NewCache(source Source, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
}

// Products возвращает копию списка ароматов
func (c *Cache) Products(ctx context.Context) ([]models.Product, error) {
	products, gen, ok := c.fresh()
	if ok {
		metrics.CacheHit()
		return products, nil
	}
	metrics.CacheMiss()

	// Одновременные промахи одного поколения выполняют одну загрузку
	key := "products/" + strconv.FormatUint(gen, 10)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if products, _, ok := c.fresh(); ok {
			return products, nil
		}
		return c.load(ctx, gen)
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]models.Product)), nil
}

// Product ищет аромат по id
func (c *Cache) Product(ctx context.Context, id int64) (*models.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
}

// Invalidate сбрасывает кеш после изменений в каталоге
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.products = nil
	c.generation++
}

func (c *Cache) fresh() ([]models.Product, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, c.generation, false
	}
	return clone(c.products), c.generation, true
}

func (c *Cache) load(ctx context.Context, gen uint64) ([]models.Product, error) {
	products, err := c.source.ListProducts(ctx)
	if err != nil {
		c.log.Error("failed to load catalog", zap.Error(err))

		c.mu.Lock()
		if c.generation == gen {
			c.products = nil
			c.loaded = false
		}
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.log.Debug("catalog changed during load, result not cached", zap.Uint64("generation", gen))
		return clone(products), nil
	}
	c.products = products
	c.fetchedAt = c.now()
	c.loaded = true
	c.mu.Unlock()

	c.log.Debug("catalog loaded", zap.Int("products", len(products)))
	return clone(products), nil
}

func clone(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
