package catalog

import (
	"sort"
	"strings"

	"perfume-store/internal/models"
)

// SortKey задает порядок выдачи каталога
type SortKey string

// Ключи сортировки
const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
	SortDiscount  SortKey = "discount"
)

// PriceRange - включительный диапазон цен
type PriceRange struct {
	Min int64
	Max int64
}

// Criteria описывает фильтры каталога. Пустые множества брендов и объемов
// означают «без фильтра», а не «ничего не показывать».
type Criteria struct {
	Category      string
	Price         *PriceRange
	Brands        map[string]struct{}
	Volumes       map[string]struct{}
	AvailableOnly bool
	Query         string
	Sort          SortKey
}

// NewCriteria собирает критерии из параметров запроса
func NewCriteria(q models.ProductListQuery) Criteria {
	c := Criteria{
		Category:      q.Category,
		Brands:        toSet(q.Brands),
		Volumes:       toSet(q.Volumes),
		AvailableOnly: q.Available,
		Query:         q.Search,
		Sort:          SortKey(q.Sort),
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		r := PriceRange{Min: 0, Max: 1<<63 - 1}
		if q.MinPrice != nil {
			r.Min = *q.MinPrice
		}
		if q.MaxPrice != nil {
			r.Max = *q.MaxPrice
		}
		c.Price = &r
	}

	return c
}

// FilterAndSort возвращает новый список товаров, прошедших все фильтры,
// в порядке ключа сортировки. Исходный срез не изменяется.
func FilterAndSort(products []models.Product, c Criteria) []models.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.matches(p, query) {
			result = append(result, p)
		}
	}

	if less := lessFunc(c.Sort); less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}

	return result
}

func (c Criteria) matches(p models.Product, query string) bool {
	if c.Category != "" && c.Category != models.CategoryAll && p.Category != c.Category {
		return false
	}

	// min > max дает пустой результат, границы не переставляем
	if c.Price != nil && (p.Price < c.Price.Min || p.Price > c.Price.Max) {
		return false
	}

	if len(c.Brands) > 0 {
		if _, ok := c.Brands[p.Brand]; !ok {
			return false
		}
	}

	if len(c.Volumes) > 0 {
		if _, ok := c.Volumes[p.Volume]; !ok {
			return false
		}
	}

	if c.AvailableOnly && !p.Availability {
		return false
	}

	if query != "" &&
		!strings.Contains(strings.ToLower(p.Name), query) &&
		!strings.Contains(strings.ToLower(p.Brand), query) {
		return false
	}

	return true
}

func lessFunc(key SortKey) func(a, b models.Product) bool {
	switch key {
	case SortPriceAsc:
		return func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		return func(a, b models.Product) bool { return a.Price > b.Price }
	case SortName:
		return func(a, b models.Product) bool { return a.Name < b.Name }
	case SortRating:
		return func(a, b models.Product) bool { return a.Rating > b.Rating }
	case SortDiscount:
		return func(a, b models.Product) bool { return a.Discount > b.Discount }
	default:
		return nil
	}
}

// Facets собирает значения для фильтров: бренды, объемы и границы цен
func Facets(products []models.Product) models.FacetsResponse {
	brands := make(map[string]struct{})
	volumes := make(map[string]struct{})
	var resp models.FacetsResponse

	for i, p := range products {
		brands[p.Brand] = struct{}{}
		volumes[p.Volume] = struct{}{}
		if i == 0 || p.Price < resp.MinPrice {
			resp.MinPrice = p.Price
		}
		if p.Price > resp.MaxPrice {
			resp.MaxPrice = p.Price
		}
	}

	resp.Brands = sortedKeys(brands)
	resp.Volumes = sortedKeys(volumes)
	return resp
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
