package catalog

import (
	"sort"

	"perfume-store/internal/models"
)

// Ограничения подборки рекомендаций
const (
	MaxRecommendationGroup = 4
	MaxRecommendations     = 6
	// SimilarPriceDelta - разница в цене, при которой аромат считается похожим
	SimilarPriceDelta = 1000
)

// RecommendInput - что известно о покупателе. Current равен nil вне карточки аромата.
type RecommendInput struct {
	Current        *models.Product
	Cart           []int64
	Wishlist       []int64
	RecentlyViewed []int64
}

// Recommend собирает подборку: похожие на открытый аромат, затем по интересам
// покупателя, затем самые высоко оцененные. Каждая группа не больше
// MaxRecommendationGroup, всего не больше MaxRecommendations. Ароматы из корзины
// и повторы не предлагаются.
func Recommend(products []models.Product, in RecommendInput) models.Recommendations {
	inCart := idSet(in.Cart)
	taken := make(map[int64]bool)
	budget := MaxRecommendations

	pick := func(source []models.Product, match func(p models.Product) bool) []models.Product {
		group := []models.Product{}
		for _, p := range source {
			if len(group) == MaxRecommendationGroup || len(group) == budget {
				break
			}
			if inCart[p.ID] || taken[p.ID] || !match(p) {
				continue
			}
			p.Reviews = nil
			group = append(group, p)
			taken[p.ID] = true
		}
		budget -= len(group)
		return group
	}

	var rec models.Recommendations

	if cur := in.Current; cur != nil {
		taken[cur.ID] = true
		rec.Similar = pick(products, func(p models.Product) bool {
			return p.Category == cur.Category || p.Brand == cur.Brand || abs(p.Price-cur.Price) < SimilarPriceDelta
		})
	} else {
		rec.Similar = []models.Product{}
	}

	categories := make(map[string]bool)
	brands := make(map[string]bool)
	interacted := idSet(in.Cart, in.Wishlist, in.RecentlyViewed)
	for _, p := range products {
		if interacted[p.ID] {
			categories[p.Category] = true
			brands[p.Brand] = true
		}
	}
	rec.Personalized = pick(products, func(p models.Product) bool {
		return categories[p.Category] || brands[p.Brand]
	})

	byRating := make([]models.Product, len(products))
	copy(byRating, products)
	sort.SliceStable(byRating, func(i, j int) bool { return byRating[i].Rating > byRating[j].Rating })
	rec.Trending = pick(byRating, func(models.Product) bool { return true })

	return rec
}

func idSet(lists ...[]int64) map[int64]bool {
	set := make(map[int64]bool)
	for _, ids := range lists {
		for _, id := range ids {
			set[id] = true
		}
	}
	return set
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
