package models

import (
	"time"

	"github.com/lib/pq"
)

// Категории ароматов
const (
	CategoryMale   = "Мужской"
	CategoryFemale = "Женский"
	CategoryUnisex = "Унисекс"
	CategoryAll    = "all"
)

// Product представляет аромат в каталоге
type Product struct {
	ID            int64          `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Brand         string         `json:"brand" db:"brand"`
	Price         int64          `json:"price" db:"price"`
	Category      string         `json:"category" db:"category"`
	Volume        string         `json:"volume" db:"volume"`
	Notes         pq.StringArray `json:"notes" db:"notes"`
	Image         string         `json:"image" db:"image"`
	Concentration *string        `json:"concentration,omitempty" db:"concentration"`
	Discount      int            `json:"discount,omitempty" db:"discount"`
	Availability  bool           `json:"availability" db:"availability"`
	Rating        float64        `json:"rating,omitempty" db:"rating"`
	ReviewsCount  int            `json:"reviewsCount,omitempty" db:"reviews_count"`
	Reviews       []Review       `json:"reviews,omitempty" db:"-"`
}

// ProductInput представляет данные аромата, которые присылает админка или импорт
type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Brand         string   `json:"brand" binding:"required"`
	Price         int64    `json:"price" binding:"required,gt=0"`
	Category      string   `json:"category" binding:"required,oneof=Мужской Женский Унисекс"`
	Volume        string   `json:"volume" binding:"required"`
	Notes         []string `json:"notes"`
	Image         string   `json:"image"`
	Concentration *string  `json:"concentration"`
	Discount      int      `json:"discount" binding:"min=0,max=100"`
	Availability  *bool    `json:"availability"`
}

// DefaultImage подставляется, если у аромата нет изображения
const DefaultImage = "/placeholder.svg"

// Product собирает аромат из входных данных, подставляя значения по умолчанию
func (in ProductInput) Product(id int64) Product {
	available := true
	if in.Availability != nil {
		available = *in.Availability
	}
	image := in.Image
	if image == "" {
		image = DefaultImage
	}
	notes := in.Notes
	if notes == nil {
		notes = []string{}
	}
	return Product{
		ID:            id,
		Name:          in.Name,
		Brand:         in.Brand,
		Price:         in.Price,
		Category:      in.Category,
		Volume:        in.Volume,
		Notes:         pq.StringArray(notes),
		Image:         image,
		Concentration: in.Concentration,
		Discount:      in.Discount,
		Availability:  available,
	}
}

// Review представляет отзыв покупателя
type Review struct {
	ID        int            `json:"id" db:"id"`
	ProductID int64          `json:"productId" db:"product_id"`
	Author    string         `json:"author" db:"author"`
	Rating    int            `json:"rating" db:"rating"`
	Date      time.Time      `json:"date" db:"created_at"`
	Text      string         `json:"text" db:"text"`
	Images    pq.StringArray `json:"images,omitempty" db:"images"`
	Helpful   int            `json:"helpful" db:"helpful"`
	Verified  bool           `json:"verified" db:"verified"`
}

// CreateReviewRequest представляет запрос на добавление отзыва
type CreateReviewRequest struct {
	Author   string   `json:"author" binding:"required"`
	Rating   int      `json:"rating" binding:"required,min=1,max=5"`
	Text     string   `json:"text" binding:"required"`
	Images   []string `json:"images"`
	Verified bool     `json:"verified"`
}

// HelpfulVoteRequest представляет голос «отзыв полезен»
type HelpfulVoteRequest struct {
	Voter string `json:"voter" binding:"required"`
}

// ProductListQuery представляет параметры фильтрации каталога
type ProductListQuery struct {
	Category  string   `form:"category"`
	MinPrice  *int64   `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice  *int64   `form:"maxPrice" binding:"omitempty,min=0"`
	Brands    []string `form:"brand"`
	Volumes   []string `form:"volume"`
	Available bool     `form:"available"`
	Search    string   `form:"q"`
	Sort      string   `form:"sort" binding:"omitempty,oneof=default price-asc price-desc name rating discount"`
}

// FacetsResponse представляет значения для фильтров каталога
type FacetsResponse struct {
	Brands   []string `json:"brands"`
	Volumes  []string `json:"volumes"`
	MinPrice int64    `json:"minPrice"`
	MaxPrice int64    `json:"maxPrice"`
}

// ImportResponse представляет результат импорта таблицы товаров
type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}

// Recommendations - подборка «Рекомендуем для вас»
type Recommendations struct {
	Similar      []Product `json:"similar"`
	Personalized []Product `json:"personalized"`
	Trending     []Product `json:"trending"`
}

// RecommendationsQuery - параметры подборки; без productId подборка строится вне карточки
type RecommendationsQuery struct {
	ProductID int64 `form:"productId" binding:"omitempty,min=1"`
}
