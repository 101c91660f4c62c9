package catalog

import (
	"errors"
	"sort"
	"strings"
	"time"

	"perfume-store/internal/models"

	"github.com/lib/pq"
)

// Ошибки работы с отзывами
var (
	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrSelfVote        = errors.New("author cannot mark own review as helpful")
)

// ReviewSort задает порядок отображения отзывов
type ReviewSort string

// Ключи сортировки отзывов
const (
	ReviewsRecent     ReviewSort = "recent"
	ReviewsRatingDesc ReviewSort = "rating-desc"
	ReviewsRatingAsc  ReviewSort = "rating-asc"
	ReviewsHelpful    ReviewSort = "helpful"
)

// AddReview добавляет отзыв к аромату и возвращает аромат с пересчитанными
// rating и reviewsCount вместе с созданным отзывом. Исходный аромат не меняется.
func AddReview(p models.Product, in models.CreateReviewRequest, now time.Time) (models.Product, models.Review) {
	nextID := 1
	for _, r := range p.Reviews {
		if r.ID >= nextID {
			nextID = r.ID + 1
		}
	}

	review := models.Review{
		ID:        nextID,
		ProductID: p.ID,
		Author:    strings.TrimSpace(in.Author),
		Rating:    in.Rating,
		Date:      now,
		Text:      in.Text,
		Images:    pq.StringArray(in.Images),
		Helpful:   0,
		Verified:  in.Verified,
	}

	reviews := make([]models.Review, 0, len(p.Reviews)+1)
	reviews = append(reviews, p.Reviews...)
	reviews = append(reviews, review)

	p.Reviews = reviews
	p.Rating, p.ReviewsCount = Summarize(reviews)
	return p, review
}

// Summarize - единственное определение рейтинга аромата: среднее оценок и их число
func Summarize(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}

// MarkHelpful увеличивает счетчик полезности на единицу.
// Автор не может голосовать за собственный отзыв.
func MarkHelpful(r models.Review, voter string) (models.Review, error) {
	if strings.EqualFold(strings.TrimSpace(voter), r.Author) {
		return r, ErrSelfVote
	}
	r.Helpful++
	return r, nil
}

// SortReviews возвращает отсортированную копию отзывов
func SortReviews(reviews []models.Review, key ReviewSort) []models.Review {
	sorted := make([]models.Review, len(reviews))
	copy(sorted, reviews)

	var less func(a, b models.Review) bool
	switch key {
	case ReviewsRatingDesc:
		less = func(a, b models.Review) bool { return a.Rating > b.Rating }
	case ReviewsRatingAsc:
		less = func(a, b models.Review) bool { return a.Rating < b.Rating }
	case ReviewsHelpful:
		less = func(a, b models.Review) bool { return a.Helpful > b.Helpful }
	default:
		less = func(a, b models.Review) bool { return a.Date.After(b.Date) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
