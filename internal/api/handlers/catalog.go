package handlers

import (
	"context"
	"net/http"
	"strconv"

	"perfume-store/internal/catalog"
	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// CatalogService определяет операции каталога и отзывов
type CatalogService interface {
	ListProducts(ctx context.Context, q models.ProductListQuery) ([]models.Product, error)
	Facets(ctx context.Context) (models.FacetsResponse, error)
	ViewProduct(ctx context.Context, sessionID string, id int64) (*models.Product, error)
	RecentlyViewed(ctx context.Context, sessionID string) ([]models.Product, error)
	Recommendations(ctx context.Context, sessionID string, productID int64) (*models.Recommendations, error)
	Reviews(ctx context.Context, productID int64, sort catalog.ReviewSort) ([]models.Review, error)
	AddReview(ctx context.Context, productID int64, in models.CreateReviewRequest) (*models.Product, *models.Review, error)
	MarkReviewHelpful(ctx context.Context, productID int64, reviewID int, voter string) (*models.Review, error)
}

// CatalogHandler содержит обработчики каталога
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler создает новый экземпляр CatalogHandler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListProducts обрабатывает запрос списка ароматов с фильтрами и сортировкой
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var query models.ProductListQuery

	// Извлекаем параметры запроса
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверные параметры запроса: " + err.Error(),
		})
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Ошибка при получении каталога")
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(len(products)))
	c.JSON(http.StatusOK, products)
}

// Facets обрабатывает запрос значений для фильтров
func (h *CatalogHandler) Facets(c *gin.Context) {
	facets, err := h.service.Facets(c.Request.Context())
	if err != nil {
		respondError(c, err, "Ошибка при получении фильтров")
		return
	}
	c.JSON(http.StatusOK, facets)
}

// GetProduct возвращает аромат и записывает его в недавно просмотренные
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	product, err := h.service.ViewProduct(c.Request.Context(), sessionID(c), id)
	if err != nil {
		respondError(c, err, "Ошибка при получении аромата")
		return
	}
	c.JSON(http.StatusOK, product)
}

// RecentlyViewed возвращает недавно просмотренные ароматы
func (h *CatalogHandler) RecentlyViewed(c *gin.Context) {
	products, err := h.service.RecentlyViewed(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении просмотренных ароматов")
		return
	}
	c.JSON(http.StatusOK, products)
}

// Recommendations возвращает подборку для сессии, ?productId= задает открытый аромат
func (h *CatalogHandler) Recommendations(c *gin.Context) {
	var query models.RecommendationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверные параметры запроса: " + err.Error(),
		})
		return
	}

	rec, err := h.service.Recommendations(c.Request.Context(), sessionID(c), query.ProductID)
	if err != nil {
		respondError(c, err, "Ошибка при подборе рекомендаций")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Reviews возвращает отзывы в порядке ?sort=recent|rating-desc|rating-asc|helpful
func (h *CatalogHandler) Reviews(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	sort := catalog.ReviewSort(c.DefaultQuery("sort", string(catalog.ReviewsRecent)))
	switch sort {
	case catalog.ReviewsRecent, catalog.ReviewsRatingDesc, catalog.ReviewsRatingAsc, catalog.ReviewsHelpful:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неизвестная сортировка отзывов: " + string(sort),
		})
		return
	}

	reviews, err := h.service.Reviews(c.Request.Context(), id, sort)
	if err != nil {
		respondError(c, err, "Ошибка при получении отзывов")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// AddReview обрабатывает добавление отзыва
func (h *CatalogHandler) AddReview(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, review, err := h.service.AddReview(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Ошибка при добавлении отзыва")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"review":       review,
		"rating":       product.Rating,
		"reviewsCount": product.ReviewsCount,
		"toast":        models.Toast{Title: "Спасибо за отзыв!"},
	})
}

// MarkHelpful засчитывает голос «отзыв полезен»
func (h *CatalogHandler) MarkHelpful(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	reviewID, ok := int64Param(c, "reviewId")
	if !ok {
		return
	}

	var req models.HelpfulVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.service.MarkReviewHelpful(c.Request.Context(), id, int(reviewID), req.Voter)
	if err != nil {
		respondError(c, err, "Ошибка при оценке отзыва")
		return
	}
	c.JSON(http.StatusOK, review)
}
