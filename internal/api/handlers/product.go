package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// maxImportSize ограничивает размер загружаемой таблицы
const maxImportSize = 10 << 20

// ProductAdminService определяет изменение каталога из админки
type ProductAdminService interface {
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ImportProducts(ctx context.Context, r io.Reader) (*models.ImportResponse, error)
}

// ProductHandler содержит обработчики управления каталогом
type ProductHandler struct {
	service ProductAdminService
}

// NewProductHandler создает новый экземпляр ProductHandler
func NewProductHandler(service ProductAdminService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create обрабатывает запрос на добавление аромата
func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductInput

	// Проверяем запрос
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Ошибка при добавлении аромата")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update обрабатывает запрос на изменение аромата
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Ошибка при изменении аромата")
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete обрабатывает запрос на удаление аромата
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, "Ошибка при удалении аромата")
		return
	}
	c.Status(http.StatusNoContent)
}

// Import загружает ароматы из CSV. Файл принимается в поле file формы
// или телом запроса.
func (h *ProductHandler) Import(c *gin.Context) {
	var body io.Reader = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			badRequest(c, err)
			return
		}
		file, err := header.Open()
		if err != nil {
			badRequest(c, err)
			return
		}
		defer file.Close()
		body = io.LimitReader(file, maxImportSize)
	}

	resp, err := h.service.ImportProducts(c.Request.Context(), body)
	if err != nil {
		respondError(c, err, "Ошибка при импорте таблицы")
		return
	}
	c.JSON(http.StatusOK, resp)
}
