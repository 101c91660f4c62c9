package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"perfume-store/internal/api/middleware"
	"perfume-store/internal/cart"
	"perfume-store/internal/catalog"
	"perfume-store/internal/checkout"
	"perfume-store/internal/collections"
	"perfume-store/internal/importer"
	"perfume-store/internal/models"
	"perfume-store/internal/notifications"
	"perfume-store/internal/orders"
	"perfume-store/internal/users"

	"github.com/gin-gonic/gin"
)

// errorMapping сопоставляет ошибку домена со статусом и сообщением для покупателя
type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{catalog.ErrCatalogUnavailable, http.StatusServiceUnavailable, "Не удалось загрузить каталог. Попробуйте обновить страницу"},
	{catalog.ErrProductNotFound, http.StatusNotFound, "Аромат не найден"},
	{catalog.ErrReviewNotFound, http.StatusNotFound, "Отзыв не найден"},
	{catalog.ErrSelfVote, http.StatusForbidden, "Нельзя оценить собственный отзыв"},
	{cart.ErrQuantityLimit, http.StatusBadRequest, "Можно заказать не больше 99 флаконов одного аромата"},
	{collections.ErrComparisonFull, http.StatusConflict, "В сравнении уже 4 аромата"},
	{checkout.ErrEmptyCart, http.StatusConflict, "Корзина пуста"},
	{checkout.ErrNotReady, http.StatusConflict, "Заполните все шаги оформления заказа"},
	{orders.ErrOrderNotFound, http.StatusNotFound, "Заказ не найден"},
	{orders.ErrIllegalTransition, http.StatusConflict, "Недопустимая смена статуса заказа"},
	{orders.ErrUnknownStatus, http.StatusBadRequest, "Неизвестный статус заказа"},
	{orders.ErrImportedOrder, http.StatusConflict, "Заказ перенесен со старой витрины и не изменяется"},
	{orders.ErrInvalidImport, http.StatusBadRequest, "Сумма перенесенного заказа не сходится с позициями"},
	{orders.ErrStatusConflict, http.StatusConflict, "Статус заказа уже изменен, обновите страницу"},
	{orders.ErrDuplicateOrder, http.StatusConflict, "Заказ с таким номером уже существует"},
	{users.ErrInvalidCredentials, http.StatusUnauthorized, "Неверный email или пароль"},
	{users.ErrEmailTaken, http.StatusConflict, "Сотрудник с таким email уже есть"},
	{users.ErrReservedEmail, http.StatusConflict, "Этот email закреплен за главным администратором"},
	{notifications.ErrNotificationNotFound, http.StatusNotFound, "Уведомление не найдено"},
	{importer.ErrEmptyFile, http.StatusBadRequest, "Файл пуст"},
	{importer.ErrNoHeader, http.StatusBadRequest, "В файле нет строки заголовков с обязательными колонками"},
}

// respondError отвечает статусом, соответствующим ошибке. Неизвестные ошибки
// считаются внутренними, к сообщению fallback добавляется текст ошибки.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.JSON(m.status, models.ErrorResponse{Message: m.message})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Message: fallback + ": " + err.Error(),
	})
}

// badRequest отвечает на ошибку разбора запроса
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Message: "Неверный запрос: " + err.Error(),
	})
}

// sessionID возвращает id сессии, сохраненный SessionMiddleware
func sessionID(c *gin.Context) string {
	return c.GetString(middleware.SessionIDKey)
}

// int64Param разбирает числовой параметр пути
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный идентификатор: " + c.Param(name),
		})
		return 0, false
	}
	return id, true
}
