package handlers

import (
	"io"
	"net/http"
	"time"

	"perfume-store/internal/models"
	"perfume-store/internal/promo"

	"github.com/gin-gonic/gin"
)

// PromoHandler отдает обратный отсчет текущей акции
type PromoHandler struct {
	endsAt   time.Time
	interval time.Duration
	now      func() time.Time
}

// NewPromoHandler создает новый экземпляр PromoHandler
func NewPromoHandler(endsAt time.Time, interval time.Duration) *PromoHandler {
	return &PromoHandler{endsAt: endsAt, interval: interval, now: time.Now}
}

// Countdown возвращает оставшееся время одним ответом
func (h *PromoHandler) Countdown(c *gin.Context) {
	c.JSON(http.StatusOK, promo.Remaining(h.endsAt, h.now()))
}

// Stream отправляет отсчет событиями SSE, пока акция не закончится
// или клиент не отключится
func (h *PromoHandler) Stream(c *gin.Context) {
	ticks := make(chan models.Countdown)
	ctx := c.Request.Context()

	go func() {
		defer close(ticks)
		_ = promo.NewTimer(h.endsAt, h.interval).Run(ctx, func(cd models.Countdown) error {
			select {
			case ticks <- cd:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		cd, ok := <-ticks
		if !ok {
			return false
		}
		c.SSEvent("countdown", cd)
		return !cd.Expired
	})
}
