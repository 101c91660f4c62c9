package middleware

import (
	"net/http"
	"sync"
	"time"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// maxTrackedClients ограничивает число IP, для которых хранится лимитер
const maxTrackedClients = 4096

// IPRateLimiter выдает каждому IP свой лимитер. Давно не встречавшиеся IP вытесняются.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache
	limit    rate.Limit
	burst    int
}

// NewIPRateLimiter создает лимитер на perMinute запросов в минуту с запасом burst
func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	cache, _ := lru.New(maxTrackedClients)
	return &IPRateLimiter{
		limiters: cache,
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

// Allow сообщает, можно ли выполнить запрос с этого IP сейчас
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.limiters.Get(ip); ok {
		return v.(*rate.Limiter).Allow()
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(ip, limiter)
	return limiter.Allow()
}

// RateLimit отклоняет запросы сверх лимита со статусом 429
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Message: "Слишком много попыток, повторите позже",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
