package middleware

import (
	"errors"
	"net/http"

	"perfume-store/internal/models"
	"perfume-store/internal/token"

	"github.com/gin-gonic/gin"
)

// SessionHeader - заголовок с токеном покупательской сессии
const SessionHeader = "X-Session-Token"

// SessionIDKey - ключ id сессии в контексте gin
const SessionIDKey = "sessionID"

// SessionMiddleware проверяет токен сессии и сохраняет id сессии в контексте
func SessionMiddleware(maker token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SessionHeader)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Отсутствует токен сессии",
			})
			c.Abort()
			return
		}

		payload, err := maker.VerifyToken(raw)
		if err != nil {
			message := "Неверный токен сессии"
			if errors.Is(err, token.ErrExpiredToken) {
				message = "Сессия истекла, начните новую"
			}
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: message})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, payload.SessionID)
		c.Next()
	}
}

// OptionalSession сохраняет id сессии, если передан действительный токен.
// Запрос без токена или с недействительным токеном проходит анонимно.
func OptionalSession(maker token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(SessionHeader); raw != "" {
			if payload, err := maker.VerifyToken(raw); err == nil {
				c.Set(SessionIDKey, payload.SessionID)
			}
		}
		c.Next()
	}
}
