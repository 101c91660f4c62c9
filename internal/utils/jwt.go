package utils

import (
	"fmt"
	"time"

	"perfume-store/internal/config"

	"github.com/dgrijalva/jwt-go"
)

// adminIssuer отличает токены админки от токенов покупательских сессий
const adminIssuer = "perfume-store/admin"

// JWTManagerInterface определяет интерфейс для работы с токенами администраторов
type JWTManagerInterface interface {
	GenerateToken(userID, role string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// JWTManager управляет созданием и проверкой JWT токенов
type JWTManager struct {
	secretKey  string
	expireTime time.Duration
}

// NewJWTManager создает новый экземпляр JWTManager
func NewJWTManager(config *config.JWTConfig) *JWTManager {
	return &JWTManager{
		secretKey:  config.Secret,
		expireTime: config.ExpireTime,
	}
}

// CustomClaims представляет данные, которые будут закодированы в JWT
type CustomClaims struct {
	jwt.StandardClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// GenerateToken создает JWT токен для пользователя админки
func (manager *JWTManager) GenerateToken(userID, role string) (string, error) {
	expirationTime := time.Now().Add(manager.expireTime)

	claims := &CustomClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Subject:   userID,
			Issuer:    adminIssuer,
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(manager.secretKey))
}

// ValidateToken проверяет JWT токен
func (manager *JWTManager) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(manager.secretKey), nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if !claims.VerifyIssuer(adminIssuer, true) {
		return nil, fmt.Errorf("token was not issued for the admin panel")
	}

	return claims, nil
}
