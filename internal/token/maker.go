package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// Различные ошибки при работе с токенами
var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload содержит данные токена покупательской сессии
type Payload struct {
	SessionID string    `json:"session_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Maker - интерфейс для управления токенами сессий
type Maker interface {
	CreateToken(sessionID string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

// JWTMaker - реализация JWT токенов
type JWTMaker struct {
	secretKey string
	now       func() time.Time
}

func NewJWTMaker(secretKey string) (*JWTMaker, error) {
	if len(secretKey) < 32 {
		return nil, errors.New("secret key must be at least 32 characters")
	}
	return &JWTMaker{secretKey: secretKey, now: time.Now}, nil
}

// NewSessionID выдает идентификатор новой сессии
func NewSessionID() string {
	return uuid.NewString()
}

func (maker *JWTMaker) CreateToken(sessionID string, duration time.Duration) (string, *Payload, error) {
	now := maker.now()
	payload := &Payload{
		SessionID: sessionID,
		IssuedAt:  now,
		ExpiresAt: now.Add(duration),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": payload.SessionID,
		"issued_at":  payload.IssuedAt.Unix(),
		"expires_at": payload.ExpiresAt.Unix(),
	})

	signed, err := jwtToken.SignedString([]byte(maker.secretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, payload, nil
}

func (maker *JWTMaker) VerifyToken(token string) (*Payload, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, ErrInvalidToken
		}
		return []byte(maker.secretKey), nil
	}

	jwtToken, err := jwt.Parse(token, keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, ErrInvalidToken
	}
	issuedAt, ok := claims["issued_at"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	expires, ok := claims["expires_at"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	expiresAt := time.Unix(int64(expires), 0)
	if maker.now().After(expiresAt) {
		return nil, ErrExpiredToken
	}

	return &Payload{
		SessionID: sessionID,
		IssuedAt:  time.Unix(int64(issuedAt), 0),
		ExpiresAt: expiresAt,
	}, nil
}
