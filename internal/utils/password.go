package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCheckerInterface определяет проверку пароля по хешу
type PasswordCheckerInterface interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hashedPassword string) error
}

// BcryptPasswords реализует PasswordCheckerInterface через bcrypt
type BcryptPasswords struct{}

// HashPassword создает хеш пароля с использованием bcrypt
func (BcryptPasswords) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

// CheckPassword сравнивает пароль с хешем
func (BcryptPasswords) CheckPassword(password, hashedPassword string) error {
	return CheckPassword(password, hashedPassword)
}

// HashPassword создает хеш пароля с использованием bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword сравнивает пароль с хешем
func CheckPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
