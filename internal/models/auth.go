package models

// Роли пользователей панели администратора
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User представляет пользователя панели администратора
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"` // Не отдаем пароль в JSON
}

// RegisterRequest представляет запрос на создание пользователя админки
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin manager"`
}

// RegisterResponse представляет ответ на запрос регистрации
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest представляет запрос на авторизацию
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse представляет ответ с токеном авторизации
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
