package handlers

import (
	"context"
	"net/http"

	"perfume-store/internal/models"
	"perfume-store/internal/utils"

	"github.com/gin-gonic/gin"
)

// StaffDirectory - сотрудники панели администратора
type StaffDirectory interface {
	Register(ctx context.Context, actorID string, req models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// AuthHandler содержит обработчики входа в админку и управления сотрудниками
type AuthHandler struct {
	jwtManager utils.JWTManagerInterface
	staff      StaffDirectory
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(jwtManager utils.JWTManagerInterface, staff StaffDirectory) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		staff:      staff,
	}
}

// Register добавляет сотрудника магазина. Доступно только администратору,
// email главного администратора занять нельзя.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный запрос: " + err.Error(),
		})
		return
	}

	user, err := h.staff.Register(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err, "Не удалось добавить сотрудника")
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Login выдает токен админки по email и паролю
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный запрос: " + err.Error(),
		})
		return
	}

	user, err := h.staff.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Не удалось войти в панель управления")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Не удалось выдать токен: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		Role:  user.Role,
	})
}

// ListUsers возвращает сотрудников магазина
func (h *AuthHandler) ListUsers(c *gin.Context) {
	list, err := h.staff.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Не удалось получить список сотрудников")
		return
	}
	c.JSON(http.StatusOK, list)
}
