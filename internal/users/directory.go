package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"perfume-store/internal/models"

	"go.uber.org/zap"
)

// Ошибки работы с сотрудниками магазина
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrReservedEmail      = errors.New("email reserved for bootstrap admin")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository - хранилище сотрудников. GetUserWithCredentials
// возвращает ErrUserNotFound, если email не зарегистрирован.
type Repository interface {
	Store
	GetUserWithCredentials(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Passwords хеширует и проверяет пароли
type Passwords interface {
	Hasher
	CheckPassword(password, hashedPassword string) error
}

// Directory - сотрудники панели администратора: админы управляют каталогом,
// менеджеры ведут заказы. Главный администратор создается из конфигурации
// при старте, его email нельзя занять через панель.
type Directory struct {
	repo      Repository
	passwords Passwords
	bootstrap string
	log       *zap.Logger
}

// NewDirectory создает новый экземпляр Directory
func NewDirectory(repo Repository, passwords Passwords, bootstrapEmail string, log *zap.Logger) *Directory {
	return &Directory{
		repo:      repo,
		passwords: passwords,
		bootstrap: NormalizeEmail(bootstrapEmail),
		log:       log,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register добавляет сотрудника от имени администратора actorID
func (d *Directory) Register(ctx context.Context, actorID string, req models.RegisterRequest) (*models.User, error) {
	email := NormalizeEmail(req.Email)
	if d.bootstrap != "" && email == d.bootstrap {
		return nil, fmt.Errorf("%s: %w", email, ErrReservedEmail)
	}

	exists, err := d.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", email, ErrEmailTaken)
	}

	hash, err := d.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := d.repo.CreateUser(ctx, email, hash, req.Role)
	if err != nil {
		return nil, err
	}

	d.log.Info("staff user created",
		zap.String("id", id),
		zap.String("email", email),
		zap.String("role", req.Role),
		zap.String("created_by", actorID),
	)
	return &models.User{ID: id, Email: email, Role: req.Role}, nil
}

// Authenticate проверяет email и пароль. Неизвестный email и неверный
// пароль неразличимы для вызывающего.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	user, err := d.repo.GetUserWithCredentials(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		d.log.Warn("admin login failed", zap.String("email", email), zap.String("reason", "unknown email"))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := d.passwords.CheckPassword(password, user.PasswordHash); err != nil {
		d.log.Warn("admin login failed", zap.String("email", email), zap.String("reason", "wrong password"))
		return nil, ErrInvalidCredentials
	}

	d.log.Info("admin logged in", zap.String("id", user.ID), zap.String("role", user.Role))
	user.PasswordHash = ""
	return user, nil
}

// List возвращает сотрудников без хешей паролей
func (d *Directory) List(ctx context.Context) ([]models.User, error) {
	return d.repo.ListUsers(ctx)
}
