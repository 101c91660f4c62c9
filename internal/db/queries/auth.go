package queries

import (
	"context"
	sqlPackage "database/sql"
	"errors"
	"fmt"

	"perfume-store/internal/db"
	"perfume-store/internal/models"
	"perfume-store/internal/users"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// AuthQueriesInterface определяет запросы к пользователям панели администратора
type AuthQueriesInterface interface {
	GetUserByEmail(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, passwordHash, role string) (string, error)
	GetUserWithCredentials(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// AuthQueries содержит методы запросов для авторизации
type AuthQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewAuthQueries создает новый экземпляр AuthQueries
func NewAuthQueries(db *db.Database) *AuthQueries {
	return &AuthQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// CreateUser создает нового пользователя и возвращает его id
func (q *AuthQueries) CreateUser(ctx context.Context, email, passwordHash, role string) (string, error) {
	query := q.sq.
		Insert("users").
		Columns("email", "password_hash", "role", "created_at").
		Values(email, passwordHash, role, squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var id string
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s: %w", email, users.ErrEmailTaken)
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// GetUserByEmail проверяет, существует ли пользователь с таким email
func (q *AuthQueries) GetUserByEmail(ctx context.Context, email string) (bool, error) {
	query := q.sq.
		Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists int
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, sqlPackage.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return true, nil
}

// GetUserWithCredentials возвращает пользователя вместе с хешем пароля
func (q *AuthQueries) GetUserWithCredentials(ctx context.Context, email string) (*models.User, error) {
	query := q.sq.
		Select("id", "email", "role", "password_hash").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user models.User
	err = q.db.QueryRowxContext(ctx, sql, args...).StructScan(&user)
	if err != nil {
		if errors.Is(err, sqlPackage.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, users.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ListUsers возвращает пользователей админки без хешей паролей
func (q *AuthQueries) ListUsers(ctx context.Context) ([]models.User, error) {
	query := q.sq.
		Select("id", "email", "role").
		From("users").
		OrderBy("email")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	list := []models.User{}
	if err := q.db.SelectContext(ctx, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return list, nil
}
