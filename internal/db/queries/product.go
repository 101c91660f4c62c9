package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"perfume-store/internal/catalog"
	"perfume-store/internal/db"
	"perfume-store/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var productColumns = []string{
	"id", "name", "brand", "price", "category", "volume", "notes", "image",
	"concentration", "discount", "availability", "rating", "reviews_count",
}

var reviewColumns = []string{
	"id", "product_id", "author", "rating", "created_at", "text", "images", "helpful", "verified",
}

// ProductQueries содержит методы запросов для работы с каталогом и отзывами
type ProductQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewProductQueries создает новый экземпляр ProductQueries
func NewProductQueries(db *db.Database) *ProductQueries {
	return &ProductQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// ListProducts возвращает весь каталог вместе с отзывами
func (q *ProductQueries) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := q.sq.
		Select(productColumns...).
		From("products").
		OrderBy("id")

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var products []models.Product
	if err := q.db.SelectContext(ctx, &products, qsql, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	reviewsQuery := q.sq.
		Select(reviewColumns...).
		From("reviews").
		OrderBy("product_id", "id")

	rsql, rargs, err := reviewsQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var reviews []models.Review
	if err := q.db.SelectContext(ctx, &reviews, rsql, rargs...); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	byProduct := make(map[int64][]models.Review, len(products))
	for _, r := range reviews {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}
	for i := range products {
		products[i].Reviews = byProduct[products[i].ID]
	}

	return products, nil
}

// CreateProduct добавляет аромат
func (q *ProductQueries) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p := in.Product(0)

	query := q.sq.
		Insert("products").
		Columns("name", "brand", "price", "category", "volume", "notes", "image", "concentration", "discount", "availability").
		Values(p.Name, p.Brand, p.Price, p.Category, p.Volume, p.Notes, p.Image, p.Concentration, p.Discount, p.Availability).
		Suffix("RETURNING " + strings.Join(productColumns, ", "))

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var product models.Product
	if err := q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// UpdateProduct заменяет описание аромата. Рейтинг и отзывы не меняются.
func (q *ProductQueries) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	p := in.Product(id)

	query := q.sq.
		Update("products").
		SetMap(map[string]interface{}{
			"name":          p.Name,
			"brand":         p.Brand,
			"price":         p.Price,
			"category":      p.Category,
			"volume":        p.Volume,
			"notes":         p.Notes,
			"image":         p.Image,
			"concentration": p.Concentration,
			"discount":      p.Discount,
			"availability":  p.Availability,
		}).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(productColumns, ", "))

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var product models.Product
	if err := q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, catalog.ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

// DeleteProduct удаляет аромат, отзывы удаляются каскадно
func (q *ProductQueries) DeleteProduct(ctx context.Context, id int64) error {
	query := q.sq.
		Delete("products").
		Where(squirrel.Eq{"id": id})

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := q.db.ExecContext(ctx, qsql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, catalog.ErrProductNotFound)
	}

	return nil
}

// ImportProducts добавляет пачку ароматов одним запросом в транзакции
func (q *ProductQueries) ImportProducts(ctx context.Context, items []models.ProductInput) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := q.sq.
		Insert("products").
		Columns("name", "brand", "price", "category", "volume", "notes", "image", "concentration", "discount", "availability")
	for _, in := range items {
		p := in.Product(0)
		query = query.Values(p.Name, p.Brand, p.Price, p.Category, p.Volume, p.Notes, p.Image, p.Concentration, p.Discount, p.Availability)
	}

	qsql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var imported int64
	err = q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, qsql, args...)
		if err != nil {
			return fmt.Errorf("failed to import products: %w", err)
		}
		imported, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return int(imported), nil
}

// AddReview добавляет отзыв и пересчитывает рейтинг в одной транзакции.
// Строка аромата блокируется, чтобы одновременные отзывы не потеряли пересчет.
// Рейтинг считается catalog.Summarize по отзывам, прочитанным под блокировкой.
func (q *ProductQueries) AddReview(ctx context.Context, productID int64, in models.CreateReviewRequest, now time.Time) (*models.Product, *models.Review, error) {
	var (
		product models.Product
		review  models.Review
	)

	err := q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := q.lockProduct(ctx, tx, productID); err != nil {
			return err
		}

		images := in.Images
		if images == nil {
			images = []string{}
		}
		insert := q.sq.
			Insert("reviews").
			Columns("product_id", "author", "rating", "created_at", "text", "images", "helpful", "verified").
			Values(productID, strings.TrimSpace(in.Author), in.Rating, now, in.Text, pq.StringArray(images), 0, in.Verified).
			Suffix("RETURNING " + strings.Join(reviewColumns, ", "))

		isql, iargs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if err := tx.QueryRowxContext(ctx, isql, iargs...).StructScan(&review); err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}

		reviews, err := q.productReviews(ctx, tx, productID)
		if err != nil {
			return err
		}
		rating, count := catalog.Summarize(reviews)

		update := q.sq.
			Update("products").
			Set("rating", rating).
			Set("reviews_count", count).
			Where(squirrel.Eq{"id": productID}).
			Suffix("RETURNING " + strings.Join(productColumns, ", "))

		usql, uargs, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if err := tx.QueryRowxContext(ctx, usql, uargs...).StructScan(&product); err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}

		product.Reviews = reviews
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &product, &review, nil
}

// MarkReviewHelpful увеличивает счетчик полезности отзыва.
// Автор не может голосовать за свой отзыв.
func (q *ProductQueries) MarkReviewHelpful(ctx context.Context, productID int64, reviewID int, voter string) (*models.Review, error) {
	var review models.Review

	err := q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := q.sq.
			Select(reviewColumns...).
			From("reviews").
			Where(squirrel.Eq{"id": reviewID, "product_id": productID}).
			Suffix("FOR UPDATE")

		qsql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		var current models.Review
		if err := tx.QueryRowxContext(ctx, qsql, args...).StructScan(&current); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if err := q.lockProduct(ctx, tx, productID); err != nil {
					return err
				}
				return fmt.Errorf("review %d of product %d: %w", reviewID, productID, catalog.ErrReviewNotFound)
			}
			return fmt.Errorf("failed to get review: %w", err)
		}

		if _, err := catalog.MarkHelpful(current, voter); err != nil {
			return err
		}

		update := q.sq.
			Update("reviews").
			Set("helpful", squirrel.Expr("helpful + 1")).
			Where(squirrel.Eq{"id": reviewID}).
			Suffix("RETURNING " + strings.Join(reviewColumns, ", "))

		usql, uargs, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if err := tx.QueryRowxContext(ctx, usql, uargs...).StructScan(&review); err != nil {
			return fmt.Errorf("failed to mark review helpful: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (q *ProductQueries) lockProduct(ctx context.Context, tx *sqlx.Tx, productID int64) error {
	query := q.sq.
		Select("id").
		From("products").
		Where(squirrel.Eq{"id": productID}).
		Suffix("FOR UPDATE")

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, qsql, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %d: %w", productID, catalog.ErrProductNotFound)
		}
		return fmt.Errorf("failed to lock product: %w", err)
	}
	return nil
}

func (q *ProductQueries) productReviews(ctx context.Context, tx *sqlx.Tx, productID int64) ([]models.Review, error) {
	query := q.sq.
		Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("id")

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var reviews []models.Review
	if err := tx.SelectContext(ctx, &reviews, qsql, args...); err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}
