package storefront

import (
	"context"
	"fmt"
	"io"

	"perfume-store/internal/importer"
	"perfume-store/internal/models"

	"go.uber.org/zap"
)

// CreateProduct добавляет аромат в каталог
func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p, err := s.products.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.catalog.Invalidate()
	return p, nil
}

// UpdateProduct меняет описание аромата. Корзины сразу видят новую цену.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	p, err := s.products.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.catalog.Invalidate()
	return p, nil
}

// DeleteProduct удаляет аромат из каталога
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.catalog.Invalidate()
	return nil
}

// ImportProducts загружает ароматы из CSV-выгрузки таблицы
func (s *Service) ImportProducts(ctx context.Context, r io.Reader) (*models.ImportResponse, error) {
	parsed, err := importer.Parse(r)
	if err != nil {
		return nil, err
	}

	imported := 0
	if len(parsed.Products) > 0 {
		imported, err = s.products.ImportProducts(ctx, parsed.Products)
		if err != nil {
			return nil, fmt.Errorf("failed to import products: %w", err)
		}
		s.catalog.Invalidate()
	}

	s.log.Info("products imported",
		zap.Int("imported", imported),
		zap.Int("skipped", len(parsed.Skipped)),
	)
	return &models.ImportResponse{Imported: imported, Skipped: parsed.Skipped}, nil
}
