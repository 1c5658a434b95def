package repository

import (
	"context"

	"github.com/profitlens/backend-go/internal/domain"
)

// ProductRepository persists the raw product list. Listing returns records
// in insertion order, which is the only ordering the dashboard relies on.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int64) error

	// ReplaceAll swaps the entire list in one transaction; bulk imports
	// replace rather than append.
	ReplaceAll(ctx context.Context, products []domain.Product) error
}
