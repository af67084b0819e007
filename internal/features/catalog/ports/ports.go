package ports

import (
	"context"

	"storefront-checkout/internal/features/catalog/domain"
)

// ProductRepository is the secondary port for the persisted catalog.
type ProductRepository interface {
	// LoadAll returns every product. An empty backend is seeded on first read.
	LoadAll(ctx context.Context) ([]domain.Product, error)
	// SaveAll overwrites the catalog.
	SaveAll(ctx context.Context, products []domain.Product) error
}

// CatalogService is the primary port for catalog operations.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, u domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, delta int) error
}
