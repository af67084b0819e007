package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/catalog/domain"

	"go.uber.org/zap"
)

// CatalogKey is the slot holding the mock catalog.
const CatalogKey = "catalog_products"

// KVProductRepository implements ports.ProductRepository as one JSON array in the kv store.
type KVProductRepository struct {
	store storage.Store
}

// NewKVProductRepository creates a new KVProductRepository.
func NewKVProductRepository(store storage.Store) *KVProductRepository {
	return &KVProductRepository{store: store}
}

// LoadAll reads the catalog, writing the seed products when the slot is empty.
func (r *KVProductRepository) LoadAll(ctx context.Context) ([]domain.Product, error) {
	data, err := r.store.Get(ctx, CatalogKey)
	if err != nil {
		if !storage.IsNotFound(err) {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		seed := domain.SeedProducts(time.Now().UTC())
		if err := r.SaveAll(ctx, seed); err != nil {
			return nil, err
		}
		logger.Get().Info("Catalog seeded", zap.Int("products", len(seed)))
		return seed, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: corrupt catalog: %w", storage.ErrUnavailable, err)
	}
	return products, nil
}

func (r *KVProductRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := r.store.Set(ctx, CatalogKey, data, 0); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}
