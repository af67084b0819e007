package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-checkout/internal/core/latency"
	"storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/catalog/ports"

	"github.com/google/uuid"
)

// CatalogServiceImpl implements ports.CatalogService over a ProductRepository.
// Every call waits for the configured latency to mimic a remote catalog.
type CatalogServiceImpl struct {
	repo    ports.ProductRepository
	latency time.Duration
	now     func() time.Time
	mu      sync.Mutex
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(repo ports.ProductRepository, delay time.Duration) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:    repo,
		latency: delay,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *CatalogServiceImpl) List(ctx context.Context) ([]domain.Product, error) {
	if err := latency.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	products, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogServiceImpl) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(products, id); i >= 0 {
		return &products[i], nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

func (s *CatalogServiceImpl) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created domain.Product
	err := s.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		now := s.now()
		created = domain.Product{
			ID:          uuid.NewString(),
			Title:       in.Title,
			Author:      in.Author,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			Type:        in.Type,
			Categories:  nonNil(in.Categories),
			Tags:        nonNil(in.Tags),
			CoverURL:    in.CoverURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return append(products, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id string, u domain.ProductUpdate) (*domain.Product, error) {
	var updated domain.Product
	err := s.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		if err := u.Apply(&products[i], s.now()); err != nil {
			return nil, err
		}
		updated = products[i]
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		return append(products[:i], products[i+1:]...), nil
	})
}

// UpdateStock adds delta to the product stock. Returns ErrInsufficientStock
// when the result would be negative.
func (s *CatalogServiceImpl) UpdateStock(ctx context.Context, id string, delta int) error {
	return s.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		if err := products[i].AdjustStock(delta, s.now()); err != nil {
			return nil, err
		}
		return products, nil
	})
}

func (s *CatalogServiceImpl) mutate(ctx context.Context, fn func([]domain.Product) ([]domain.Product, error)) error {
	if err := latency.Wait(ctx, s.latency); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to load catalog: %w", err)
	}
	products, err = fn(products)
	if err != nil {
		return err
	}
	if err := s.repo.SaveAll(ctx, products); err != nil {
		return fmt.Errorf("service: failed to save catalog: %w", err)
	}
	return nil
}

func indexOf(products []domain.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
