package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/checkout/domain"
)

// SessionKey is the slot holding the checkout session.
const SessionKey = "checkout_data"

// KVSessionRepository implements ports.SessionRepository on the kv store.
type KVSessionRepository struct {
	store storage.Store
	ttl   time.Duration
}

// NewKVSessionRepository creates a new KVSessionRepository. A ttl of 0 keeps the
// session until it is reset.
func NewKVSessionRepository(store storage.Store, ttl time.Duration) *KVSessionRepository {
	return &KVSessionRepository{store: store, ttl: ttl}
}

// Load returns the stored session, or a fresh one when none exists or it expired.
func (r *KVSessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	data, err := r.store.Get(ctx, SessionKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return &domain.Session{}, nil
		}
		return nil, fmt.Errorf("failed to read checkout session: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: corrupt checkout session: %w", storage.ErrUnavailable, err)
	}
	if !s.CurrentStep.Valid() {
		s.CurrentStep = domain.StepCustomer
	}
	return &s, nil
}

func (r *KVSessionRepository) Save(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := r.store.Set(ctx, SessionKey, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}

func (r *KVSessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to clear checkout session: %w", err)
	}
	return nil
}
