package memory

import (
	"context"
	"sync"

	"surfhouse/internal/domain/pricing"
)

// PricingStore keeps the pricing configuration in memory behind the same
// Store port the mongo adapter implements.
type PricingStore struct {
	mu     sync.RWMutex
	cfg    pricing.Config
	loaded bool
}

func NewPricingStore() *PricingStore {
	return &PricingStore{}
}

func (s *PricingStore) Load(ctx context.Context) (pricing.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return pricing.Config{}, pricing.ErrConfigNotFound
	}
	return s.cfg, nil
}

func (s *PricingStore) Replace(ctx context.Context, cfg pricing.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.loaded = true
	return nil
}

var _ pricing.Store = (*PricingStore)(nil)
