package memory

import (
	"context"
	"sort"
	"sync"

	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/shared/events"
)

// LeadRepository is an in-memory implementation used in dev mode and tests.
type LeadRepository struct {
	mu    sync.RWMutex
	items map[domainleads.LeadID]*domainleads.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{items: make(map[domainleads.LeadID]*domainleads.Lead)}
}

// ByID returns a lead or leads.ErrLeadNotFound.
func (r *LeadRepository) ByID(ctx context.Context, id domainleads.LeadID) (*domainleads.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.items[id]
	if !ok {
		return nil, domainleads.ErrLeadNotFound
	}
	clone := *lead
	clone.EventRecorder = events.EventRecorder{}
	return &clone, nil
}

// Save stores or updates a lead entry. The stored copy never carries the
// caller's pending events: those belong to the in-flight command, and keeping
// them here would replay them on the next load-and-drain.
func (r *LeadRepository) Save(ctx context.Context, lead *domainleads.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.Version++
	clone := *lead
	clone.EventRecorder = events.EventRecorder{}
	r.items[lead.ID] = &clone
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id domainleads.LeadID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainleads.ErrLeadNotFound
	}
	delete(r.items, id)
	return nil
}

// List returns all leads ordered by creation time, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]*domainleads.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainleads.Lead, 0, len(r.items))
	for _, lead := range r.items {
		clone := *lead
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *LeadRepository) ListByStage(ctx context.Context, stage domainleads.Stage) ([]*domainleads.Lead, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domainleads.Lead, 0, len(all))
	for _, lead := range all {
		if lead.Stage == stage {
			out = append(out, lead)
		}
	}
	return out, nil
}

var _ domainleads.Repository = (*LeadRepository)(nil)
