package submissionmock

import (
	"context"
	"sync"

	domain "onboarding-service/internal/domain/submission"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset CreateFn is a no-op; unset ListByPlaceFn returns context.Canceled.
type Repo struct {
	CreateFn      func(ctx context.Context, r *domain.Record) error
	ListByPlaceFn func(ctx context.Context, placeID string) ([]domain.Record, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByPlace(ctx context.Context, placeID string) ([]domain.Record, error) {
	if m.ListByPlaceFn != nil {
		return m.ListByPlaceFn(ctx, placeID)
	}
	return nil, context.Canceled
}

// Memory is an in-memory Repository assigning sequential IDs.
type Memory struct {
	mu      sync.Mutex
	records []domain.Record
}

func (m *Memory) Create(_ context.Context, r *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uint64(len(m.records) + 1)
	m.records = append(m.records, *r)
	return nil
}

func (m *Memory) ListByPlace(_ context.Context, placeID string) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Record, 0)
	for _, r := range m.records {
		if r.PlaceID == placeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
