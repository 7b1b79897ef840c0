package repository

import (
	"context"
	"sync"

	"tradeline-calculator/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
// It keeps at most limit records, dropping the oldest first. A limit <= 0 keeps everything.
type CalculationRepositoryMemory struct {
	mu    sync.RWMutex
	limit int
	data  []domain.CalculationRecord
}

// NewCalculationRepositoryMemory creates a new in-memory calculation repository.
func NewCalculationRepositoryMemory(limit int) *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		limit: limit,
		data:  []domain.CalculationRecord{},
	}
}

// Save stores the calculation record in memory.
func (r *CalculationRepositoryMemory) Save(
	ctx context.Context,
	record domain.CalculationRecord,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, record)
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = append([]domain.CalculationRecord(nil), r.data[len(r.data)-r.limit:]...)
	}
	return nil
}

// List returns a copy of the stored records, oldest first.
func (r *CalculationRepositoryMemory) List(ctx context.Context) ([]domain.CalculationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CalculationRecord, len(r.data))
	copy(out, r.data)
	return out, nil
}
