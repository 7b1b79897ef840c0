package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeline-calculator/domain"
)

func record(balance float64) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:         uuid.New(),
		Balance:    balance,
		ComputedAt: time.Now(),
	}
}

func TestCalculationRepositoryMemory_SaveAndList(t *testing.T) {
	repo := NewCalculationRepositoryMemory(0)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record(1)))
	require.NoError(t, repo.Save(ctx, record(2)))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1.0, records[0].Balance)
	assert.Equal(t, 2.0, records[1].Balance)
}

func TestCalculationRepositoryMemory_DropsOldest(t *testing.T) {
	repo := NewCalculationRepositoryMemory(2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Save(ctx, record(float64(i))))
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2.0, records[0].Balance)
	assert.Equal(t, 3.0, records[1].Balance)
}

func TestCalculationRepositoryMemory_CancelledContext(t *testing.T) {
	repo := NewCalculationRepositoryMemory(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Save(ctx, record(1)), context.Canceled)
	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
