package repository

import (
	"context"

	"tradeline-calculator/domain"
)

type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	List(ctx context.Context) ([]domain.CalculationRecord, error)
}
