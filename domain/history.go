package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalculationRecord is one computed result kept in the calculation history.
type CalculationRecord struct {
	ID          uuid.UUID         `json:"id"`
	Balance     float64           `json:"balance"`
	CreditLimit float64           `json:"credit_limit"`
	Target      float64           `json:"target"`
	Result      CalculationResult `json:"result"`
	ComputedAt  time.Time         `json:"computed_at"`
}
