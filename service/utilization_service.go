package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradeline-calculator/domain"
	"tradeline-calculator/metrics"
	"tradeline-calculator/repository"
)

// Evaluation is a parsed input together with its result. Result is nil while
// the input is incomplete.
type Evaluation struct {
	Balance     float64
	CreditLimit float64
	Target      float64
	Result      *domain.CalculationResult
}

// Outcome converts the evaluation to its reported form.
func (e Evaluation) Outcome() domain.CalculationOutcome {
	if e.Result == nil {
		return awaitingOutcome(e.Target)
	}
	return computedOutcome(*e.Result, e.Target)
}

// actionable reports whether share and export are offered: a result exists
// and the target is not met yet.
func (e Evaluation) actionable() bool {
	return e.Result != nil && !e.Result.AlreadyAtOrBelowTarget
}

type UtilizationService struct {
	repo     repository.CalculationRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	now      func() time.Time
}

// NewUtilizationService creates a UtilizationService. cache may be nil.
func NewUtilizationService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *UtilizationService {
	return &UtilizationService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Calculate evaluates input and reports it. Incomplete input is not an error.
func (s *UtilizationService) Calculate(
	ctx context.Context,
	input domain.UtilizationInput,
) (domain.CalculationOutcome, error) {
	ev, err := s.Evaluate(ctx, input)
	if err != nil {
		return domain.CalculationOutcome{}, err
	}
	return ev.Outcome(), nil
}

// Evaluate parses input and computes its result. The only errors are an
// unknown target mode and a cancelled context.
func (s *UtilizationService) Evaluate(
	ctx context.Context,
	input domain.UtilizationInput,
) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}

	target, ok, err := ResolveTarget(input.TargetMode, input.CustomTarget)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: %q", err, input.TargetMode)
	}

	ev := Evaluation{Target: target}
	balance, okBalance := ParseAmount(input.CurrentBalance)
	limit, okLimit := ParseAmount(input.CurrentCreditLimit)
	if !ok || !okBalance || !okLimit {
		metrics.IncreaseCalculationsTotalMetric(domain.StatusAwaitingInput)
		return ev, nil
	}
	ev.Balance = balance
	ev.CreditLimit = limit

	result, computed := s.lookup(ctx, balance, limit, target)
	if !computed {
		metrics.IncreaseCalculationsTotalMetric(domain.StatusAwaitingInput)
		return ev, nil
	}
	ev.Result = &result
	metrics.IncreaseCalculationsTotalMetric(domain.StatusComputed)

	// Saving the history is not critical.
	record := domain.CalculationRecord{
		ID:          uuid.New(),
		Balance:     balance,
		CreditLimit: limit,
		Target:      target,
		Result:      result,
		ComputedAt:  s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		zap.S().Named("utilization_service").Warnw("failed to save calculation", "error", err)
	}

	return ev, nil
}

// History returns the stored calculations, oldest first.
func (s *UtilizationService) History(ctx context.Context) ([]domain.CalculationRecord, error) {
	return s.repo.List(ctx)
}

func (s *UtilizationService) lookup(ctx context.Context, balance, limit, target float64) (domain.CalculationResult, bool) {
	if s.cache == nil {
		return Compute(balance, limit, target)
	}

	key := cacheKey(balance, limit, target)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.CalculationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, true
		}
		zap.S().Named("utilization_service").Warnw("discarding unreadable cache entry", "key", key)
	}

	result, ok := Compute(balance, limit, target)
	if !ok {
		return result, false
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
			zap.S().Named("utilization_service").Warnw("failed to cache calculation", "key", key, "error", err)
		}
	}
	return result, true
}

func cacheKey(balance, limit, target float64) string {
	normalized := strconv.FormatFloat(balance, 'g', -1, 64) + "|" +
		strconv.FormatFloat(limit, 'g', -1, 64) + "|" +
		strconv.FormatFloat(target, 'g', -1, 64)
	return strconv.FormatUint(xxhash.Sum64String(normalized), 16)
}
