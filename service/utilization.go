package service

import (
	"math"

	"tradeline-calculator/domain"
)

// Compute derives the credit needed to bring balance/limit down to
// targetPercent. It reports false instead of a result when any input is not a
// finite, strictly positive number, so no Inf or NaN ever reaches a caller.
// Values are kept at full precision; rounding is left to the Format helpers.
func Compute(balance, limit, targetPercent float64) (domain.CalculationResult, bool) {
	if !isPositiveFinite(balance) || !isPositiveFinite(limit) || !isPositiveFinite(targetPercent) {
		return domain.CalculationResult{}, false
	}

	current := balance / limit * 100
	required := balance / (targetPercent / 100)
	additional := math.Max(0, required-limit)

	// Finite inputs can still overflow, e.g. a huge balance over a tiny limit.
	if !isFinite(current) || !isFinite(required) || !isFinite(additional) {
		return domain.CalculationResult{}, false
	}

	return domain.CalculationResult{
		CurrentUtilizationPercent: current,
		RequiredTotalCreditLimit:  required,
		AdditionalCreditNeeded:    additional,
		AlreadyAtOrBelowTarget:    current <= targetPercent,
	}, true
}

// ClassifyUtilization maps a utilization percentage to its score impact band.
func ClassifyUtilization(percent float64) domain.UtilizationBand {
	switch {
	case percent <= idealBandCeiling:
		return domain.BandIdeal
	case percent <= goodBandCeiling:
		return domain.BandGood
	case percent <= highBandCeiling:
		return domain.BandHigh
	case percent < severeBandFloor:
		return domain.BandRisky
	default:
		return domain.BandSevere
	}
}

// ResolveTarget returns the target percentage for mode. An empty mode means
// optimal. The bool is false when a custom target is missing or unusable.
func ResolveTarget(mode domain.TargetMode, custom string) (float64, bool, error) {
	switch mode {
	case "", domain.TargetOptimal:
		return OptimalTargetPercent, true, nil
	case domain.TargetStandard:
		return StandardTargetPercent, true, nil
	case domain.TargetCustom:
		v, ok := ParseAmount(custom)
		if !ok || v <= 0 {
			return 0, false, nil
		}
		return v, true, nil
	default:
		return 0, false, ErrUnknownTargetMode
	}
}

func isPositiveFinite(v float64) bool {
	return v > 0 && isFinite(v)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
