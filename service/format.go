package service

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tradeline-calculator/domain"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders whole US dollars with grouping, e.g. "$162,000".
// Halves round away from zero.
func FormatCurrency(amount float64) string {
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	if rounded >= math.MaxInt64 {
		return sign + "$" + usPrinter.Sprintf("%.0f", rounded)
	}
	return sign + "$" + usPrinter.Sprintf("%d", int64(rounded))
}

// FormatPercent renders one decimal place, e.g. "100.0%".
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", math.Round(percent*10)/10)
}

// FormatTarget renders a target percentage in its shortest form, e.g. "30",
// "12.5". Extreme values switch to an exponent ("1e-320").
func FormatTarget(percent float64) string {
	return strconv.FormatFloat(percent, 'g', -1, 64)
}

func resultMessage(result domain.CalculationResult, target float64) string {
	if result.AlreadyAtOrBelowTarget {
		return fmt.Sprintf("No AU tradeline needed! You're already below your target utilization of %s%%.",
			FormatTarget(target))
	}
	return fmt.Sprintf("To reach your target of under %s%% utilization, you need AU tradeline(s) totaling %s in credit limits. "+
		"This could be one high-limit card or multiple cards that add up to this amount.",
		FormatTarget(target), FormatCurrency(result.AdditionalCreditNeeded))
}

func displayValues(result domain.CalculationResult, target float64) *domain.DisplayValues {
	additional := FormatCurrency(result.AdditionalCreditNeeded)
	if result.AlreadyAtOrBelowTarget {
		additional = FormatCurrency(0)
	}
	return &domain.DisplayValues{
		CurrentUtilization:     FormatPercent(result.CurrentUtilizationPercent),
		RequiredTotalCredit:    FormatCurrency(result.RequiredTotalCreditLimit),
		AdditionalCreditNeeded: additional,
		Target:                 FormatTarget(target) + "%",
		Message:                resultMessage(result, target),
	}
}
