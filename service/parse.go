package service

import (
	"math"
	"strconv"
	"strings"
)

var amountReplacer = strings.NewReplacer(",", "", "$", "")

// ParseAmount reads a number typed into a form field. Thousands separators and
// a leading dollar sign are ignored. Empty, malformed, NaN and infinite input
// report false.
func ParseAmount(text string) (float64, bool) {
	cleaned := strings.TrimSpace(amountReplacer.Replace(text))
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
