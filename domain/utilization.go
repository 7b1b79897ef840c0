package domain

// TargetMode selects which target utilization applies to a calculation.
type TargetMode string

const (
	TargetOptimal  TargetMode = "optimal"  // 10%
	TargetStandard TargetMode = "standard" // 30%
	TargetCustom   TargetMode = "custom"
)

// UtilizationInput is the raw form input. Amounts are kept as text so that
// thousands separators ("18,000") and partially typed values reach the parser.
type UtilizationInput struct {
	CurrentBalance     string     `json:"current_balance"`
	CurrentCreditLimit string     `json:"current_credit_limit"`
	TargetMode         TargetMode `json:"target_mode" validate:"omitempty,oneof=optimal standard custom"`
	CustomTarget       string     `json:"custom_target,omitempty"`
}

type CalculationResult struct {
	CurrentUtilizationPercent float64 `json:"current_utilization_percent"`
	RequiredTotalCreditLimit  float64 `json:"required_total_credit_limit"`
	AdditionalCreditNeeded    float64 `json:"additional_credit_needed"`
	AlreadyAtOrBelowTarget    bool    `json:"already_at_or_below_target"`
}

// UtilizationBand buckets the current utilization by its expected score impact.
type UtilizationBand string

const (
	BandIdeal  UtilizationBand = "ideal"  // under 10%
	BandGood   UtilizationBand = "good"   // 10-30%
	BandHigh   UtilizationBand = "high"   // over 30%
	BandRisky  UtilizationBand = "risky"  // over 50%
	BandSevere UtilizationBand = "severe" // 90-100%
)

// DisplayValues are the result values rounded for presentation.
type DisplayValues struct {
	CurrentUtilization     string `json:"current_utilization"`
	RequiredTotalCredit    string `json:"required_total_credit"`
	AdditionalCreditNeeded string `json:"additional_credit_needed"`
	Target                 string `json:"target"`
	Message                string `json:"message"`
}

// CalculationOutcome is what the service layer returns for one input. A nil
// Result means the input is incomplete and the caller should keep waiting.
type CalculationOutcome struct {
	Status  string             `json:"status"`
	Target  float64            `json:"target,omitempty"`
	Result  *CalculationResult `json:"result,omitempty"`
	Band    UtilizationBand    `json:"band,omitempty"`
	Display *DisplayValues     `json:"display,omitempty"`
}

const (
	StatusComputed      = "computed"
	StatusAwaitingInput = "awaiting_input"
)
