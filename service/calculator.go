package service

import "tradeline-calculator/domain"

// calculatorInputs is replaced wholesale on every change, never mutated.
type calculatorInputs struct {
	balance string
	limit   string
	mode    domain.TargetMode
	custom  string
}

// Calculator holds the state of one interactive calculation. Every setter
// recomputes synchronously, so Result always reflects the current inputs and a
// previous result never outlives the inputs that produced it.
// A Calculator is not safe for concurrent use.
type Calculator struct {
	inputs calculatorInputs
	target float64
	result *domain.CalculationResult
}

func NewCalculator() *Calculator {
	c := &Calculator{inputs: calculatorInputs{mode: domain.TargetOptimal}}
	c.recompute()
	return c
}

func (c *Calculator) SetBalance(text string) {
	next := c.inputs
	next.balance = text
	c.apply(next)
}

func (c *Calculator) SetCreditLimit(text string) {
	next := c.inputs
	next.limit = text
	c.apply(next)
}

// SetTargetMode switches between the fixed targets and the custom one. An
// empty mode selects optimal.
func (c *Calculator) SetTargetMode(mode domain.TargetMode) error {
	if mode == "" {
		mode = domain.TargetOptimal
	}
	if _, _, err := ResolveTarget(mode, ""); err != nil {
		return err
	}
	next := c.inputs
	next.mode = mode
	c.apply(next)
	return nil
}

// SetCustomTarget records the custom percentage. It only takes effect while
// the custom mode is active.
func (c *Calculator) SetCustomTarget(text string) {
	next := c.inputs
	next.custom = text
	c.apply(next)
}

// Result returns the current result, or false while inputs are incomplete.
func (c *Calculator) Result() (domain.CalculationResult, bool) {
	if c.result == nil {
		return domain.CalculationResult{}, false
	}
	return *c.result, true
}

// ActiveTarget returns the target percentage in effect, or false when the
// custom target is selected but not usable.
func (c *Calculator) ActiveTarget() (float64, bool) {
	return c.target, c.target > 0
}

// Mode returns the selected target mode.
func (c *Calculator) Mode() domain.TargetMode {
	return c.inputs.mode
}

// Outcome renders the current state the way the service layer reports it.
func (c *Calculator) Outcome() domain.CalculationOutcome {
	if c.result == nil {
		return awaitingOutcome(c.target)
	}
	return computedOutcome(*c.result, c.target)
}

func (c *Calculator) apply(next calculatorInputs) {
	c.inputs = next
	c.recompute()
}

func (c *Calculator) recompute() {
	c.result = nil
	c.target = 0

	target, ok, err := ResolveTarget(c.inputs.mode, c.inputs.custom)
	if err != nil || !ok {
		return
	}
	c.target = target

	balance, okBalance := ParseAmount(c.inputs.balance)
	limit, okLimit := ParseAmount(c.inputs.limit)
	if !okBalance || !okLimit {
		return
	}

	if result, ok := Compute(balance, limit, target); ok {
		c.result = &result
	}
}

func awaitingOutcome(target float64) domain.CalculationOutcome {
	return domain.CalculationOutcome{
		Status: domain.StatusAwaitingInput,
		Target: target,
	}
}

func computedOutcome(result domain.CalculationResult, target float64) domain.CalculationOutcome {
	return domain.CalculationOutcome{
		Status:  domain.StatusComputed,
		Target:  target,
		Result:  &result,
		Band:    ClassifyUtilization(result.CurrentUtilizationPercent),
		Display: displayValues(result, target),
	}
}
