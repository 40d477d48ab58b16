package pricing

import "fmt"

// ceilingTolerance absorbs float error when the margin sits exactly on MaxMargin.
const ceilingTolerance = 1e-9

// CeilingCheck is the advisory outcome of ValidatePriceCeiling. The caller
// decides whether an invalid check blocks a save.
type CeilingCheck struct {
	Valid           bool     `json:"valid"`
	FinalPrice      float64  `json:"finalPrice"`
	MaxAllowedPrice *float64 `json:"maxAllowedPrice"`
	Overage         float64  `json:"overage"`
	InvalidMargin   bool     `json:"invalidMargin,omitempty"`
	// The margin is valid but the final price does not fit a float64.
	PriceOverflow bool `json:"priceOverflow,omitempty"`
}

// ValidatePriceCeiling checks base/(1-m) * (1+commission) against
// public * (1-buffer). Without a known public price there is no ceiling and
// the check passes.
func (e *Engine) ValidatePriceCeiling(in Input, marginRate float64) CeilingCheck {
	r := e.normalize(in)
	maxAllowed, hasCeiling := r.ceiling()

	var final float64
	marginOK := isFinite(marginRate) && marginRate < 1
	overflow := false
	if marginOK {
		final = r.base / (1 - marginRate) * (1 + r.commission)
		if !isFinite(final) {
			overflow = true
			final = 0
		}
	}

	check := CeilingCheck{
		FinalPrice:    final,
		InvalidMargin: !marginOK,
		PriceOverflow: overflow,
	}
	if !hasCeiling {
		check.Valid = true
		return check
	}

	check.MaxAllowedPrice = &maxAllowed
	if !marginOK || overflow {
		return check
	}
	if final <= maxAllowed*(1+ceilingTolerance) {
		check.Valid = true
		return check
	}
	check.Overage = RoundPrice(final - maxAllowed)
	return check
}

// Accepted reports whether the price may be saved. A line without a ceiling
// still needs a usable margin and a finite price.
func (c CeilingCheck) Accepted() bool {
	return c.Valid && !c.InvalidMargin && !c.PriceOverflow
}

// Message renders the refusal shown to the user, or "" when the price may be
// saved.
func (c CeilingCheck) Message() string {
	switch {
	case c.InvalidMargin:
		return "margin rate must be below 100%"
	case c.PriceOverflow:
		return "final price is too large to compute, reduce the base price"
	case c.Valid:
		return ""
	}
	ceiling := 0.0
	if c.MaxAllowedPrice != nil {
		ceiling = *c.MaxAllowedPrice
	}
	return fmt.Sprintf(
		"final price %.2f exceeds authorized public price %.2f by %.2f, reduce the margin or the base price",
		c.FinalPrice, ceiling, c.Overage,
	)
}
