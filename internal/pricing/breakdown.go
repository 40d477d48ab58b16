package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidMargin = errors.New("invalid margin rate")

// InvalidMarginError is returned when a margin rate would make the selling
// price undefined (rate >= 1) or non-finite.
type InvalidMarginError struct {
	Margin float64
}

func (e *InvalidMarginError) Error() string {
	return fmt.Sprintf("invalid margin rate %v: must be a finite value below 1", e.Margin)
}

func (e *InvalidMarginError) Is(target error) bool {
	return target == ErrInvalidMargin
}

// PriceBreakdown lists the prices along the markup chain for one margin.
type PriceBreakdown struct {
	SellingPriceWithMargin   float64 `json:"sellingPriceWithMargin"`
	FinalPriceWithCommission float64 `json:"finalPriceWithCommission"`
	// Base price plus commission, without the affiliate margin.
	ClientPrice      float64 `json:"clientPrice"`
	MaxAllowedPrice  float64 `json:"maxAllowedPrice"`
	HasCeiling       bool    `json:"hasCeiling"`
	MarginAmount     float64 `json:"marginAmount"`
	CommissionAmount float64 `json:"commissionAmount"`
}

// ComputePriceBreakdown applies the margin on the sale price
// (base / (1 - m)) and the commission on top of it. The margin is not
// restricted to the sellable range.
func (e *Engine) ComputePriceBreakdown(in Input, marginRate float64) (PriceBreakdown, error) {
	if !isFinite(marginRate) || marginRate >= 1 {
		return PriceBreakdown{}, &InvalidMarginError{Margin: marginRate}
	}

	r := e.normalize(in)
	selling := r.base / (1 - marginRate)
	b := PriceBreakdown{
		SellingPriceWithMargin:   selling,
		FinalPriceWithCommission: selling * (1 + r.commission),
		ClientPrice:              r.base * (1 + r.commission),
		MarginAmount:             selling - r.base,
		CommissionAmount:         r.base * r.commission,
	}
	for _, v := range []float64{
		b.SellingPriceWithMargin,
		b.FinalPriceWithCommission,
		b.ClientPrice,
		b.MarginAmount,
		b.CommissionAmount,
	} {
		if !isFinite(v) {
			return PriceBreakdown{}, &InvalidMarginError{Margin: marginRate}
		}
	}

	if maxAllowed, ok := r.ceiling(); ok {
		b.MaxAllowedPrice = maxAllowed
		b.HasCeiling = true
	}
	return b, nil
}
