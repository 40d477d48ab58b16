package pricing

import "math"

// Input is the pricing situation of one selection line.
type Input struct {
	BasePriceHT           float64  `json:"basePriceHT"`
	PublicPriceHT         *float64 `json:"publicPriceHT,omitempty"`
	CommissionRatePercent float64  `json:"commissionRatePercent"`
	// nil falls back to Config.DefaultBufferRate.
	BufferRatePercent *float64 `json:"bufferRatePercent,omitempty"`
}

// rates is Input after normalization: decimals only, no NaN or Inf.
type rates struct {
	base       float64
	public     float64
	hasPublic  bool
	commission float64
	buffer     float64
}

func (e *Engine) normalize(in Input) rates {
	r := rates{
		base:       finiteOrZero(in.BasePriceHT),
		commission: PercentToRate(clampPercent(in.CommissionRatePercent)),
		buffer:     e.cfg.DefaultBufferRate,
	}
	if in.PublicPriceHT != nil && isFinite(*in.PublicPriceHT) && *in.PublicPriceHT > 0 {
		r.public = *in.PublicPriceHT
		r.hasPublic = true
	}
	if in.BufferRatePercent != nil && isFinite(*in.BufferRatePercent) {
		r.buffer = PercentToRate(clampPercent(*in.BufferRatePercent))
	}
	return r
}

// ceiling is the highest final price (commission included) allowed for the line.
func (r rates) ceiling() (float64, bool) {
	if !r.hasPublic {
		return 0, false
	}
	return r.public * (1 - r.buffer), true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

func clampPercent(p float64) float64 {
	switch {
	case !isFinite(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
