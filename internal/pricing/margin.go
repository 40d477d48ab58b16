package pricing

// MarginResult describes the affiliate margins a line can take.
// All values are decimals. A line that cannot be sold has every field zeroed.
type MarginResult struct {
	IsProductSellable bool    `json:"isProductSellable"`
	MinMargin         float64 `json:"minMargin"`
	MaxMargin         float64 `json:"maxMargin"`
	SuggestedMargin   float64 `json:"suggestedMargin"`
	GreenZoneEnd      float64 `json:"greenZoneEnd"`
	OrangeZoneEnd     float64 `json:"orangeZoneEnd"`
	MaxAllowedPrice   float64 `json:"maxAllowedPrice"`
}

type Zone string

const (
	ZoneGreen      Zone = "green"
	ZoneOrange     Zone = "orange"
	ZoneRed        Zone = "red"
	ZoneOutOfRange Zone = "out_of_range"
)

// ComputeMarginZones solves the highest margin keeping
// base/(1-m) * (1+commission) under the public price ceiling, then splits
// [min, max] into green, orange and red bands.
func (e *Engine) ComputeMarginZones(in Input) MarginResult {
	r := e.normalize(in)
	if r.base <= 0 {
		return MarginResult{}
	}

	maxAllowed, ok := r.ceiling()
	if !ok || maxAllowed <= 0 {
		return MarginResult{}
	}

	maxMargin := 1 - (r.base*(1+r.commission))/maxAllowed
	minMargin := e.cfg.MinMargin
	if !isFinite(maxMargin) || maxMargin <= minMargin {
		return MarginResult{}
	}

	span := maxMargin - minMargin
	greenEnd := minMargin + span*e.cfg.GreenZoneShare
	orangeEnd := minMargin + span*e.cfg.OrangeZoneShare

	return MarginResult{
		IsProductSellable: true,
		MinMargin:         minMargin,
		MaxMargin:         maxMargin,
		SuggestedMargin:   greenEnd,
		GreenZoneEnd:      greenEnd,
		OrangeZoneEnd:     orangeEnd,
		MaxAllowedPrice:   maxAllowed,
	}
}

// ZoneOf classifies a margin against the result bands. Band upper bounds are
// inclusive so that SuggestedMargin is reported green.
func (m MarginResult) ZoneOf(margin float64) Zone {
	if !m.IsProductSellable || !isFinite(margin) || margin < m.MinMargin || margin > m.MaxMargin {
		return ZoneOutOfRange
	}
	switch {
	case margin <= m.GreenZoneEnd:
		return ZoneGreen
	case margin <= m.OrangeZoneEnd:
		return ZoneOrange
	default:
		return ZoneRed
	}
}
