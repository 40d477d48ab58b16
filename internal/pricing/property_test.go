package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func sellableInput(base, spread, commission, buffer float64) Input {
	// spread >= 1 keeps the line sellable for commission and buffer up to 30%
	public := base * (1 + spread)
	return Input{
		BasePriceHT:           base,
		PublicPriceHT:         &public,
		CommissionRatePercent: commission * 100,
		BufferRatePercent:     ptr(buffer * 100),
	}
}

func priceGens() []gopter.Gen {
	return []gopter.Gen{
		gen.Float64Range(1, 10000),
		gen.Float64Range(1, 5),
		gen.Float64Range(0, 0.3),
		gen.Float64Range(0, 0.3),
	}
}

func TestMarginZonesOrderingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("sellable inputs produce ordered zones", prop.ForAll(
		func(base, spread, commission, buffer float64) bool {
			got := ComputeMarginZones(sellableInput(base, spread, commission, buffer))
			return got.IsProductSellable &&
				got.MinMargin >= 0 &&
				got.MinMargin < got.GreenZoneEnd &&
				got.GreenZoneEnd < got.OrangeZoneEnd &&
				got.OrangeZoneEnd <= got.MaxMargin
		},
		priceGens()...,
	))

	properties.Property("zone bounds split the range 60/85", prop.ForAll(
		func(base, spread, commission, buffer float64) bool {
			got := ComputeMarginZones(sellableInput(base, spread, commission, buffer))
			span := got.MaxMargin - got.MinMargin
			return math.Abs(got.GreenZoneEnd-got.MinMargin-0.6*span) < 1e-12 &&
				math.Abs(got.OrangeZoneEnd-got.MinMargin-0.85*span) < 1e-12
		},
		priceGens()...,
	))

	properties.Property("identical inputs give identical results", prop.ForAll(
		func(base, spread, commission, buffer float64) bool {
			in := sellableInput(base, spread, commission, buffer)
			return ComputeMarginZones(in) == ComputeMarginZones(in)
		},
		priceGens()...,
	))

	properties.TestingRun(t)
}

func TestCeilingRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("margins inside [min, max] pass the ceiling", prop.ForAll(
		func(base, spread, commission, buffer, position float64) bool {
			in := sellableInput(base, spread, commission, buffer)
			zones := ComputeMarginZones(in)
			margin := zones.MinMargin + (zones.MaxMargin-zones.MinMargin)*position
			return ValidatePriceCeiling(in, margin).Valid
		},
		append(priceGens(), gen.Float64Range(0, 1))...,
	))

	properties.Property("margins above max fail the ceiling", prop.ForAll(
		func(base, spread, commission, buffer float64) bool {
			in := sellableInput(base, spread, commission, buffer)
			zones := ComputeMarginZones(in)
			check := ValidatePriceCeiling(in, zones.MaxMargin+1e-4)
			return !check.Valid && check.FinalPrice > *check.MaxAllowedPrice
		},
		priceGens()...,
	))

	properties.TestingRun(t)
}

func TestNoNonFiniteOutputProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	finite := func(values ...float64) bool {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}

	properties.Property("arbitrary inputs never leak NaN or Inf", prop.ForAll(
		func(base, public, commission, buffer, margin float64) bool {
			in := Input{
				BasePriceHT:           base,
				PublicPriceHT:         &public,
				CommissionRatePercent: commission,
				BufferRatePercent:     &buffer,
			}
			zones := ComputeMarginZones(in)
			if !finite(zones.MinMargin, zones.MaxMargin, zones.SuggestedMargin, zones.GreenZoneEnd, zones.OrangeZoneEnd, zones.MaxAllowedPrice) {
				return false
			}
			check := ValidatePriceCeiling(in, margin)
			if !finite(check.FinalPrice, check.Overage) {
				return false
			}
			breakdown, err := ComputePriceBreakdown(in, margin)
			if err != nil {
				return errors.Is(err, ErrInvalidMargin)
			}
			return finite(
				breakdown.SellingPriceWithMargin,
				breakdown.FinalPriceWithCommission,
				breakdown.ClientPrice,
				breakdown.MaxAllowedPrice,
				breakdown.MarginAmount,
				breakdown.CommissionAmount,
			)
		},
		gen.OneGenOf(gen.Float64Range(-1000, 1e6), gen.Float64Range(1e307, math.MaxFloat64)),
		gen.OneGenOf(gen.Float64Range(-1000, 1e6), gen.Float64Range(1e307, math.MaxFloat64)),
		gen.Float64Range(-50, 150),
		gen.Float64Range(-50, 150),
		gen.OneGenOf(gen.Float64Range(-2, 1.5), gen.Float64Range(-1e6, -1)),
	))

	properties.TestingRun(t)
}
