package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkme/internal/pricing"
)

type pricingRequest struct {
	BasePriceHT           *float64 `json:"basePriceHT" binding:"required"`
	PublicPriceHT         *float64 `json:"publicPriceHT"`
	CommissionRatePercent *float64 `json:"commissionRatePercent" binding:"omitempty,percent"`
	BufferRatePercent     *float64 `json:"bufferRatePercent" binding:"omitempty,percent"`
}

func (r pricingRequest) input() pricing.Input {
	in := pricing.Input{
		BasePriceHT:       *r.BasePriceHT,
		PublicPriceHT:     r.PublicPriceHT,
		BufferRatePercent: r.BufferRatePercent,
	}
	if r.CommissionRatePercent != nil {
		in.CommissionRatePercent = *r.CommissionRatePercent
	}
	return in
}

type marginRequest struct {
	pricingRequest
	MarginRate *float64 `json:"marginRate" binding:"required"`
}

// marginPercents is the one-decimal percent view of a MarginResult.
type marginPercents struct {
	MinMargin       float64 `json:"minMargin"`
	MaxMargin       float64 `json:"maxMargin"`
	SuggestedMargin float64 `json:"suggestedMargin"`
	GreenZoneEnd    float64 `json:"greenZoneEnd"`
	OrangeZoneEnd   float64 `json:"orangeZoneEnd"`
}

type marginsResponse struct {
	pricing.MarginResult
	Percent marginPercents `json:"percent"`
}

func toPercent(rate float64) float64 {
	return pricing.RoundPercent(pricing.RateToPercent(rate), 1)
}

func newMarginsResponse(result pricing.MarginResult) marginsResponse {
	return marginsResponse{
		MarginResult: result,
		Percent: marginPercents{
			MinMargin:       toPercent(result.MinMargin),
			MaxMargin:       toPercent(result.MaxMargin),
			SuggestedMargin: toPercent(result.SuggestedMargin),
			GreenZoneEnd:    toPercent(result.GreenZoneEnd),
			OrangeZoneEnd:   toPercent(result.OrangeZoneEnd),
		},
	}
}

type breakdownResponse struct {
	pricing.PriceBreakdown
	Zone pricing.Zone `json:"zone"`
}

type ceilingResponse struct {
	pricing.CeilingCheck
	Message string `json:"message,omitempty"`
}

func ComputeMargins(engine *pricing.Engine) gin.HandlerFunc {
	const route = "PRICING_MARGINS"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		var req pricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		c.JSON(http.StatusOK, newMarginsResponse(engine.ComputeMarginZones(req.input())))
	}
}

func ComputeBreakdown(engine *pricing.Engine) gin.HandlerFunc {
	const route = "PRICING_BREAKDOWN"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		var req marginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		in := req.input()
		breakdown, err := engine.ComputePriceBreakdown(in, *req.MarginRate)
		if err != nil {
			var marginErr *pricing.InvalidMarginError
			if errors.As(err, &marginErr) {
				respondWithError(c, http.StatusUnprocessableEntity, route, err.Error())
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, breakdownResponse{
			PriceBreakdown: breakdown,
			Zone:           engine.ComputeMarginZones(in).ZoneOf(*req.MarginRate),
		})
	}
}

func ValidateCeiling(engine *pricing.Engine) gin.HandlerFunc {
	const route = "PRICING_VALIDATE"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		var req marginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		check := engine.ValidatePriceCeiling(req.input(), *req.MarginRate)
		c.JSON(http.StatusOK, ceilingResponse{CeilingCheck: check, Message: check.Message()})
	}
}
