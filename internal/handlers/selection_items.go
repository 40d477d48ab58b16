package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"linkme/internal/middleware"
	"linkme/internal/models"
	"linkme/internal/pricing"
	"linkme/internal/store"
)

type selectionItemView struct {
	models.SelectionItem
	Margins            marginsResponse         `json:"margins"`
	Zone               pricing.Zone            `json:"zone"`
	Breakdown          *pricing.PriceBreakdown `json:"breakdown,omitempty"`
	CatalogClientPrice *float64                `json:"catalogClientPrice,omitempty"`
}

func newSelectionItemView(engine *pricing.Engine, item models.SelectionItem, withBreakdown bool) selectionItemView {
	in := item.PricingInput()
	zones := engine.ComputeMarginZones(in)
	view := selectionItemView{
		SelectionItem: item,
		Margins:       newMarginsResponse(zones),
		Zone:          zones.ZoneOf(item.Margin()),
	}
	if withBreakdown {
		if breakdown, err := engine.ComputePriceBreakdown(in, item.Margin()); err == nil {
			view.Breakdown = &breakdown
		}
		view.CatalogClientPrice = item.CatalogClientPrice()
	}
	return view
}

// canAccessItem limits affiliates to their own lines.
func canAccessItem(claims middleware.Claims, item *models.SelectionItem) bool {
	return claims.IsAdmin() || item.AffiliateID.Hex() == claims.AffiliateID
}

func ListSelectionItems(items store.SelectionItems, engine *pricing.Engine) gin.HandlerFunc {
	const route = "SELECTION_ITEMS_LIST"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		page, err := paginationFromQuery(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := store.SelectionItemFilter{SelectionID: c.Param("selectionId")}
		if !claims.IsAdmin() {
			filter.AffiliateID = &claims.AffiliateID
		}

		found, total, err := items.ListSelectionItems(c.Request.Context(), filter, page)
		if err != nil {
			respondStoreError(c, route, err, "selection not found")
			return
		}

		data := make([]selectionItemView, 0, len(found))
		for _, item := range found {
			data = append(data, newSelectionItemView(engine, item, false))
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       data,
			"pagination": paginationMeta(page, total),
		})
	}
}

func GetSelectionItem(items store.SelectionItems, engine *pricing.Engine) gin.HandlerFunc {
	const route = "SELECTION_ITEM_GET"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		item, err := items.GetSelectionItem(c.Request.Context(), c.Param("selectionId"), c.Param("itemId"))
		if err != nil {
			respondStoreError(c, route, err, "selection item not found")
			return
		}
		if !canAccessItem(claims, item) {
			respondWithError(c, http.StatusNotFound, route, "selection item not found")
			return
		}

		c.JSON(http.StatusOK, newSelectionItemView(engine, *item, true))
	}
}

type updateSelectionItemRequest struct {
	MarginRatePercent *float64 `json:"marginRatePercent" binding:"omitempty,percent"`
	CustomPriceHT     *float64 `json:"customPriceHT" binding:"omitempty,gt=0"`
}

// UpdateSelectionItem checks the new price against the public price ceiling
// before anything is written.
func UpdateSelectionItem(items store.SelectionItems, engine *pricing.Engine) gin.HandlerFunc {
	const route = "SELECTION_ITEM_UPDATE"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req updateSelectionItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.MarginRatePercent == nil && req.CustomPriceHT == nil {
			respondWithError(c, http.StatusBadRequest, route, "marginRatePercent or customPriceHT is required")
			return
		}

		selectionID, itemID := c.Param("selectionId"), c.Param("itemId")
		item, err := items.GetSelectionItem(c.Request.Context(), selectionID, itemID)
		if err != nil {
			respondStoreError(c, route, err, "selection item not found")
			return
		}
		if !canAccessItem(claims, item) {
			respondWithError(c, http.StatusNotFound, route, "selection item not found")
			return
		}

		candidate := *item
		if req.CustomPriceHT != nil {
			candidate.BasePriceHT = *req.CustomPriceHT
		}
		if req.MarginRatePercent != nil {
			candidate.MarginRate = pricing.RoundPercent(*req.MarginRatePercent, 1)
		}

		check := engine.ValidatePriceCeiling(candidate.PricingInput(), candidate.Margin())
		if !check.Accepted() {
			middleware.Logger(c).Info().
				Str("route", route).
				Str("itemId", itemID).
				Float64("finalPrice", check.FinalPrice).
				Float64("overage", check.Overage).
				Msg("price ceiling refused update")

			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"error":           check.Message(),
				"finalPrice":      pricing.RoundPrice(check.FinalPrice),
				"maxAllowedPrice": check.MaxAllowedPrice,
				"overage":         check.Overage,
				"invalidMargin":   check.InvalidMargin,
				"priceOverflow":   check.PriceOverflow,
			})
			return
		}

		// The validated pair is written together, and only over the version
		// that was validated.
		updated, err := items.UpdateSelectionItemPricing(c.Request.Context(), selectionID, itemID, store.SelectionItemPricingUpdate{
			BasePriceHT:       candidate.BasePriceHT,
			MarginRate:        candidate.MarginRate,
			ExpectedUpdatedAt: item.UpdatedAt,
			UpdatedAt:         time.Now().UTC(),
		})
		if errors.Is(err, store.ErrConflict) {
			respondWithError(c, http.StatusConflict, route, "selection item was modified concurrently, reload and retry")
			return
		}
		if err != nil {
			respondStoreError(c, route, err, "selection item not found")
			return
		}

		c.JSON(http.StatusOK, newSelectionItemView(engine, *updated, true))
	}
}
