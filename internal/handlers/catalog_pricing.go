package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"linkme/internal/middleware"
	"linkme/internal/models"
	"linkme/internal/pricing"
	"linkme/internal/store"
)

type catalogProductView struct {
	models.CatalogProduct
	PublicPriceTTC *float64 `json:"publicPriceTTC,omitempty"`
}

func newCatalogProductView(product models.CatalogProduct) catalogProductView {
	return catalogProductView{CatalogProduct: product, PublicPriceTTC: product.PublicPriceTTC()}
}

func ListCatalogProducts(products store.CatalogProducts) gin.HandlerFunc {
	const route = "CATALOG_LIST"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		page, err := paginationFromQuery(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		found, total, err := products.ListCatalogProducts(c.Request.Context(), page)
		if err != nil {
			respondStoreError(c, route, err, "catalog not found")
			return
		}

		data := make([]catalogProductView, 0, len(found))
		for _, product := range found {
			data = append(data, newCatalogProductView(product))
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       data,
			"pagination": paginationMeta(page, total),
		})
	}
}

type catalogPricingRequest struct {
	CustomPriceHT         *float64 `json:"customPriceHT" binding:"omitempty,gt=0"`
	PublicPriceHT         *float64 `json:"publicPriceHT" binding:"omitempty,gt=0"`
	PublicPriceTTC        *float64 `json:"publicPriceTTC" binding:"omitempty,gt=0"`
	CommissionRatePercent *float64 `json:"commissionRatePercent" binding:"omitempty,percent"`
	BufferRatePercent     *float64 `json:"bufferRatePercent" binding:"omitempty,percent"`
}

func (r catalogPricingRequest) empty() bool {
	return r.CustomPriceHT == nil && r.PublicPriceHT == nil && r.PublicPriceTTC == nil &&
		r.CommissionRatePercent == nil && r.BufferRatePercent == nil
}

// UpdateCatalogPricing stores the channel prices of a product and refreshes
// its persisted margin range.
func UpdateCatalogPricing(products store.CatalogProducts, engine *pricing.Engine) gin.HandlerFunc {
	const route = "CATALOG_PRICING_UPDATE"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		var req catalogPricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.empty() {
			respondWithError(c, http.StatusBadRequest, route, "no pricing field provided")
			return
		}
		if req.PublicPriceHT != nil && req.PublicPriceTTC != nil {
			respondWithError(c, http.StatusBadRequest, route, "provide publicPriceHT or publicPriceTTC, not both")
			return
		}

		productID := c.Param("productId")
		product, err := products.GetCatalogProduct(c.Request.Context(), productID)
		if err != nil {
			respondStoreError(c, route, err, "product not found")
			return
		}

		candidate := *product
		update := store.CatalogPricingUpdate{UpdatedAt: time.Now().UTC()}
		if req.CustomPriceHT != nil {
			candidate.CustomPriceHT = *req.CustomPriceHT
			update.CustomPriceHT = req.CustomPriceHT
		}
		if req.PublicPriceTTC != nil {
			ht := pricing.TTCToHT(*req.PublicPriceTTC)
			req.PublicPriceHT = &ht
		}
		if req.PublicPriceHT != nil {
			candidate.PublicPriceHT = req.PublicPriceHT
			update.PublicPriceHT = req.PublicPriceHT
		}
		if req.CommissionRatePercent != nil {
			candidate.CommissionRate = req.CommissionRatePercent
			update.CommissionRate = req.CommissionRatePercent
		}
		if req.BufferRatePercent != nil {
			rate := pricing.PercentToRate(*req.BufferRatePercent)
			candidate.BufferRate = &rate
			update.BufferRate = &rate
		}

		zones := engine.ComputeMarginZones(candidate.PricingInput())
		if zones.IsProductSellable {
			update.Margins = &store.CatalogMargins{
				MinMarginRate:       toPercent(zones.MinMargin),
				MaxMarginRate:       toPercent(zones.MaxMargin),
				SuggestedMarginRate: toPercent(zones.SuggestedMargin),
			}
		} else {
			middleware.Logger(c).Warn().
				Str("route", route).
				Str("productId", productID).
				Msg("product not sellable, clearing margin range")
		}

		updated, err := products.UpdateCatalogPricing(c.Request.Context(), productID, update)
		if err != nil {
			respondStoreError(c, route, err, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product": newCatalogProductView(*updated),
			"margins": newMarginsResponse(zones),
		})
	}
}
