package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkme/internal/pricing"
)

// SelectionItem is one product line of an affiliate LinkMe selection.
//
// Units follow the stored schema: CommissionRate and MarginRate are percents
// (11 = 11%), BufferRate is a decimal (0.05 = 5%).
type SelectionItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SelectionID    primitive.ObjectID `bson:"selectionId" json:"selectionId"`
	ProductID      primitive.ObjectID `bson:"productId" json:"productId"`
	AffiliateID    primitive.ObjectID `bson:"affiliateId" json:"affiliateId"`
	ProductName    string             `bson:"productName" json:"productName"`
	SKU            string             `bson:"sku,omitempty" json:"sku,omitempty"`
	BasePriceHT    float64            `bson:"base_price_ht" json:"basePriceHT"`
	PublicPriceHT  *float64           `bson:"public_price_ht,omitempty" json:"publicPriceHT,omitempty"`
	CatalogPriceHT *float64           `bson:"catalog_price_ht,omitempty" json:"catalogPriceHT,omitempty"`
	CommissionRate float64            `bson:"commission_rate" json:"commissionRate"`
	BufferRate     *float64           `bson:"buffer_rate,omitempty" json:"bufferRate,omitempty"`
	MarginRate     float64            `bson:"margin_rate" json:"marginRate"`
	SellingPoints  StringList         `bson:"sellingPoints,omitempty" json:"sellingPoints,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PricingInput converts the stored line into engine input, moving the
// decimal buffer rate to its percent form.
func (s SelectionItem) PricingInput() pricing.Input {
	in := pricing.Input{
		BasePriceHT:           s.BasePriceHT,
		PublicPriceHT:         s.PublicPriceHT,
		CommissionRatePercent: s.CommissionRate,
	}
	if s.BufferRate != nil {
		percent := pricing.RateToPercent(*s.BufferRate)
		in.BufferRatePercent = &percent
	}
	return in
}

// Margin returns the stored margin as a decimal rate.
func (s SelectionItem) Margin() float64 {
	return pricing.PercentToRate(s.MarginRate)
}

// CatalogClientPrice is the client price when the catalog price is used
// instead of the selection base price.
func (s SelectionItem) CatalogClientPrice() *float64 {
	if s.CatalogPriceHT == nil || *s.CatalogPriceHT <= 0 {
		return nil
	}
	price := *s.CatalogPriceHT * (1 + pricing.PercentToRate(s.CommissionRate))
	return &price
}
