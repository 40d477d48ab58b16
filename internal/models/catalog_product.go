package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkme/internal/pricing"
)

// CatalogProduct carries the LinkMe channel pricing of a catalog product.
// Margin rates are percents rounded to one decimal, BufferRate is a decimal.
type CatalogProduct struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	SKU                 string             `bson:"sku" json:"sku"`
	CustomPriceHT       float64            `bson:"custom_price_ht" json:"customPriceHT"`
	PublicPriceHT       *float64           `bson:"public_price_ht,omitempty" json:"publicPriceHT,omitempty"`
	CommissionRate      *float64           `bson:"linkme_commission_rate,omitempty" json:"commissionRate,omitempty"`
	BufferRate          *float64           `bson:"buffer_rate,omitempty" json:"bufferRate,omitempty"`
	MinMarginRate       *float64           `bson:"min_margin_rate,omitempty" json:"minMarginRate,omitempty"`
	MaxMarginRate       *float64           `bson:"max_margin_rate,omitempty" json:"maxMarginRate,omitempty"`
	SuggestedMarginRate *float64           `bson:"suggested_margin_rate,omitempty" json:"suggestedMarginRate,omitempty"`
	IsEnabled           bool               `bson:"is_enabled" json:"isEnabled"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p CatalogProduct) PricingInput() pricing.Input {
	in := pricing.Input{
		BasePriceHT:   p.CustomPriceHT,
		PublicPriceHT: p.PublicPriceHT,
	}
	if p.CommissionRate != nil {
		in.CommissionRatePercent = *p.CommissionRate
	}
	if p.BufferRate != nil {
		percent := pricing.RateToPercent(*p.BufferRate)
		in.BufferRatePercent = &percent
	}
	return in
}

// PublicPriceTTC is the public price including standard VAT.
func (p CatalogProduct) PublicPriceTTC() *float64 {
	if p.PublicPriceHT == nil {
		return nil
	}
	ttc := pricing.HTToTTC(*p.PublicPriceHT)
	return &ttc
}
