package pricing

import "github.com/shopspring/decimal"

// StandardVATRate is the French standard VAT rate applied to public prices.
const StandardVATRate = 0.20

func PercentToRate(percent float64) float64 {
	return percent / 100
}

func RateToPercent(rate float64) float64 {
	return rate * 100
}

// RoundPercent rounds a percent value half away from zero to the given places.
func RoundPercent(percent float64, places int32) float64 {
	if !isFinite(percent) {
		return 0
	}
	return decimal.NewFromFloat(percent).Round(places).InexactFloat64()
}

// RoundPrice rounds an amount to cents.
func RoundPrice(amount float64) float64 {
	if !isFinite(amount) {
		return 0
	}
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// HTToTTC adds standard VAT to a price excluding tax, rounded to cents.
func HTToTTC(ht float64) float64 {
	if !isFinite(ht) {
		return 0
	}
	vat := decimal.NewFromFloat(1 + StandardVATRate)
	return decimal.NewFromFloat(ht).Mul(vat).Round(2).InexactFloat64()
}

// TTCToHT removes standard VAT from a price including tax, rounded to cents.
func TTCToHT(ttc float64) float64 {
	if !isFinite(ttc) {
		return 0
	}
	vat := decimal.NewFromFloat(1 + StandardVATRate)
	return decimal.NewFromFloat(ttc).DivRound(vat, 2).InexactFloat64()
}
