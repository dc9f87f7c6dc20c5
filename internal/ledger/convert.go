// Package ledger implements the financial math behind the auction tracker:
// RMB/USD conversion, per-kilogram pricing, commission, and the per-product
// summary fold used by the summary and metrics endpoints. Everything here is
// pure; persistence and transport live elsewhere.
package ledger

const (
	// DefaultExchangeRate is RMB per one USD, applied when a header has no
	// usable rate. Conversion always divides: usd = rmb / rate.
	DefaultExchangeRate = 7.14

	// DefaultCommissionRate applies when an auction has no linked house.
	DefaultCommissionRate = 0.02
)

// ToUSD converts an RMB amount using an RMB-per-USD exchange rate.
// A rate of zero or less falls back to DefaultExchangeRate.
func ToUSD(amountRmb, exchangeRate float64) float64 {
	if exchangeRate <= 0 {
		exchangeRate = DefaultExchangeRate
	}
	return amountRmb / exchangeRate
}

// PricePerKg returns the USD price per kilogram, or 0 when the weight is
// not positive. Never NaN or Inf.
func PricePerKg(priceUsd, weightKg float64) float64 {
	if weightKg <= 0 {
		return 0
	}
	return priceUsd / weightKg
}

// DerivedPrices computes both derived money fields of a line item from its
// winning bid, weight and the auction exchange rate.
func DerivedPrices(bidRmb, weightKg, exchangeRate float64) (priceSold, pricePerKg float64) {
	priceSold = ToUSD(bidRmb, exchangeRate)
	pricePerKg = PricePerKg(priceSold, weightKg)
	return priceSold, pricePerKg
}

// Commission returns the house commission in USD on a total RMB bid volume.
// Zero rates fall back to the defaults. Monotone in totalBidRmb.
func Commission(totalBidRmb, commissionRate, exchangeRate float64) float64 {
	if commissionRate <= 0 {
		commissionRate = DefaultCommissionRate
	}
	return ToUSD(totalBidRmb*commissionRate, exchangeRate)
}
