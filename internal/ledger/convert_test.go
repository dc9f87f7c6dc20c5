package ledger

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestToUSD(t *testing.T) {
	tests := []struct {
		name string
		rmb  float64
		rate float64
		want float64
	}{
		{name: "standard rate", rmb: 3200, rate: 7.14, want: 448.18},
		{name: "zero rate falls back to default", rmb: 714, rate: 0, want: 100},
		{name: "negative rate falls back to default", rmb: 714, rate: -1, want: 100},
		{name: "zero amount", rmb: 0, rate: 7.14, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToUSD(tt.rmb, tt.rate)
			if !almostEqual(got, tt.want, 0.005) {
				t.Errorf("ToUSD(%v, %v) = %v, want %v", tt.rmb, tt.rate, got, tt.want)
			}
		})
	}
}

func TestPricePerKg(t *testing.T) {
	tests := []struct {
		name   string
		usd    float64
		weight float64
		want   float64
	}{
		{name: "normal", usd: 448.18, weight: 5.2, want: 86.19},
		{name: "zero weight yields zero", usd: 1000, weight: 0, want: 0},
		{name: "negative weight yields zero", usd: 1000, weight: -2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PricePerKg(tt.usd, tt.weight)
			if !almostEqual(got, tt.want, 0.005) {
				t.Errorf("PricePerKg(%v, %v) = %v, want %v", tt.usd, tt.weight, got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("PricePerKg(%v, %v) not finite: %v", tt.usd, tt.weight, got)
			}
		})
	}
}

// The round-trip from the data-entry screen: a 3200 RMB winning bid on a
// 5.2 kg lot at the default rate.
func TestDerivedPricesRoundTrip(t *testing.T) {
	priceSold, pricePerKg := DerivedPrices(3200, 5.2, 7.14)
	if !almostEqual(priceSold, 448.18, 0.005) {
		t.Errorf("priceSold = %v, want 448.18", priceSold)
	}
	if !almostEqual(pricePerKg, 86.19, 0.005) {
		t.Errorf("pricePerKg = %v, want 86.19", pricePerKg)
	}
}

func TestCommission(t *testing.T) {
	tests := []struct {
		name     string
		totalRmb float64
		commRate float64
		exchRate float64
		want     float64
	}{
		{name: "explicit rates", totalRmb: 10000, commRate: 0.05, exchRate: 7.14, want: 70.03},
		{name: "default commission rate", totalRmb: 10000, commRate: 0, exchRate: 7.14, want: 28.01},
		{name: "default exchange rate", totalRmb: 714, commRate: 0.02, exchRate: 0, want: 2},
		{name: "zero volume", totalRmb: 0, commRate: 0.02, exchRate: 7.14, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Commission(tt.totalRmb, tt.commRate, tt.exchRate)
			if !almostEqual(got, tt.want, 0.005) {
				t.Errorf("Commission(%v, %v, %v) = %v, want %v",
					tt.totalRmb, tt.commRate, tt.exchRate, got, tt.want)
			}
		})
	}
}

func TestCommissionMonotone(t *testing.T) {
	prev := -1.0
	for _, rmb := range []float64{0, 1, 100, 5000, 5000.01, 1e6, 1e9} {
		got := Commission(rmb, 0.02, 7.14)
		if got < prev {
			t.Fatalf("Commission not monotone: f(%v) = %v < previous %v", rmb, got, prev)
		}
		prev = got
	}
}
