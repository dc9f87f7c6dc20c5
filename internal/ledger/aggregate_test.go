package ledger

import (
	"testing"
)

func TestSummarizeGroupsAndTotals(t *testing.T) {
	items := []Item{
		{DetailID: 1, ProductName: "White Tea", Weight: 5.2, BidRmb: 3200, PriceSold: 448.18, IsSold: true},
		{DetailID: 2, ProductName: "White Tea", Weight: 4.0, BidRmb: 2000, PriceSold: 280.11, IsSold: true},
		{DetailID: 3, ProductName: "Green Tea", Weight: 3.0, BidRmb: 1500, PriceSold: 210.08, IsSold: true},
		{DetailID: 4, ProductName: "Green Tea", Weight: 9.9, BidRmb: 9999, PriceSold: 1400.42, IsSold: false},
	}

	s := Summarize(items)

	if len(s.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(s.Groups))
	}
	// first-seen ordering
	if s.Groups[0].ProductName != "White Tea" || s.Groups[1].ProductName != "Green Tea" {
		t.Fatalf("group order = [%s, %s], want [White Tea, Green Tea]",
			s.Groups[0].ProductName, s.Groups[1].ProductName)
	}

	white := s.Groups[0]
	if !almostEqual(white.TotalWeight, 9.2, 1e-9) {
		t.Errorf("white TotalWeight = %v, want 9.2", white.TotalWeight)
	}
	if !almostEqual(white.TotalBidRmb, 5200, 1e-9) {
		t.Errorf("white TotalBidRmb = %v, want 5200", white.TotalBidRmb)
	}
	if !almostEqual(white.AvgPricePerKg, (448.18+280.11)/9.2, 1e-9) {
		t.Errorf("white AvgPricePerKg = %v", white.AvgPricePerKg)
	}

	// the unsold lot is listed but contributes nothing
	green := s.Groups[1]
	if len(green.Items) != 2 {
		t.Fatalf("green group has %d items, want 2", len(green.Items))
	}
	if !almostEqual(green.TotalWeight, 3.0, 1e-9) {
		t.Errorf("green TotalWeight = %v, want 3.0 (unsold excluded)", green.TotalWeight)
	}
	if !almostEqual(green.TotalPriceSold, 210.08, 1e-9) {
		t.Errorf("green TotalPriceSold = %v, want 210.08", green.TotalPriceSold)
	}

	if !almostEqual(s.TotalWeight, 12.2, 1e-9) {
		t.Errorf("grand TotalWeight = %v, want 12.2", s.TotalWeight)
	}
	if !almostEqual(s.TotalBidRmb, 6700, 1e-9) {
		t.Errorf("grand TotalBidRmb = %v, want 6700", s.TotalBidRmb)
	}
	if s.TotalProducts != 2 || s.TotalItems != 4 {
		t.Errorf("TotalProducts/TotalItems = %d/%d, want 2/4", s.TotalProducts, s.TotalItems)
	}
}

func TestSummarizeUnknownProductSentinel(t *testing.T) {
	items := []Item{
		{DetailID: 1, ProductName: "", Weight: 1, BidRmb: 100, PriceSold: 14, IsSold: true},
		{DetailID: 2, ProductName: "", Weight: 2, BidRmb: 200, PriceSold: 28, IsSold: true},
	}
	s := Summarize(items)
	if len(s.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(s.Groups))
	}
	if s.Groups[0].ProductName != UnknownProduct {
		t.Errorf("group name = %q, want %q", s.Groups[0].ProductName, UnknownProduct)
	}
	if !almostEqual(s.Groups[0].TotalWeight, 3, 1e-9) {
		t.Errorf("TotalWeight = %v, want 3", s.Groups[0].TotalWeight)
	}
}

func TestSummarizeZeroWeightAverage(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{name: "empty input", items: nil},
		{name: "only unsold items", items: []Item{
			{ProductName: "Oolong", Weight: 5, BidRmb: 900, PriceSold: 126.05, IsSold: false},
		}},
		{name: "sold items with zero weight", items: []Item{
			{ProductName: "Oolong", Weight: 0, BidRmb: 900, PriceSold: 126.05, IsSold: true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.items)
			if s.AvgPricePerKg != 0 {
				t.Errorf("grand AvgPricePerKg = %v, want 0", s.AvgPricePerKg)
			}
			for _, g := range s.Groups {
				if g.TotalWeight == 0 && g.AvgPricePerKg != 0 {
					t.Errorf("group %s AvgPricePerKg = %v, want 0", g.ProductName, g.AvgPricePerKg)
				}
			}
		})
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	items := []Item{
		{ProductName: "C", Weight: 1, BidRmb: 10, PriceSold: 1.4, IsSold: true},
		{ProductName: "A", Weight: 1, BidRmb: 10, PriceSold: 1.4, IsSold: true},
		{ProductName: "B", Weight: 1, BidRmb: 10, PriceSold: 1.4, IsSold: true},
		{ProductName: "A", Weight: 2, BidRmb: 20, PriceSold: 2.8, IsSold: true},
	}
	first := Summarize(items)
	for i := 0; i < 50; i++ {
		again := Summarize(items)
		for gi := range first.Groups {
			if again.Groups[gi].ProductName != first.Groups[gi].ProductName {
				t.Fatalf("run %d: group %d = %s, want %s",
					i, gi, again.Groups[gi].ProductName, first.Groups[gi].ProductName)
			}
		}
	}
	want := []string{"C", "A", "B"}
	for gi, name := range want {
		if first.Groups[gi].ProductName != name {
			t.Errorf("group %d = %s, want %s (first-seen order)", gi, first.Groups[gi].ProductName, name)
		}
	}
}

func TestFoldMetrics(t *testing.T) {
	auctions := []AuctionFigures{
		{
			AuctionID:      1,
			Participants:   40,
			ExchangeRate:   7.14,
			CommissionRate: 0.02,
			Items: []Item{
				{Weight: 5.2, BidRmb: 3200, PriceSold: 448.18, IsSold: true},
				{Weight: 4, BidRmb: 8888, PriceSold: 1244.82, IsSold: false},
			},
		},
		{
			AuctionID:    2,
			Participants: 25,
			// no house linked: rate defaults apply
			ExchangeRate:   0,
			CommissionRate: 0,
			Items: []Item{
				{Weight: 2, BidRmb: 714, PriceSold: 100, IsSold: true},
			},
		},
	}

	m := FoldMetrics(auctions)

	if m.TotalAuctions != 2 {
		t.Errorf("TotalAuctions = %d, want 2", m.TotalAuctions)
	}
	if m.TotalParticipants != 65 {
		t.Errorf("TotalParticipants = %d, want 65", m.TotalParticipants)
	}
	if !almostEqual(m.TotalRmb, 3914, 1e-9) {
		t.Errorf("TotalRmb = %v, want 3914 (unsold excluded)", m.TotalRmb)
	}
	if !almostEqual(m.TotalRevenueUsd, 548.18, 1e-9) {
		t.Errorf("TotalRevenueUsd = %v, want 548.18", m.TotalRevenueUsd)
	}
	if !almostEqual(m.TotalCommissionRmb, 3200*0.02+714*0.02, 1e-9) {
		t.Errorf("TotalCommissionRmb = %v", m.TotalCommissionRmb)
	}
	wantUsd := Commission(3200, 0.02, 7.14) + Commission(714, 0.02, 0)
	if !almostEqual(m.TotalCommissionUsd, wantUsd, 1e-9) {
		t.Errorf("TotalCommissionUsd = %v, want %v", m.TotalCommissionUsd, wantUsd)
	}
}
