package ledger

// UnknownProduct is the grouping sentinel for items without a product name.
const UnknownProduct = "Unknown Product"

// Item is the slice of an auction line item the aggregator needs.
type Item struct {
	DetailID    int64   `json:"detail_id,string"`
	ProductName string  `json:"product_name"`
	Weight      float64 `json:"weight"`
	BidRmb      float64 `json:"highest_bid_rmb"`
	PriceSold   float64 `json:"price_sold"`
	IsSold      bool    `json:"is_sold"`
}

// ProductGroup accumulates one product's items. Unsold items are listed but
// excluded from every total; that is the business rule, not an oversight.
type ProductGroup struct {
	ProductName    string  `json:"product_name"`
	Items          []Item  `json:"items"`
	TotalWeight    float64 `json:"total_weight"`
	TotalBidRmb    float64 `json:"total_highest_bid_rmb"`
	TotalPriceSold float64 `json:"total_price_sold"`
	AvgPricePerKg  float64 `json:"avg_price_per_kg"`
}

// Summary is the aggregated view of one auction's line items.
type Summary struct {
	Groups         []ProductGroup `json:"groups"`
	TotalWeight    float64        `json:"total_weight"`
	TotalBidRmb    float64        `json:"total_highest_bid_rmb"`
	TotalPriceSold float64        `json:"total_price_sold"`
	AvgPricePerKg  float64        `json:"avg_price_per_kg"`
	TotalProducts  int            `json:"total_products"`
	TotalItems     int            `json:"total_items"`
}

// Summarize folds line items into per-product groups and grand totals.
// Groups appear in first-seen item order so output is deterministic.
// Pure and total: same input, same output, no I/O, no errors.
func Summarize(items []Item) Summary {
	index := make(map[string]int, len(items))
	groups := make([]ProductGroup, 0, len(items))

	for _, item := range items {
		name := item.ProductName
		if name == "" {
			name = UnknownProduct
		}
		gi, ok := index[name]
		if !ok {
			gi = len(groups)
			index[name] = gi
			groups = append(groups, ProductGroup{ProductName: name})
		}
		g := &groups[gi]
		g.Items = append(g.Items, item)
		if item.IsSold {
			g.TotalWeight += item.Weight
			g.TotalBidRmb += item.BidRmb
			g.TotalPriceSold += item.PriceSold
		}
	}

	summary := Summary{
		Groups:        groups,
		TotalProducts: len(groups),
		TotalItems:    len(items),
	}
	for i := range groups {
		g := &groups[i]
		g.AvgPricePerKg = PricePerKg(g.TotalPriceSold, g.TotalWeight)
		summary.TotalWeight += g.TotalWeight
		summary.TotalBidRmb += g.TotalBidRmb
		summary.TotalPriceSold += g.TotalPriceSold
	}
	summary.AvgPricePerKg = PricePerKg(summary.TotalPriceSold, summary.TotalWeight)
	return summary
}

// AuctionFigures is one auction's contribution to the global metrics fold.
type AuctionFigures struct {
	AuctionID      int64
	Participants   int
	ExchangeRate   float64
	CommissionRate float64
	Items          []Item
}

// Metrics is the global dashboard roll-up across all auctions.
type Metrics struct {
	TotalAuctions      int     `json:"total_auctions"`
	TotalParticipants  int     `json:"total_participants"`
	TotalRevenueUsd    float64 `json:"total_revenue_usd"`
	TotalRmb           float64 `json:"total_rmb"`
	TotalCommissionRmb float64 `json:"total_commission_rmb"`
	TotalCommissionUsd float64 `json:"total_commission_usd"`
}

// FoldMetrics aggregates revenue and commission over all auctions. Sums
// count sold items only; commission uses each auction's own rates with the
// package defaults as fallback.
func FoldMetrics(auctions []AuctionFigures) Metrics {
	var m Metrics
	m.TotalAuctions = len(auctions)
	for _, a := range auctions {
		m.TotalParticipants += a.Participants

		var soldRmb float64
		for _, item := range a.Items {
			if !item.IsSold {
				continue
			}
			soldRmb += item.BidRmb
			m.TotalRevenueUsd += item.PriceSold
		}
		m.TotalRmb += soldRmb

		rate := a.CommissionRate
		if rate <= 0 {
			rate = DefaultCommissionRate
		}
		m.TotalCommissionRmb += soldRmb * rate
		m.TotalCommissionUsd += Commission(soldRmb, rate, a.ExchangeRate)
	}
	return m
}
