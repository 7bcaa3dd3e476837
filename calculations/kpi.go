package calculations

import "sort"

// KPI dashboards composed from the business metrics layer. All results are
// plain JSON-serializable maps so the SPA can render them directly.

// GrowthResult carries a period-over-period revenue comparison.
type GrowthResult struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Delta         float64 `json:"delta"`
	PercentChange float64 `json:"percent_change"`
}

// RevenueGrowth compares total revenue between two periods of line items.
func RevenueGrowth(current, previous []Row) GrowthResult {
	cur := TotalRevenue(current)
	prev := TotalRevenue(previous)
	return GrowthResult{
		Current:       cur,
		Previous:      prev,
		Delta:         Round2(cur - prev),
		PercentChange: PercentChange(cur, prev),
	}
}

// RevenueConcentration reports what share of total revenue the top N
// products capture. High concentration flags dependence on few products.
func RevenueConcentration(lineItems []Row, topN int) Row {
	if topN <= 0 {
		topN = 10
	}
	products := RevenueByProduct(lineItems)
	total := 0.0
	for _, p := range products {
		total += p["total_revenue"].(float64)
	}
	top := products
	if len(top) > topN {
		top = top[:topN]
	}
	topRevenue := 0.0
	for _, p := range top {
		topRevenue += p["total_revenue"].(float64)
	}
	return Row{
		"top_n":         topN,
		"product_count": len(products),
		"total_revenue": Round2(total),
		"top_revenue":   Round2(topRevenue),
		"top_share_pct": Percent(topRevenue, total),
		"top_products":  top,
	}
}

// CrossSellLift measures how much more likely an order containing anchor
// is to also contain companion, relative to the companion's baseline
// presence across all orders. Lift > 1 means the pair sells together.
func CrossSellLift(lineItems []Row, anchor, companion string) Row {
	orders := TotalOrders(lineItems)
	companionOrders := len(FindOrdersWithProducts(lineItems, []string{companion}))
	baseline := 0.0
	if orders > 0 {
		baseline = RoundTo(float64(companionOrders)/float64(orders)*100, 1)
	}
	// 0-100 scale: AttachRate with reference products.
	targetRate := AttachRate(lineItems, companion, []string{anchor})
	return Row{
		"anchor":            anchor,
		"companion":         companion,
		"baseline_rate_pct": baseline,
		"attach_rate_pct":   targetRate,
		"lift":              Round2(SafeDivide(targetRate, baseline)),
		"pair_orders":       len(FindOrdersWithProducts(lineItems, []string{anchor, companion})),
	}
}

// ChannelEfficiency reports per-channel revenue share and revenue per order.
func ChannelEfficiency(lineItems []Row) []Row {
	channels := RevenueByChannel(lineItems)
	total := 0.0
	for _, ch := range channels {
		total += ch["total_revenue"].(float64)
	}
	results := make([]Row, 0, len(channels))
	for _, ch := range channels {
		revenue := ch["total_revenue"].(float64)
		orderCount := ch["order_count"].(int)
		perOrder := 0.0
		if orderCount > 0 {
			perOrder = revenue / float64(orderCount)
		}
		results = append(results, Row{
			"channel":           ch["channel"],
			"total_revenue":     revenue,
			"order_count":       orderCount,
			"revenue_share_pct": Percent(revenue, total),
			"revenue_per_order": Round2(perOrder),
		})
	}
	return results
}

// ProductVelocity reports orders-per-day per product over the date range,
// fastest movers first.
func ProductVelocity(lineItems []Row, days float64) []Row {
	productField := resolveDimension(lineItems, ProductFieldChain)
	results := make([]Row, 0)
	for product, group := range GroupBy(lineItems, productField) {
		results = append(results, Row{
			"product_name": product,
			"velocity":     Velocity(group, days),
			"order_count":  TotalOrders(group),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i]["velocity"].(float64) > results[j]["velocity"].(float64)
	})
	return results
}
