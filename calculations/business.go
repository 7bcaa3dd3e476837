package calculations

import (
	"sort"
	"strings"
)

// Business metrics over joined order/line-item rows.
//
// Every public function re-derives its own groupings from the raw rows
// instead of sharing a cached order summary. The inputs are plain mutable
// slices owned by the caller, so caching across calls would go stale
// silently; recompute-per-call keeps results correct under mutation.

// OrderSummary groups line items by order and rolls up revenue, quantity
// and item count per order. Order-level fields inherited during the CSV
// join (channel, associate, date) are copied from the first line item.
func OrderSummary(lineItems []Row) map[string]Row {
	revenueField := ResolveField(lineItems, RevenueFieldChain)
	quantityField := ResolveField(lineItems, QuantityFieldChain)

	summary := make(map[string]Row)
	for _, item := range lineItems {
		orderID := ChainString(item, OrderFieldChain)
		if orderID == "" {
			continue
		}
		entry, ok := summary[orderID]
		if !ok {
			entry = Row{
				"order_id":       orderID,
				"total_revenue":  0.0,
				"total_quantity": 0.0,
				"item_count":     0,
				"channel":        ChainString(item, ChannelFieldChain),
				"associate":      ChainString(item, AssocFieldChain),
				"date":           orderDate(item),
			}
			summary[orderID] = entry
		}
		entry["total_revenue"] = entry["total_revenue"].(float64) + NumericValue(item[revenueField])
		entry["total_quantity"] = entry["total_quantity"].(float64) + NumericValue(item[quantityField])
		entry["item_count"] = entry["item_count"].(int) + 1
	}
	return summary
}

// TotalOrders returns the number of distinct orders in the line items.
func TotalOrders(lineItems []Row) int {
	return len(OrderSummary(lineItems))
}

// TotalRevenue sums revenue across all line items using the field
// fallback chain.
func TotalRevenue(lineItems []Row) float64 {
	return Round2(SumField(lineItems, ResolveField(lineItems, RevenueFieldChain)))
}

// TotalUnits sums quantity across all line items.
func TotalUnits(lineItems []Row) float64 {
	return SumField(lineItems, ResolveField(lineItems, QuantityFieldChain))
}

// AverageOrderValue returns revenue per order, 0 when there are no orders.
func AverageOrderValue(lineItems []Row) float64 {
	summary := OrderSummary(lineItems)
	if len(summary) == 0 {
		return 0
	}
	total := 0.0
	for _, entry := range summary {
		total += entry["total_revenue"].(float64)
	}
	return Round2(total / float64(len(summary)))
}

// AverageOrderSize returns units per order, 0 when there are no orders.
func AverageOrderSize(lineItems []Row) float64 {
	summary := OrderSummary(lineItems)
	if len(summary) == 0 {
		return 0
	}
	total := 0.0
	for _, entry := range summary {
		total += entry["total_quantity"].(float64)
	}
	return Round2(total / float64(len(summary)))
}

// dimensionRollup groups line items by the first present field of the
// dimension chain and derives the standard rollup per group.
func dimensionRollup(lineItems []Row, dimensionChain []string, dimensionName string) []Row {
	revenueField := ResolveField(lineItems, RevenueFieldChain)
	quantityField := ResolveField(lineItems, QuantityFieldChain)
	dimensionField := resolveDimension(lineItems, dimensionChain)

	results := make([]Row, 0)
	for value, group := range GroupBy(lineItems, dimensionField) {
		orders := make(map[string]bool)
		for _, item := range group {
			if id := ChainString(item, OrderFieldChain); id != "" {
				orders[id] = true
			}
		}
		revenue := SumField(group, revenueField)
		orderCount := len(orders)
		avg := 0.0
		if orderCount > 0 {
			avg = revenue / float64(orderCount)
		}
		results = append(results, Row{
			dimensionName:         value,
			"total_revenue":       Round2(revenue),
			"total_quantity":      SumField(group, quantityField),
			"order_count":         orderCount,
			"average_order_value": Round2(avg),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i]["total_revenue"].(float64) > results[j]["total_revenue"].(float64)
	})
	return results
}

// resolveDimension picks the first chain member present on any row.
func resolveDimension(rows []Row, chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	for _, field := range chain {
		for _, row := range rows {
			if v, ok := row[field]; ok && StringValue(v) != "" {
				return field
			}
		}
	}
	return chain[0]
}

// RevenueByProduct rolls revenue up per product, highest first.
func RevenueByProduct(lineItems []Row) []Row {
	return dimensionRollup(lineItems, ProductFieldChain, "product_name")
}

// RevenueByChannel rolls revenue up per sales channel, highest first.
func RevenueByChannel(lineItems []Row) []Row {
	return dimensionRollup(lineItems, ChannelFieldChain, "channel")
}

// RevenueByAssociate rolls revenue up per sales associate, highest first.
func RevenueByAssociate(lineItems []Row) []Row {
	return dimensionRollup(lineItems, AssocFieldChain, "associate")
}

// RevenueByDate rolls revenue up per calendar day in ascending date order.
func RevenueByDate(lineItems []Row) []Row {
	revenueField := ResolveField(lineItems, RevenueFieldChain)
	quantityField := ResolveField(lineItems, QuantityFieldChain)

	byDate := make(map[string][]Row)
	for _, item := range lineItems {
		date := orderDate(item)
		if date == "" {
			continue
		}
		byDate[date] = append(byDate[date], item)
	}

	results := make([]Row, 0, len(byDate))
	for date, group := range byDate {
		orders := make(map[string]bool)
		for _, item := range group {
			if id := ChainString(item, OrderFieldChain); id != "" {
				orders[id] = true
			}
		}
		results = append(results, Row{
			"date":           date,
			"total_revenue":  Round2(SumField(group, revenueField)),
			"total_quantity": SumField(group, quantityField),
			"order_count":    len(orders),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i]["date"].(string) < results[j]["date"].(string)
	})
	return results
}

// OrdersByChannel reports order counts and average order value per channel.
func OrdersByChannel(lineItems []Row) []Row {
	summary := OrderSummary(lineItems)

	byChannel := make(map[string][]Row)
	for _, entry := range summary {
		channel := StringValue(entry["channel"])
		if channel == "" {
			continue
		}
		byChannel[channel] = append(byChannel[channel], entry)
	}

	results := make([]Row, 0, len(byChannel))
	for channel, entries := range byChannel {
		revenue := 0.0
		for _, entry := range entries {
			revenue += entry["total_revenue"].(float64)
		}
		avg := 0.0
		if len(entries) > 0 {
			avg = revenue / float64(len(entries))
		}
		results = append(results, Row{
			"channel":             channel,
			"order_count":         len(entries),
			"total_revenue":       Round2(revenue),
			"average_order_value": Round2(avg),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i]["order_count"].(int) > results[j]["order_count"].(int)
	})
	return results
}

// TopProducts returns the n highest-revenue products.
func TopProducts(lineItems []Row, n int) []Row {
	products := RevenueByProduct(lineItems)
	if n > 0 && len(products) > n {
		products = products[:n]
	}
	return products
}

// orderDate extracts the calendar-day part of the row's timestamp.
// Timestamps arrive as "2024-01-15 13:42" or "2024-01-15T13:42:00";
// everything after the first separator is discarded.
func orderDate(row Row) string {
	raw := ChainString(row, DateFieldChain)
	if raw == "" {
		return ""
	}
	if idx := strings.IndexAny(raw, " T"); idx > 0 {
		return raw[:idx]
	}
	return raw
}
