package calculations

// Generic reducers over semi-structured rows. Every function here is pure:
// no shared caches, no mutation of the input slices.

// GroupBy maps each observed value of key to the ordered sub-list of rows
// sharing it. Rows whose key is missing or nil are dropped entirely, not
// collected under an "unknown" bucket; an empty string is a real observed
// value (empty CSV cells arrive as "") and groups under the "" bucket.
// Callers grouping on a sparse key therefore silently lose the missing/nil
// rows; this is deliberate and matched by the row-conservation check in the
// tests.
func GroupBy(rows []Row, key string) map[string][]Row {
	groups := make(map[string][]Row)
	for _, row := range rows {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		groups[StringValue(v)] = append(groups[StringValue(v)], row)
	}
	return groups
}

// SumField sums the numeric value of field across rows. Non-numeric values
// coerce to 0.
func SumField(rows []Row, field string) float64 {
	total := 0.0
	for _, row := range rows {
		total += NumericValue(row[field])
	}
	return total
}

// AverageField returns the mean of field across rows, 0 for an empty set.
func AverageField(rows []Row, field string) float64 {
	if len(rows) == 0 {
		return 0
	}
	return SumField(rows, field) / float64(len(rows))
}

// CountField counts rows carrying a non-empty value for field.
func CountField(rows []Row, field string) int {
	count := 0
	for _, row := range rows {
		if v, ok := row[field]; ok && StringValue(v) != "" {
			count++
		}
	}
	return count
}

// FilterByRange keeps rows whose numeric field value lies in [min, max].
func FilterByRange(rows []Row, field string, min, max float64) []Row {
	filtered := make([]Row, 0)
	for _, row := range rows {
		v := NumericValue(row[field])
		if v >= min && v <= max {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// FilterByValue keeps rows whose field equals value (string comparison).
func FilterByValue(rows []Row, field, value string) []Row {
	filtered := make([]Row, 0)
	for _, row := range rows {
		if StringValue(row[field]) == value {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// FilterNonZero keeps rows whose numeric field value is nonzero.
func FilterNonZero(rows []Row, field string) []Row {
	filtered := make([]Row, 0)
	for _, row := range rows {
		if NumericValue(row[field]) != 0 {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// orderProducts rebuilds the order_id -> product-name-set index from the
// line items. Recomputed on each call; see the package note on caching in
// business.go.
func orderProducts(lineItems []Row) map[string]map[string]bool {
	orders := make(map[string]map[string]bool)
	for _, item := range lineItems {
		orderID := ChainString(item, OrderFieldChain)
		if orderID == "" {
			continue
		}
		product := ChainString(item, ProductFieldChain)
		if product == "" {
			continue
		}
		if orders[orderID] == nil {
			orders[orderID] = make(map[string]bool)
		}
		orders[orderID][product] = true
	}
	return orders
}

// FindOrdersWithProducts returns the IDs of orders whose line items cover
// every name in productNames ("bought both X and Y" pair analysis).
func FindOrdersWithProducts(lineItems []Row, productNames []string) []string {
	if len(productNames) == 0 {
		return []string{}
	}
	matched := make([]string, 0)
	for orderID, products := range orderProducts(lineItems) {
		all := true
		for _, name := range productNames {
			if !products[name] {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, orderID)
		}
	}
	return matched
}

// AttachRate computes the attach rate for productName.
//
// Without referenceProducts the result is a 0-1 fraction rounded to two
// decimals: orders containing productName plus at least one other product,
// over all orders containing productName.
//
// With referenceProducts the result is a 0-100 percentage rounded to one
// decimal: orders containing any reference product and productName, over
// orders containing any reference product.
//
// The scale flips depending on the arguments. That inconsistency is carried
// over intact from the original dashboards; AttachRateFraction normalizes
// it for the public API boundary.
func AttachRate(lineItems []Row, productName string, referenceProducts []string) float64 {
	orders := orderProducts(lineItems)

	if len(referenceProducts) == 0 {
		withProduct := 0
		withOther := 0
		for _, products := range orders {
			if !products[productName] {
				continue
			}
			withProduct++
			if len(products) > 1 {
				withOther++
			}
		}
		if withProduct == 0 {
			return 0
		}
		return RoundTo(float64(withOther)/float64(withProduct), 2)
	}

	refOrders := 0
	bothOrders := 0
	for _, products := range orders {
		hasRef := false
		for _, ref := range referenceProducts {
			if products[ref] {
				hasRef = true
				break
			}
		}
		if !hasRef {
			continue
		}
		refOrders++
		if products[productName] {
			bothOrders++
		}
	}
	if refOrders == 0 {
		return 0
	}
	return RoundTo(float64(bothOrders)/float64(refOrders)*100, 1)
}

// AttachRateFraction always reports the attach rate on the 0-1 scale,
// regardless of whether reference products are supplied.
func AttachRateFraction(lineItems []Row, productName string, referenceProducts []string) float64 {
	rate := AttachRate(lineItems, productName, referenceProducts)
	if len(referenceProducts) > 0 {
		return RoundTo(rate/100, 3)
	}
	return rate
}

// Velocity returns unique orders per day over the date range, rounded to
// two decimals. A missing or non-positive day count defaults to 30.
func Velocity(lineItems []Row, days float64) float64 {
	if days <= 0 {
		days = 30
	}
	orders := make(map[string]bool)
	for _, item := range lineItems {
		if orderID := ChainString(item, OrderFieldChain); orderID != "" {
			orders[orderID] = true
		}
	}
	return RoundTo(float64(len(orders))/days, 2)
}
