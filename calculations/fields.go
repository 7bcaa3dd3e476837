package calculations

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is a single record loaded from a scraped CSV. CSV carries no native
// types, so every accessor in this package coerces values defensively.
type Row = map[string]interface{}

// Field fallback chains. Two generations of storefront exports coexist:
// the older export uses display headers ("Product Net", "Quantity Sold"),
// the newer one snake_case names. Lookups try each candidate in order and
// the first field producing a nonzero sum over the dataset wins. The chains
// are data on purpose, so a schema change is a table edit, not a code edit.
var (
	RevenueFieldChain  = []string{"discounted_price", "net_price", "total_price", "revenue", "Net", "Product Net"}
	QuantityFieldChain = []string{"quantity", "qty", "units", "Quantity Sold", "Qty Sold"}
	ProductFieldChain  = []string{"product_name", "Product Name", "name", "title"}
	OrderFieldChain    = []string{"order_id", "Order ID", "Receipt Number"}
	ChannelFieldChain  = []string{"channel", "Channel"}
	AssocFieldChain    = []string{"associate", "Associate", "sales_associate"}
	DateFieldChain     = []string{"date_time", "Date/Time", "date", "Date"}
	ColorFieldChain    = []string{"color", "Color"}
	SizeFieldChain     = []string{"size", "Size"}
)

// NumericValue coerces an arbitrary CSV cell value to a float64.
// Missing or malformed values degrade to 0 and never fail: the data
// comes from scraped exports and is frequently inconsistent.
func NumericValue(v interface{}) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		cleaned := strings.TrimSpace(val)
		cleaned = strings.ReplaceAll(cleaned, "$", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if cleaned == "" {
			return 0
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// StringValue coerces an arbitrary cell value to a trimmed string.
func StringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		// Whole numbers read from JSON arrive as float64; keep them integral.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

// ChainString returns the first non-empty string value among the candidate
// field names, or "".
func ChainString(row Row, chain []string) string {
	for _, field := range chain {
		if v, ok := row[field]; ok {
			if s := StringValue(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// ChainNumeric returns the first nonzero numeric value among the candidate
// field names, or 0.
func ChainNumeric(row Row, chain []string) float64 {
	for _, field := range chain {
		if v, ok := row[field]; ok {
			if n := NumericValue(v); n != 0 {
				return n
			}
		}
	}
	return 0
}

// ResolveField picks the field name from the chain whose summed value over
// the dataset is nonzero. When every candidate sums to zero the first chain
// member is returned so downstream code still has a stable field name.
func ResolveField(rows []Row, chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	for _, field := range chain {
		if SumField(rows, field) != 0 {
			return field
		}
	}
	return chain[0]
}
