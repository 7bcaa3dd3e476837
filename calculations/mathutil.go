package calculations

import "math"

// Sum returns the sum of all values.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Variance returns the population variance, or 0 for an empty slice.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	total := 0.0
	for _, v := range values {
		d := v - mean
		total += d * d
	}
	return total / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Round2 rounds v to two decimal places. Most monetary values in the
// result payloads go through this helper.
func Round2(v float64) float64 {
	return RoundTo(v, 2)
}

// Percent returns part/total*100 rounded to one decimal place, or 0
// when total is 0.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return RoundTo(part/total*100, 1)
}

// PercentChange returns the relative change from previous to current in
// percent. A zero previous value yields 0, not +Inf.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return RoundTo((current-previous)/previous*100, 1)
}

// Margin returns the gross margin percentage of revenue over cost,
// or 0 when revenue is 0.
func Margin(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return RoundTo((revenue-cost)/revenue*100, 1)
}

// Markup returns the markup percentage of revenue over cost,
// or 0 when cost is 0.
func Markup(revenue, cost float64) float64 {
	if cost == 0 {
		return 0
	}
	return RoundTo((revenue-cost)/cost*100, 1)
}

// SafeDivide returns a/b, or 0 when b is 0.
func SafeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Clamp01 clamps v into the [0,1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
