package report

import (
	"grant-crm/internal/features/schema"
)

// Aggregate computes one summary value over a column. Nil values are
// excluded before the operator is applied; COUNT counts only non-nil values
// and AVERAGE of an empty set is 0, not NaN.
func Aggregate(values []any, kind schema.Aggregation) float64 {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		if n, ok := toNumber(v); ok {
			numbers = append(numbers, n)
		}
	}

	switch kind {
	case schema.AggregationCount:
		count := 0
		for _, v := range values {
			if v != nil {
				count++
			}
		}
		return float64(count)
	case schema.AggregationSum:
		return sum(numbers)
	case schema.AggregationAverage:
		if len(numbers) == 0 {
			return 0
		}
		return sum(numbers) / float64(len(numbers))
	case schema.AggregationMin:
		if len(numbers) == 0 {
			return 0
		}
		min := numbers[0]
		for _, n := range numbers[1:] {
			if n < min {
				min = n
			}
		}
		return min
	case schema.AggregationMax:
		if len(numbers) == 0 {
			return 0
		}
		max := numbers[0]
		for _, n := range numbers[1:] {
			if n > max {
				max = n
			}
		}
		return max
	default:
		return 0
	}
}

func sum(numbers []float64) float64 {
	total := 0.0
	for _, n := range numbers {
		total += n
	}
	return total
}
