package filter

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"grant-crm/internal/features/schema"
)

// Evaluate applies a filter node to one record.
//
// Unrecognized operators evaluate to true. This fail-open policy is
// deliberate: a drifted operator encoding must widen a report rather than
// silently drop rows from it.
func Evaluate(record map[string]any, node Node) bool {
	switch node.Kind {
	case KindCondition:
		if node.Condition == nil {
			return true
		}
		return evaluateCondition(record, *node.Condition)
	case KindGroup:
		if node.Group == nil {
			return true
		}
		return EvaluateGroup(record, *node.Group)
	default:
		return true
	}
}

// EvaluateGroup combines child results with short-circuiting AND/OR.
// An empty group is vacuously true so it never excludes data.
func EvaluateGroup(record map[string]any, group Group) bool {
	if group.LogicalOperator == LogicOr {
		if len(group.Conditions) == 0 {
			return true
		}
		for _, child := range group.Conditions {
			if Evaluate(record, child) {
				return true
			}
		}
		return false
	}
	for _, child := range group.Conditions {
		if !Evaluate(record, child) {
			return false
		}
	}
	return true
}

func evaluateCondition(record map[string]any, cond Condition) bool {
	fieldValue := schema.ResolvePath(record, cond.Field.FieldPath)

	switch cond.Operator {
	case OpEquals:
		return valuesEqual(fieldValue, cond.Value)
	case OpNotEquals:
		return !valuesEqual(fieldValue, cond.Value)
	case OpGreaterThan:
		cmp, ok := compareValues(fieldValue, cond.Value)
		return ok && cmp > 0
	case OpLessThan:
		cmp, ok := compareValues(fieldValue, cond.Value)
		return ok && cmp < 0
	case OpContains:
		return stringMatch(fieldValue, cond.Value, strings.Contains)
	case OpStartsWith:
		return stringMatch(fieldValue, cond.Value, strings.HasPrefix)
	case OpEndsWith:
		return stringMatch(fieldValue, cond.Value, strings.HasSuffix)
	case OpBetween:
		low, lowOK := compareValues(fieldValue, cond.Value)
		high, highOK := compareValues(fieldValue, cond.AdditionalValue)
		return lowOK && highOK && low >= 0 && high <= 0
	case OpIn:
		return containsValue(cond.Value, fieldValue)
	case OpNotIn:
		return !containsValue(cond.Value, fieldValue)
	default:
		// fail open, see package comment on Evaluate
		return true
	}
}

// valuesEqual is strict equality with numeric and date normalization, so a
// stored float64 still matches a record int and ISO strings match time values.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := toNumber(a); aok {
		if bf, bok := toNumber(b); bok {
			return af == bf
		}
	}
	if at, aok := toTime(a); aok {
		if bt, bok := toTime(b); bok {
			return at.Equal(bt)
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return as == bs
		}
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			return ab == bb
		}
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two values as numbers or dates. Returns false when
// either side cannot be coerced, which makes GT/LT/BETWEEN evaluate false.
func compareValues(a, b any) (int, bool) {
	if af, aok := toNumber(a); aok {
		if bf, bok := toNumber(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	if at, aok := toTime(a); aok {
		if bt, bok := toTime(b); bok {
			switch {
			case at.Before(bt):
				return -1, true
			case at.After(bt):
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}

func stringMatch(fieldValue, condValue any, match func(s, substr string) bool) bool {
	fs, ok := toString(fieldValue)
	if !ok {
		return false
	}
	cs, ok := toString(condValue)
	if !ok {
		return false
	}
	return match(strings.ToLower(fs), strings.ToLower(cs))
}

// containsValue tests membership of fieldValue in an array condition value.
// A non-array condition value never matches.
func containsValue(arrayValue, fieldValue any) bool {
	rv := reflect.ValueOf(arrayValue)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if valuesEqual(fieldValue, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var timeLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
