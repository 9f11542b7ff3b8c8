package filter

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"grant-crm/internal/features/schema"
)

// Configuration-time rules: which operators a field type accepts, what a
// fresh condition defaults to, and how values carry over when the operator
// changes. Evaluation never consults these tables.

var (
	ErrUnsupportedOperator  = errors.New("operator not supported for field type")
	ErrMaxNestingExceeded   = errors.New("filter group nesting exceeds maximum level")
	ErrUnknownField         = errors.New("unknown field for entity type")
	ErrMismatchedEntityType = errors.New("filter field belongs to a different entity type")
)

var operatorsByType = map[schema.FieldType][]Operator{
	schema.FieldTypeText:     {OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith},
	schema.FieldTypeNumber:   {OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween},
	schema.FieldTypeCurrency: {OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween},
	schema.FieldTypeDate:     {OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween},
	schema.FieldTypeBoolean:  {OpEquals},
	schema.FieldTypeEnum:     {OpEquals, OpNotEquals},
}

// OperatorsFor lists the operators legal for a field type. ENUM fields expose
// IN/NOT_IN only in multi-select mode.
func OperatorsFor(fieldType schema.FieldType, multiSelect bool) []Operator {
	ops := operatorsByType[fieldType]
	out := make([]Operator, len(ops))
	copy(out, ops)
	if fieldType == schema.FieldTypeEnum && multiSelect {
		out = append(out, OpIn, OpNotIn)
	}
	return out
}

// OperatorValid reports whether op is legal for the field type.
func OperatorValid(fieldType schema.FieldType, op Operator, multiSelect bool) bool {
	for _, candidate := range OperatorsFor(fieldType, multiSelect) {
		if candidate == op {
			return true
		}
	}
	return false
}

// DefaultOperator is the canonical operator selected when a condition's field
// changes. DATE defaults to BETWEEN in range context and GREATER_THAN
// otherwise.
func DefaultOperator(fieldType schema.FieldType, multiSelect, rangeContext bool) Operator {
	switch fieldType {
	case schema.FieldTypeText:
		return OpContains
	case schema.FieldTypeNumber, schema.FieldTypeCurrency:
		return OpEquals
	case schema.FieldTypeDate:
		if rangeContext {
			return OpBetween
		}
		return OpGreaterThan
	case schema.FieldTypeBoolean:
		return OpEquals
	case schema.FieldTypeEnum:
		if multiSelect {
			return OpIn
		}
		return OpEquals
	default:
		return OpEquals
	}
}

// DefaultValue is the type-appropriate blank value for a fresh condition.
func DefaultValue(fieldType schema.FieldType, multiSelect bool) any {
	switch fieldType {
	case schema.FieldTypeText:
		return ""
	case schema.FieldTypeNumber, schema.FieldTypeCurrency:
		return float64(0)
	case schema.FieldTypeDate:
		return time.Now()
	case schema.FieldTypeBoolean:
		return true
	case schema.FieldTypeEnum:
		if multiSelect {
			return []any{}
		}
		return ""
	default:
		return nil
	}
}

// ConvertValue carries a condition value across an operator switch without
// losing a previously entered entry: a scalar becomes the sole array element
// when moving to IN/NOT_IN, and the first array element becomes the scalar on
// the way back.
func ConvertValue(from, to Operator, value any) any {
	fromArray := from == OpIn || from == OpNotIn
	toArray := to == OpIn || to == OpNotIn
	switch {
	case toArray && !fromArray:
		if value == nil || value == "" {
			return []any{}
		}
		return []any{value}
	case fromArray && !toArray:
		rv := reflect.ValueOf(value)
		if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() > 0 {
			return rv.Index(0).Interface()
		}
		return nil
	default:
		return value
	}
}

// ValidateGroup checks a filter tree against an entity's field catalog:
// operator legality per field type, field membership, and the nesting bound.
func ValidateGroup(entity schema.EntityType, group Group) error {
	if GroupDepth(group) > MaxNestingLevel {
		return fmt.Errorf("%w: depth %d, max %d", ErrMaxNestingExceeded, GroupDepth(group), MaxNestingLevel)
	}
	return validateNodes(entity, group.Conditions)
}

// ValidateCondition checks a single leaf condition.
func ValidateCondition(entity schema.EntityType, cond Condition) error {
	field, ok := schema.FieldByID(entity, cond.Field.ID)
	if !ok {
		return fmt.Errorf("%w: %q on %q", ErrUnknownField, cond.Field.ID, entity)
	}
	if cond.Field.EntityType != "" && cond.Field.EntityType != entity {
		return fmt.Errorf("%w: field %q is for %q", ErrMismatchedEntityType, cond.Field.ID, cond.Field.EntityType)
	}
	if !OperatorValid(field.FieldType, cond.Operator, field.MultiSelect) {
		return fmt.Errorf("%w: %s on %s field %q", ErrUnsupportedOperator, cond.Operator, field.FieldType, field.ID)
	}
	return nil
}

func validateNodes(entity schema.EntityType, nodes []Node) error {
	for _, node := range nodes {
		switch node.Kind {
		case KindCondition:
			if node.Condition == nil {
				continue
			}
			if err := ValidateCondition(entity, *node.Condition); err != nil {
				return err
			}
		case KindGroup:
			if node.Group == nil {
				continue
			}
			if err := validateNodes(entity, node.Group.Conditions); err != nil {
				return err
			}
		}
	}
	return nil
}
