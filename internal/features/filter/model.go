package filter

import (
	"grant-crm/internal/features/schema"
)

// MaxNestingLevel bounds group nesting relative to the root group.
// Enforced when templates/presets are saved, never during evaluation.
const MaxNestingLevel = 2

type LogicalOperator string

const (
	LogicAnd LogicalOperator = "AND"
	LogicOr  LogicalOperator = "OR"
)

type Operator string

const (
	OpEquals      Operator = "EQUALS"
	OpNotEquals   Operator = "NOT_EQUALS"
	OpGreaterThan Operator = "GREATER_THAN"
	OpLessThan    Operator = "LESS_THAN"
	OpContains    Operator = "CONTAINS"
	OpStartsWith  Operator = "STARTS_WITH"
	OpEndsWith    Operator = "ENDS_WITH"
	OpBetween     Operator = "BETWEEN"
	OpIn          Operator = "IN"
	OpNotIn       Operator = "NOT_IN"
)

// Condition is a leaf predicate: field + operator + value(s).
// AdditionalValue is set only for BETWEEN; IN/NOT_IN carry array values.
type Condition struct {
	ID              string       `json:"id" bson:"id"`
	Field           schema.Field `json:"field" bson:"field"`
	Operator        Operator     `json:"operator" bson:"operator"`
	Value           any          `json:"value" bson:"value"`
	AdditionalValue any          `json:"additional_value,omitempty" bson:"additional_value,omitempty"`
}

// Group combines child nodes with AND/OR.
type Group struct {
	ID              string          `json:"id" bson:"id"`
	LogicalOperator LogicalOperator `json:"logical_operator" bson:"logical_operator"`
	Conditions      []Node          `json:"conditions" bson:"conditions"`
}

type NodeKind string

const (
	KindCondition NodeKind = "condition"
	KindGroup     NodeKind = "group"
)

// Node is the tagged union of a leaf Condition and a nested Group.
// Exactly one of Condition/Group is set, selected by Kind.
type Node struct {
	Kind      NodeKind   `json:"kind" bson:"kind"`
	Condition *Condition `json:"condition,omitempty" bson:"condition,omitempty"`
	Group     *Group     `json:"group,omitempty" bson:"group,omitempty"`
}

// ConditionNode wraps a leaf condition as a tree node.
func ConditionNode(c Condition) Node {
	return Node{Kind: KindCondition, Condition: &c}
}

// GroupNode wraps a group as a tree node.
func GroupNode(g Group) Node {
	return Node{Kind: KindGroup, Group: &g}
}

// GroupDepth returns how many group levels are nested beneath g.
// A group holding only leaf conditions has depth 0.
func GroupDepth(g Group) int {
	max := 0
	for _, child := range g.Conditions {
		if child.Kind != KindGroup || child.Group == nil {
			continue
		}
		if d := GroupDepth(*child.Group) + 1; d > max {
			max = d
		}
	}
	return max
}
