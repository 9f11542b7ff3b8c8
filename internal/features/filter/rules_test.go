package filter

import (
	"errors"
	"reflect"
	"testing"

	"grant-crm/internal/features/schema"
)

func TestOperatorsFor(t *testing.T) {
	tests := []struct {
		name        string
		fieldType   schema.FieldType
		multiSelect bool
		want        []Operator
	}{
		{"text", schema.FieldTypeText, false, []Operator{OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith}},
		{"number", schema.FieldTypeNumber, false, []Operator{OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween}},
		{"currency", schema.FieldTypeCurrency, false, []Operator{OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween}},
		{"date", schema.FieldTypeDate, false, []Operator{OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween}},
		{"boolean", schema.FieldTypeBoolean, false, []Operator{OpEquals}},
		{"enum single", schema.FieldTypeEnum, false, []Operator{OpEquals, OpNotEquals}},
		{"enum multi", schema.FieldTypeEnum, true, []Operator{OpEquals, OpNotEquals, OpIn, OpNotIn}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OperatorsFor(tt.fieldType, tt.multiSelect); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OperatorsFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultOperator(t *testing.T) {
	tests := []struct {
		name         string
		fieldType    schema.FieldType
		multiSelect  bool
		rangeContext bool
		want         Operator
	}{
		{"text", schema.FieldTypeText, false, false, OpContains},
		{"number", schema.FieldTypeNumber, false, false, OpEquals},
		{"currency", schema.FieldTypeCurrency, false, false, OpEquals},
		{"date range context", schema.FieldTypeDate, false, true, OpBetween},
		{"date point context", schema.FieldTypeDate, false, false, OpGreaterThan},
		{"boolean", schema.FieldTypeBoolean, false, false, OpEquals},
		{"enum multi", schema.FieldTypeEnum, true, false, OpIn},
		{"enum single", schema.FieldTypeEnum, false, false, OpEquals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultOperator(tt.fieldType, tt.multiSelect, tt.rangeContext); got != tt.want {
				t.Errorf("DefaultOperator() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultValue(t *testing.T) {
	if got := DefaultValue(schema.FieldTypeText, false); got != "" {
		t.Errorf("text default = %v", got)
	}
	if got := DefaultValue(schema.FieldTypeNumber, false); got != float64(0) {
		t.Errorf("number default = %v", got)
	}
	if got := DefaultValue(schema.FieldTypeBoolean, false); got != true {
		t.Errorf("boolean default = %v", got)
	}
	if got := DefaultValue(schema.FieldTypeEnum, true); !reflect.DeepEqual(got, []any{}) {
		t.Errorf("multi enum default = %v", got)
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		from  Operator
		to    Operator
		value any
		want  any
	}{
		{"scalar to array keeps entry", OpEquals, OpIn, "ACTIVE", []any{"ACTIVE"}},
		{"empty scalar to array", OpEquals, OpIn, "", []any{}},
		{"array to scalar keeps first", OpIn, OpEquals, []any{"ACTIVE", "DRAFT"}, "ACTIVE"},
		{"empty array to scalar", OpNotIn, OpEquals, []any{}, nil},
		{"scalar to scalar unchanged", OpEquals, OpContains, "x", "x"},
		{"array to array unchanged", OpIn, OpNotIn, []any{"A"}, []any{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertValue(tt.from, tt.to, tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ConvertValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateCondition(t *testing.T) {
	amount, _ := schema.FieldByID(schema.EntityTransactions, "txn_amount")
	description, _ := schema.FieldByID(schema.EntityTransactions, "txn_description")

	if err := ValidateCondition(schema.EntityTransactions, Condition{Field: amount, Operator: OpBetween}); err != nil {
		t.Errorf("BETWEEN on currency should be valid, got %v", err)
	}

	err := ValidateCondition(schema.EntityTransactions, Condition{Field: description, Operator: OpGreaterThan})
	if !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("GREATER_THAN on text: got %v, want ErrUnsupportedOperator", err)
	}

	err = ValidateCondition(schema.EntityTransactions, Condition{Field: schema.Field{ID: "nope"}, Operator: OpEquals})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field: got %v, want ErrUnknownField", err)
	}
}

func TestAssignIDs(t *testing.T) {
	amount, _ := schema.FieldByID(schema.EntityTransactions, "txn_amount")
	group := Group{
		LogicalOperator: LogicAnd,
		Conditions: []Node{
			ConditionNode(Condition{ID: "keep-me", Field: amount, Operator: OpEquals, Value: 1}),
			ConditionNode(Condition{Field: amount, Operator: OpEquals, Value: 2}),
			GroupNode(Group{LogicalOperator: LogicOr}),
		},
	}

	AssignIDs(&group)

	if group.ID == "" {
		t.Error("root group id not assigned")
	}
	if group.Conditions[0].Condition.ID != "keep-me" {
		t.Errorf("existing id overwritten: %q", group.Conditions[0].Condition.ID)
	}
	if group.Conditions[1].Condition.ID == "" {
		t.Error("condition id not assigned")
	}
	if group.Conditions[2].Group.ID == "" {
		t.Error("nested group id not assigned")
	}
}

func TestValidateGroupDepth(t *testing.T) {
	amount, _ := schema.FieldByID(schema.EntityTransactions, "txn_amount")
	leaf := ConditionNode(Condition{Field: amount, Operator: OpEquals, Value: 1})

	level2 := Group{LogicalOperator: LogicAnd, Conditions: []Node{leaf}}
	level1 := Group{LogicalOperator: LogicAnd, Conditions: []Node{GroupNode(level2)}}
	root := Group{LogicalOperator: LogicAnd, Conditions: []Node{GroupNode(level1)}}

	if GroupDepth(root) != 2 {
		t.Fatalf("GroupDepth = %d, want 2", GroupDepth(root))
	}
	if err := ValidateGroup(schema.EntityTransactions, root); err != nil {
		t.Errorf("depth 2 should be allowed, got %v", err)
	}

	tooDeep := Group{LogicalOperator: LogicAnd, Conditions: []Node{GroupNode(root)}}
	if err := ValidateGroup(schema.EntityTransactions, tooDeep); !errors.Is(err, ErrMaxNestingExceeded) {
		t.Errorf("depth 3: got %v, want ErrMaxNestingExceeded", err)
	}
}
