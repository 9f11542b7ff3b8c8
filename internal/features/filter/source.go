package filter

import (
	"grant-crm/internal/features/schema"
)

// SchemaOperatorSource adapts this package's rule tables to the interface the
// schema HTTP surface consumes.
type SchemaOperatorSource struct{}

func NewSchemaOperatorSource() schema.OperatorSource {
	return SchemaOperatorSource{}
}

func (SchemaOperatorSource) OperatorNamesFor(fieldType schema.FieldType, multiSelect bool) []string {
	ops := OperatorsFor(fieldType, multiSelect)
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return names
}

func (SchemaOperatorSource) DefaultOperatorName(fieldType schema.FieldType, multiSelect, rangeContext bool) string {
	return string(DefaultOperator(fieldType, multiSelect, rangeContext))
}

func (SchemaOperatorSource) DefaultValueFor(fieldType schema.FieldType, multiSelect bool) any {
	return DefaultValue(fieldType, multiSelect)
}
