package schema

// EntityType names a reportable record collection
type EntityType string

const (
	EntityTransactions EntityType = "transactions"
	EntityGrants       EntityType = "grants"
	EntityGrantees     EntityType = "grantees"
	EntityDonors       EntityType = "donors"
	EntityPrograms     EntityType = "programs"
)

type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeCurrency FieldType = "CURRENCY"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeBoolean  FieldType = "BOOLEAN"
	FieldTypeEnum     FieldType = "ENUM"
)

// Aggregation is the summary operator a field can declare for report output
type Aggregation string

const (
	AggregationSum     Aggregation = "SUM"
	AggregationAverage Aggregation = "AVERAGE"
	AggregationMin     Aggregation = "MIN"
	AggregationMax     Aggregation = "MAX"
	AggregationCount   Aggregation = "COUNT"
)

// Field describes one reportable attribute of an entity.
// FieldPath is a dot-separated accessor into a record; a path that does not
// resolve yields a nil value, never an error.
type Field struct {
	ID              string      `json:"id" bson:"id"`
	Name            string      `json:"name" bson:"name"`
	EntityType      EntityType  `json:"entity_type" bson:"entity_type"`
	FieldPath       string      `json:"field_path" bson:"field_path"`
	FieldType       FieldType   `json:"field_type" bson:"field_type"`
	IncludeInReport bool        `json:"include_in_report" bson:"include_in_report"`
	Format          string      `json:"format,omitempty" bson:"format,omitempty"`
	Aggregation     Aggregation `json:"aggregation,omitempty" bson:"aggregation,omitempty"`
	MultiSelect     bool        `json:"multi_select,omitempty" bson:"multi_select,omitempty"`
	Options         []string    `json:"options,omitempty" bson:"options,omitempty"`
}
