package template

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
)

// System templates ship with the application. They are held in code, never
// written to the store, and every mutation path rejects them.

var seededAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mustOID(hex string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return oid
}

func fieldsWithAggregation(entity schema.EntityType, aggregations map[string]schema.Aggregation) []schema.Field {
	fields := schema.FieldsFor(entity)
	for i, f := range fields {
		if agg, ok := aggregations[f.ID]; ok {
			fields[i].Aggregation = agg
		}
	}
	return fields
}

func systemTemplates() []ReportTemplate {
	return []ReportTemplate{
		{
			ID:                mustOID("665f000000000000000000a1"),
			Name:              "All Transactions",
			Description:       "Every transaction with amounts totalled",
			PrimaryEntityType: schema.EntityTransactions,
			Fields:            fieldsWithAggregation(schema.EntityTransactions, map[string]schema.Aggregation{"txn_amount": schema.AggregationSum}),
			Filters:           []filter.Condition{},
			Sorts:             []Sort{{FieldID: "txn_date", Direction: SortDesc}},
			CreatedAt:         seededAt,
			UpdatedAt:         seededAt,
			IsSystem:          true,
		},
		{
			ID:                mustOID("665f000000000000000000a2"),
			Name:              "Expense Summary",
			Description:       "Expenses only, newest first, with a totals row",
			PrimaryEntityType: schema.EntityTransactions,
			Fields:            fieldsWithAggregation(schema.EntityTransactions, map[string]schema.Aggregation{"txn_amount": schema.AggregationSum}),
			Filters:           []filter.Condition{},
			FilterGroups: []filter.Group{
				{
					ID:              "expense-only",
					LogicalOperator: filter.LogicAnd,
					Conditions: []filter.Node{
						filter.ConditionNode(filter.Condition{
							ID:       "expense-type",
							Field:    mustField(schema.EntityTransactions, "txn_type"),
							Operator: filter.OpEquals,
							Value:    "EXPENSE",
						}),
					},
				},
			},
			Sorts:     []Sort{{FieldID: "txn_date", Direction: SortDesc}},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
			IsSystem:  true,
		},
		{
			ID:                mustOID("665f000000000000000000a3"),
			Name:              "Active Grants",
			Description:       "Grants currently in flight with committed amounts",
			PrimaryEntityType: schema.EntityGrants,
			Fields:            fieldsWithAggregation(schema.EntityGrants, map[string]schema.Aggregation{"grant_amount": schema.AggregationSum}),
			Filters:           []filter.Condition{},
			FilterGroups: []filter.Group{
				{
					ID:              "active-only",
					LogicalOperator: filter.LogicAnd,
					Conditions: []filter.Node{
						filter.ConditionNode(filter.Condition{
							ID:       "active-status",
							Field:    mustField(schema.EntityGrants, "grant_status"),
							Operator: filter.OpIn,
							Value:    []any{"ACTIVE"},
						}),
					},
				},
			},
			Sorts:     []Sort{{FieldID: "grant_start_date", Direction: SortAsc}},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
			IsSystem:  true,
		},
		{
			ID:                mustOID("665f000000000000000000a4"),
			Name:              "Donor Directory",
			Description:       "All donors with lifetime giving",
			PrimaryEntityType: schema.EntityDonors,
			Fields:            fieldsWithAggregation(schema.EntityDonors, map[string]schema.Aggregation{"donor_total_donated": schema.AggregationSum}),
			Filters:           []filter.Condition{},
			Sorts:             []Sort{{FieldID: "donor_name", Direction: SortAsc}},
			CreatedAt:         seededAt,
			UpdatedAt:         seededAt,
			IsSystem:          true,
		},
	}
}

func mustField(entity schema.EntityType, id string) schema.Field {
	f, ok := schema.FieldByID(entity, id)
	if !ok {
		panic("unknown seed field " + id)
	}
	return f
}
