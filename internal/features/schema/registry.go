package schema

import "strings"

// catalogs is the single source of truth for reportable fields per entity.
// No other package may hardcode field metadata.
var catalogs = map[EntityType][]Field{
	EntityTransactions: {
		{ID: "txn_date", Name: "Date", EntityType: EntityTransactions, FieldPath: "date", FieldType: FieldTypeDate, IncludeInReport: true, Format: "dd/MM/yyyy"},
		{ID: "txn_description", Name: "Description", EntityType: EntityTransactions, FieldPath: "description", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "txn_amount", Name: "Amount", EntityType: EntityTransactions, FieldPath: "amount", FieldType: FieldTypeCurrency, IncludeInReport: true},
		{ID: "txn_type", Name: "Type", EntityType: EntityTransactions, FieldPath: "type", FieldType: FieldTypeEnum, IncludeInReport: true, Options: []string{"INCOME", "EXPENSE"}},
		{ID: "txn_category", Name: "Category", EntityType: EntityTransactions, FieldPath: "category", FieldType: FieldTypeEnum, IncludeInReport: true, MultiSelect: true, Options: []string{"GRANT", "DONATION", "PAYROLL", "RENT", "SUPPLIES", "OTHER"}},
		{ID: "txn_payment_method", Name: "Payment Method", EntityType: EntityTransactions, FieldPath: "payment_method", FieldType: FieldTypeEnum, IncludeInReport: false, Options: []string{"CASH", "CHEQUE", "TRANSFER", "CARD"}},
		{ID: "txn_reconciled", Name: "Reconciled", EntityType: EntityTransactions, FieldPath: "reconciled", FieldType: FieldTypeBoolean, IncludeInReport: false},
	},
	EntityGrants: {
		{ID: "grant_name", Name: "Grant Name", EntityType: EntityGrants, FieldPath: "name", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "grant_amount", Name: "Amount", EntityType: EntityGrants, FieldPath: "amount", FieldType: FieldTypeCurrency, IncludeInReport: true},
		{ID: "grant_start_date", Name: "Start Date", EntityType: EntityGrants, FieldPath: "start_date", FieldType: FieldTypeDate, IncludeInReport: true, Format: "dd/MM/yyyy"},
		{ID: "grant_end_date", Name: "End Date", EntityType: EntityGrants, FieldPath: "end_date", FieldType: FieldTypeDate, IncludeInReport: true, Format: "dd/MM/yyyy"},
		{ID: "grant_status", Name: "Status", EntityType: EntityGrants, FieldPath: "status", FieldType: FieldTypeEnum, IncludeInReport: true, MultiSelect: true, Options: []string{"DRAFT", "ACTIVE", "COMPLETED", "CANCELLED"}},
		{ID: "grant_grantee", Name: "Grantee", EntityType: EntityGrants, FieldPath: "grantee.name", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "grant_program", Name: "Program", EntityType: EntityGrants, FieldPath: "program.name", FieldType: FieldTypeText, IncludeInReport: false},
		{ID: "grant_disbursed", Name: "Disbursed", EntityType: EntityGrants, FieldPath: "disbursed", FieldType: FieldTypeNumber, IncludeInReport: false},
	},
	EntityGrantees: {
		{ID: "grantee_name", Name: "Name", EntityType: EntityGrantees, FieldPath: "name", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "grantee_email", Name: "Email", EntityType: EntityGrantees, FieldPath: "email", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "grantee_organization", Name: "Organization", EntityType: EntityGrantees, FieldPath: "organization", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "grantee_active", Name: "Active", EntityType: EntityGrantees, FieldPath: "active", FieldType: FieldTypeBoolean, IncludeInReport: true},
		{ID: "grantee_created_at", Name: "Created At", EntityType: EntityGrantees, FieldPath: "created_at", FieldType: FieldTypeDate, IncludeInReport: false, Format: "dd/MM/yyyy"},
	},
	EntityDonors: {
		{ID: "donor_name", Name: "Name", EntityType: EntityDonors, FieldPath: "name", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "donor_email", Name: "Email", EntityType: EntityDonors, FieldPath: "email", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "donor_total_donated", Name: "Total Donated", EntityType: EntityDonors, FieldPath: "total_donated", FieldType: FieldTypeCurrency, IncludeInReport: true},
		{ID: "donor_recurring", Name: "Recurring", EntityType: EntityDonors, FieldPath: "recurring", FieldType: FieldTypeBoolean, IncludeInReport: true},
		{ID: "donor_created_at", Name: "Created At", EntityType: EntityDonors, FieldPath: "created_at", FieldType: FieldTypeDate, IncludeInReport: false, Format: "dd/MM/yyyy"},
	},
	EntityPrograms: {
		{ID: "program_name", Name: "Name", EntityType: EntityPrograms, FieldPath: "name", FieldType: FieldTypeText, IncludeInReport: true},
		{ID: "program_budget", Name: "Budget", EntityType: EntityPrograms, FieldPath: "budget", FieldType: FieldTypeCurrency, IncludeInReport: true},
		{ID: "program_start_date", Name: "Start Date", EntityType: EntityPrograms, FieldPath: "start_date", FieldType: FieldTypeDate, IncludeInReport: true, Format: "dd/MM/yyyy"},
		{ID: "program_status", Name: "Status", EntityType: EntityPrograms, FieldPath: "status", FieldType: FieldTypeEnum, IncludeInReport: true, Options: []string{"PLANNED", "RUNNING", "CLOSED"}},
	},
}

// EntityTypes lists every entity with a field catalog, in a stable order.
func EntityTypes() []EntityType {
	return []EntityType{EntityTransactions, EntityGrants, EntityGrantees, EntityDonors, EntityPrograms}
}

// FieldsFor returns the ordered field catalog for an entity type.
// Unknown entity types return an empty list. Callers receive copies and may
// toggle IncludeInReport or set Aggregation freely.
func FieldsFor(entity EntityType) []Field {
	catalog, ok := catalogs[entity]
	if !ok {
		return []Field{}
	}
	fields := make([]Field, len(catalog))
	copy(fields, catalog)
	return fields
}

// FieldByID looks a field up in an entity catalog.
func FieldByID(entity EntityType, id string) (Field, bool) {
	for _, f := range catalogs[entity] {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// ResolvePath walks a dot-separated path through nested maps. A path that
// fails to resolve yields nil.
func ResolvePath(record map[string]any, path string) any {
	if record == nil || path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	var current any = record
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}
