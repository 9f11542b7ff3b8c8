package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestRenderCSVQuotesCommas(t *testing.T) {
	table := Table{
		Title:   "Expenses",
		Columns: []Column{{FieldID: "txn_description", Name: "Description"}, {FieldID: "txn_amount", Name: "Amount"}},
		Rows: []Row{
			{Values: []string{"Rent, April", "$1,200.00"}},
			{Values: []string{"Supplies", "$85.00"}},
		},
	}

	blob, err := renderCSV(table)
	if err != nil {
		t.Fatalf("renderCSV: %v", err)
	}

	if !strings.Contains(string(blob), `"Rent, April"`) {
		t.Errorf("value with comma not quoted:\n%s", blob)
	}

	records, err := csv.NewReader(bytes.NewReader(blob)).ReadAll()
	if err != nil {
		t.Fatalf("parsing rendered output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (header + 2 rows)", len(records))
	}
	if records[0][0] != "Description" || records[0][1] != "Amount" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "Rent, April" {
		t.Errorf("comma value did not round-trip: %q", records[1][0])
	}
	if records[1][1] != "$1,200.00" {
		t.Errorf("currency value did not round-trip: %q", records[1][1])
	}
}

func TestRenderCSVEmptyTable(t *testing.T) {
	table := Table{
		Title:   "Empty",
		Columns: []Column{{FieldID: "donor_name", Name: "Name"}},
	}
	blob, err := renderCSV(table)
	if err != nil {
		t.Fatalf("renderCSV: %v", err)
	}
	if strings.TrimSpace(string(blob)) != "Name" {
		t.Errorf("empty table should render header only, got %q", blob)
	}
}
