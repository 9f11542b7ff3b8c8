package report

import (
	"bytes"
	"encoding/csv"
)

// renderCSV writes a UTF-8, comma-delimited export: header row, then one
// line per row. encoding/csv quotes values containing commas or quotes.
func renderCSV(table Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		headers[i] = col.Name
	}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, row := range table.Rows {
		if err := writer.Write(row.Values); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
