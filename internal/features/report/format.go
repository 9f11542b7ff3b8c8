package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"grant-crm/internal/features/schema"
)

var currencyPrinter = message.NewPrinter(language.English)

const defaultDateFormat = "dd/MM/yyyy"

// formatValue renders one cell per the field's type and format string:
// dates through dd/MM/yyyy substitution, currency with a glyph and
// locale-aware thousands grouping, booleans as Yes/No.
func formatValue(v any, field schema.Field, currencyGlyph string) string {
	if v == nil {
		return ""
	}
	switch field.FieldType {
	case schema.FieldTypeDate:
		if t, ok := toTime(v); ok {
			layout := field.Format
			if layout == "" {
				layout = defaultDateFormat
			}
			return t.Format(dateLayout(layout))
		}
		return fmt.Sprintf("%v", v)
	case schema.FieldTypeCurrency:
		if n, ok := toNumber(v); ok {
			return currencyGlyph + currencyPrinter.Sprintf("%v", number.Decimal(n, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		}
		return fmt.Sprintf("%v", v)
	case schema.FieldTypeNumber:
		if n, ok := toNumber(v); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return fmt.Sprintf("%v", v)
	case schema.FieldTypeBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// dateLayout translates a dd/MM/yyyy style format string into a Go layout.
func dateLayout(format string) string {
	layout := format
	layout = strings.ReplaceAll(layout, "yyyy", "2006")
	layout = strings.ReplaceAll(layout, "MM", "01")
	layout = strings.ReplaceAll(layout, "dd", "02")
	return layout
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
