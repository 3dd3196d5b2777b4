package sheets

import (
	"fmt"
	"strings"

	"wydatki/internal/core"
)

// decodeValues converts a values matrix (as returned by the Sheets API) into
// records. A first row holding the column names is skipped; any other first
// row is data. Blank rows are skipped and short rows are padded like in the
// flat file.
func decodeValues(values [][]interface{}) []core.Record {
	records := []core.Record{}
	if len(values) > 0 && isHeader(toStrings(values[0])) {
		values = values[1:]
	}
	for _, row := range values {
		fields := toStrings(row)
		if isBlank(fields) {
			continue
		}
		records = append(records, core.RecordFromValues(fields))
	}
	return records
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func toRow(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func isHeader(fields []string) bool {
	header := core.Header()
	if len(fields) < len(header) {
		return false
	}
	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), name) {
			return false
		}
	}
	return true
}
