package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kurihiro0119/ghstats/internal/domain"
)

// EscapeValue renders one CSV cell. Strings have every double quote doubled
// and are then wrapped in double quotes. Any other value is written bare as
// its JSON literal: true, false, null or the number as received.
func EscapeValue(v any) string {
	switch val := v.(type) {
	case string:
		return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// UnescapeValue reverses EscapeValue for a quoted string cell.
func UnescapeValue(cell string) (string, bool) {
	if len(cell) < 2 || cell[0] != '"' || cell[len(cell)-1] != '"' {
		return "", false
	}
	return strings.ReplaceAll(cell[1:len(cell)-1], `""`, `"`), true
}

// Serialize builds the CSV table: a header of columns, then one line per
// record. A column the record lacks produces an empty cell. Every line ends
// with a newline.
func Serialize(records []domain.Record, columns []string) string {
	var b strings.Builder

	b.WriteString(strings.Join(columns, ","))
	b.WriteByte('\n')

	cells := make([]string, len(columns))
	for _, r := range records {
		for i, col := range columns {
			if v, ok := r.Get(col); ok {
				cells[i] = EscapeValue(v)
			} else {
				cells[i] = ""
			}
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}

	return b.String()
}
