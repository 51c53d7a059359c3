package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"outlay/internal/core"
)

var csvHeader = []string{"title", "amount", "category", "date", "notes"}

// ToCSV encodes the filtered set as RFC 4180 CSV with a header row. Amounts
// are raw numerics (no currency formatting), dates full RFC 3339 timestamps,
// absent notes an empty string.
func ToCSV(items []core.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, &ExportError{Format: "csv", Err: err}
	}
	for _, e := range items {
		record := []string{
			e.Title,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Category,
			e.Date.UTC().Format(time.RFC3339),
			e.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, &ExportError{Format: "csv", Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &ExportError{Format: "csv", Err: err}
	}
	return buf.Bytes(), nil
}
