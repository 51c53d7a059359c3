// Package export serializes a filtered expense set into downloadable report
// formats. Serializers are pure: the same input yields byte-identical output.
// Filenames are the caller's job (they embed the current time).
package export

import (
	"fmt"
	"time"
)

// Content types for the produced byte streams.
const (
	ContentTypeCSV = "text/csv"
	ContentTypePDF = "application/pdf"
)

const filenamePrefix = "expenses-report"

// Filename builds the download name for an export, e.g.
// "expenses-report-20240115-1504.csv".
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", filenamePrefix, now.Format("20060102-1504"), ext)
}

// ExportError reports a serialization failure. No partial output is ever
// returned alongside one.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
