// Package backup serializes the full application state (expenses plus
// preferences) into a versioned JSON document and restores it again. Import
// validates shape before anything is applied; a failed import leaves the
// current state untouched.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"outlay/internal/core"
)

// Version is the current backup document version. Documents with a lower
// version are migrated forward on import; documents with a higher version are
// rejected.
const Version = 1

// File is the backup document envelope.
type File struct {
	Version     int              `json:"version"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Expenses    []core.Expense   `json:"expenses"`
	Prefs       core.Preferences `json:"prefs"`
}

// ImportError reports a backup document that cannot be restored.
type ImportError struct {
	Reason string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import backup: %s", e.Reason)
}

// IsImport reports whether err is an ImportError.
func IsImport(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}

// Export serializes the given state into a backup document stamped with now.
func Export(expenses []core.Expense, prefs core.Preferences, now time.Time) ([]byte, error) {
	f := File{
		Version:     Version,
		GeneratedAt: now.UTC(),
		Expenses:    expenses,
		Prefs:       prefs,
	}
	if f.Expenses == nil {
		f.Expenses = []core.Expense{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// Import parses and validates a backup document. The returned expenses are
// validated individually; any invalid record rejects the whole document.
func Import(data []byte) (File, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return File{}, &ImportError{Reason: "not a JSON object"}
	}

	versionRaw, ok := raw["version"]
	if !ok {
		return File{}, &ImportError{Reason: "missing version field"}
	}
	var version int
	if err := json.Unmarshal(versionRaw, &version); err != nil {
		return File{}, &ImportError{Reason: "version is not a number"}
	}
	if version > Version {
		return File{}, &ImportError{Reason: fmt.Sprintf("unsupported version %d (current is %d)", version, Version)}
	}
	if version < 1 {
		return File{}, &ImportError{Reason: fmt.Sprintf("invalid version %d", version)}
	}

	for version < Version {
		migrate, ok := migrations[version]
		if !ok {
			return File{}, &ImportError{Reason: fmt.Sprintf("no migration from version %d", version)}
		}
		var err error
		raw, err = migrate(raw)
		if err != nil {
			return File{}, &ImportError{Reason: fmt.Sprintf("migrate from version %d: %v", version, err)}
		}
		version++
	}

	expensesRaw, ok := raw["expenses"]
	if !ok {
		return File{}, &ImportError{Reason: "missing expenses field"}
	}
	var expenses []core.Expense
	if err := json.Unmarshal(expensesRaw, &expenses); err != nil {
		return File{}, &ImportError{Reason: "expenses is not an array of expense records"}
	}
	for i, e := range expenses {
		if e.ID == "" {
			return File{}, &ImportError{Reason: fmt.Sprintf("expense %d has no id", i)}
		}
		if err := e.Validate(); err != nil {
			return File{}, &ImportError{Reason: fmt.Sprintf("expense %d (%s): %v", i, e.ID, err)}
		}
	}

	prefsRaw, ok := raw["prefs"]
	if !ok {
		return File{}, &ImportError{Reason: "missing prefs field"}
	}
	var prefs core.Preferences
	if err := json.Unmarshal(prefsRaw, &prefs); err != nil {
		return File{}, &ImportError{Reason: "prefs is not a preferences object"}
	}
	prefs = prefs.Merge()
	if err := prefs.Validate(); err != nil {
		return File{}, &ImportError{Reason: fmt.Sprintf("prefs: %v", err)}
	}

	f := File{Version: Version, Expenses: expenses, Prefs: prefs}
	if generatedRaw, ok := raw["generatedAt"]; ok {
		_ = json.Unmarshal(generatedRaw, &f.GeneratedAt)
	}
	if f.Expenses == nil {
		f.Expenses = []core.Expense{}
	}
	return f, nil
}

// migrateFunc rewrites a document one version forward.
type migrateFunc func(map[string]json.RawMessage) (map[string]json.RawMessage, error)

// migrations maps a document version to the step that lifts it to version+1.
// Version 1 is the first published format, so the table starts empty.
var migrations = map[int]migrateFunc{}
