package queue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceUnavailable matches every error returned when the row source
// cannot be reached, authorized, or does not have the requested sheet/tab.
var ErrSourceUnavailable = errors.New("source unavailable")

// SchemaError is returned when the sheet lacks a required column.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required column(s): " + strings.Join(e.Missing, ", ")
}

// SourceError wraps a row source failure.
type SourceError struct {
	SheetID string
	Tab     string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("sync failed for sheet %q tab %q: %v", e.SheetID, e.Tab, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }

// Unavailable wraps err so that it matches ErrSourceUnavailable.
func Unavailable(sheetID, tab string, err error) error {
	if err == nil {
		err = ErrSourceUnavailable
	}
	return &SourceError{SheetID: sheetID, Tab: tab, Err: err}
}

// RowParseWarning describes a row whose timestamp could not be parsed. It is
// never fatal: the row stays in the queue without a submission time.
type RowParseWarning struct {
	Position int
	Raw      string
}

func (w RowParseWarning) String() string {
	return fmt.Sprintf("row %d: unparseable timestamp %q", w.Position, w.Raw)
}
