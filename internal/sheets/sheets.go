// Package sheets reads request worksheets through the Google Sheets API
// with a service account.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// Credentials locates a service account key. JSON takes precedence.
type Credentials struct {
	JSON string
	File string
}

func (c Credentials) option() (option.ClientOption, error) {
	switch {
	case c.JSON != "":
		return option.WithCredentialsJSON([]byte(c.JSON)), nil
	case c.File != "":
		return option.WithCredentialsFile(c.File), nil
	}
	return nil, errors.New("no service account credentials configured")
}

// Source is a queue.Source backed by the Sheets API.
type Source struct {
	values *sheetsapi.SpreadsheetsValuesService
}

// NewSource builds an authorized client with read-only scope.
func NewSource(ctx context.Context, creds Credentials, opts ...option.ClientOption) (*Source, error) {
	credOpt, err := creds.option()
	if err != nil {
		return nil, queue.Unavailable("", "", err)
	}
	opts = append([]option.ClientOption{credOpt, option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}, opts...)
	return newSource(ctx, opts...)
}

func newSource(ctx context.Context, opts ...option.ClientOption) (*Source, error) {
	srv, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, queue.Unavailable("", "", fmt.Errorf("failed to create sheets client: %w", err))
	}
	return &Source{values: srv.Spreadsheets.Values}, nil
}

// Fetch reads the whole tab. Row 1 is the header. Every failure, including
// an unknown spreadsheet or tab, is reported as queue.ErrSourceUnavailable.
func (s *Source) Fetch(ctx context.Context, sheetID, tab string) (queue.Sheet, error) {
	resp, err := s.values.Get(sheetID, tabRange(tab)).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return queue.Sheet{}, queue.Unavailable(sheetID, tab, err)
	}
	return toSheet(resp.Values), nil
}

// tabRange quotes a tab name for A1 notation.
func tabRange(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// toSheet maps the value grid to records keyed by header cell. Short rows
// read as "" and fully blank rows are skipped.
func toSheet(values [][]interface{}) queue.Sheet {
	if len(values) == 0 {
		return queue.Sheet{}
	}
	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = fmt.Sprint(cell)
	}

	sheet := queue.Sheet{Header: header, Rows: make([]map[string]string, 0, len(values)-1)}
	for _, cells := range values[1:] {
		row := make(map[string]string, len(header))
		blank := true
		for i, name := range header {
			v := ""
			if i < len(cells) && cells[i] != nil {
				v = fmt.Sprint(cells[i])
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row[name] = v
		}
		if !blank {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}
