package db

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// ReadCSV parses a CSV export of a request sheet. The first record is the
// header. Short rows are padded with "", extra cells are dropped and fully
// blank rows are skipped.
func ReadCSV(r io.Reader) (queue.Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return queue.Sheet{}, nil
	}
	if err != nil {
		return queue.Sheet{}, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	sheet := queue.Sheet{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return queue.Sheet{}, fmt.Errorf("failed to read row %d: %w", len(sheet.Rows)+2, err)
		}
		if blank(rec) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
