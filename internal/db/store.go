package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

const insertBatchSize = 200

// Store reads and replaces rehearsal worksheets. It implements queue.Source.
type Store struct {
	db *gorm.DB
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d}
}

// ReplaceWorksheet swaps the whole content of sheetID/tab in one transaction.
func (s *Store) ReplaceWorksheet(ctx context.Context, sheetID, tab string, sheet queue.Sheet) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws := Worksheet{SheetID: sheetID, Tab: tab}
		if err := tx.Where(&Worksheet{SheetID: sheetID, Tab: tab}).FirstOrCreate(&ws).Error; err != nil {
			return fmt.Errorf("failed to find worksheet: %w", err)
		}
		ws.Header = sheet.Header
		if err := tx.Save(&ws).Error; err != nil {
			return fmt.Errorf("failed to save header: %w", err)
		}
		if err := tx.Where("worksheet_id = ?", ws.ID).Delete(&SheetRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear rows: %w", err)
		}
		if len(sheet.Rows) == 0 {
			return nil
		}

		rows := make([]SheetRow, 0, len(sheet.Rows))
		for i, values := range sheet.Rows {
			rows = append(rows, SheetRow{WorksheetID: ws.ID, Position: i + 1, Values: values})
		}
		if err := tx.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert rows: %w", err)
		}
		return nil
	})
}

// Fetch returns the stored rows in sheet order. A tab that was never loaded
// is reported as unavailable, like a missing tab in a live sheet.
func (s *Store) Fetch(ctx context.Context, sheetID, tab string) (queue.Sheet, error) {
	var ws Worksheet
	err := s.db.WithContext(ctx).Where("sheet_id = ? AND tab = ?", sheetID, tab).First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return queue.Sheet{}, queue.Unavailable(sheetID, tab, errors.New("worksheet has not been loaded"))
	}
	if err != nil {
		return queue.Sheet{}, queue.Unavailable(sheetID, tab, err)
	}

	var rows []SheetRow
	if err := s.db.WithContext(ctx).Where("worksheet_id = ?", ws.ID).Order("position ASC").Find(&rows).Error; err != nil {
		return queue.Sheet{}, queue.Unavailable(sheetID, tab, err)
	}

	sheet := queue.Sheet{Header: ws.Header, Rows: make([]map[string]string, 0, len(rows))}
	for _, r := range rows {
		values := r.Values
		if values == nil {
			values = map[string]string{}
		}
		sheet.Rows = append(sheet.Rows, values)
	}
	return sheet, nil
}

// Worksheets lists the loaded tabs, most recently loaded first.
func (s *Store) Worksheets(ctx context.Context) ([]Worksheet, error) {
	var out []Worksheet
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
