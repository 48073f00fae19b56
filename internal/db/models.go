package db

import (
	"gorm.io/gorm"
)

// Worksheet is one loaded tab. The header keeps the sheet's column order,
// including any stray whitespace, exactly as exported.
type Worksheet struct {
	gorm.Model
	SheetID string   `json:"sheet_id" gorm:"uniqueIndex:idx_worksheet_sheet_tab;not null"`
	Tab     string   `json:"tab" gorm:"uniqueIndex:idx_worksheet_sheet_tab;not null"`
	Header  []string `json:"header" gorm:"serializer:json"`
}

// SheetRow is one data row of a worksheet, keyed by header cell.
type SheetRow struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	WorksheetID uint              `json:"worksheet_id" gorm:"index;not null"`
	Position    int               `json:"position" gorm:"not null"`
	Values      map[string]string `json:"values" gorm:"serializer:json"`
}
