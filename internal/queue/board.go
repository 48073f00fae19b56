package queue

import "time"

// NoMatchesMessage is shown instead of an empty queue.
const NoMatchesMessage = "No current requests match the selected filters."

// DefaultFooter is the caption under the queue.
const DefaultFooter = "Powered by VibeQue 💃🏾🎶 | Admin View Only | #LETSWORK"

// SyncLayout formats the "Last Sync" caption.
const SyncLayout = "Monday, January 02, 03:04 PM"

// Board status values. A nil board has not been loaded.
const (
	StatusNotLoaded = "not_loaded"
	StatusNoMatches = "no_matches"
	StatusOK        = "ok"
)

// DisplayMode selects how a board is drawn.
type DisplayMode string

const (
	DisplayTable DisplayMode = "table"
	DisplayCards DisplayMode = "cards"
)

// ParseDisplayMode returns DisplayCards for "cards" and DisplayTable otherwise.
func ParseDisplayMode(s string) DisplayMode {
	if DisplayMode(s) == DisplayCards {
		return DisplayCards
	}
	return DisplayTable
}

// Column is one displayable column.
type Column struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
}

// Board is the result of one run, ready for a presentation adapter.
type Board struct {
	Records    []Record  `json:"records"`
	Columns    []Column  `json:"columns"`
	Submitters []string  `json:"submitters"`
	Options    Options   `json:"options"`
	Fetched    int       `json:"fetched"`
	NoMatches  bool      `json:"no_matches"`
	SyncedAt   time.Time `json:"synced_at"`
	Cutoff     time.Time `json:"cutoff"`
}

// Status distinguishes a board that has not been loaded from one whose
// filters matched nothing.
func (b *Board) Status() string {
	switch {
	case b == nil:
		return StatusNotLoaded
	case b.NoMatches:
		return StatusNoMatches
	}
	return StatusOK
}

// Label returns the column label of f, or "" if the sheet lacks it.
func (b *Board) Label(f Field) string {
	for _, c := range b.Columns {
		if c.Field == f {
			return c.Label
		}
	}
	return ""
}

// SyncCaption is the "Last Sync" line shown under the sync badge.
func SyncCaption(t time.Time) string {
	return "Last Sync: " + t.Format(SyncLayout)
}
