package queue

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// TimeOfDay is a local wall-clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultCutoff is when the event opens for live requests.
var DefaultCutoff = TimeOfDay{Hour: 18, Minute: 30}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, want HH:MM: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// CutoffFor returns the cutoff instant on the calendar day of day, in day's
// location. It is recomputed on every run.
func CutoffFor(day time.Time, tod TimeOfDay) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour, tod.Minute, 0, 0, day.Location())
}

// SheetTimestampFormats are the layouts spreadsheet forms write. They are
// tried verbatim before the permissive fallback parser.
var SheetTimestampFormats = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"Jan 2, 2006 3:04 PM",
	"January 2, 2006 3:04 PM",
}

// fallbackFormats are the layouts handed to the permissive parser. Every
// one carries a date: a bare "17" or "2024" in the Timestamp column is not a
// submission time.
var fallbackFormats = []string{
	"2006-1-2",
	"2006-1-2 15:4",
	"2006-1-2 15:4:5",
	"1/2/2006 15:4",
	"1/2/2006 15:4:5",
	"2006/1/2",
	"2006/1/2 15:4",
	"2006/1/2 15:4:5",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
}

// Classifier labels records relative to a cutoff instant.
type Classifier struct {
	Cutoff time.Time

	loc      *time.Location
	fallback *now.Now
}

// NewClassifier builds the classifier for a run that started at at.
// Timestamps without a zone are read in at's location.
func NewClassifier(at time.Time, cutoff TimeOfDay) *Classifier {
	cfg := &now.Config{
		WeekStartDay: time.Sunday,
		TimeLocation: at.Location(),
		TimeFormats:  slices.Clone(fallbackFormats),
	}
	return &Classifier{
		Cutoff:   CutoffFor(at, cutoff),
		loc:      at.Location(),
		fallback: cfg.With(at),
	}
}

// Parse reads a raw sheet timestamp.
func (c *Classifier) Parse(raw string) (time.Time, bool) {
	raw = upperMeridiem(strings.TrimSpace(raw))
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range SheetTimestampFormats {
		if t, err := time.ParseInLocation(layout, raw, c.loc); err == nil {
			return t, true
		}
	}
	t, err := c.fallback.Parse(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// upperMeridiem turns a trailing "am"/"pm" into "AM"/"PM", the only case
// Go layouts accept.
func upperMeridiem(raw string) string {
	n := len(raw)
	if n < 3 || raw[n-3] != ' ' {
		return raw
	}
	switch strings.ToLower(raw[n-2:]) {
	case "am", "pm":
		return raw[:n-2] + strings.ToUpper(raw[n-2:])
	}
	return raw
}

// TypeOf is the classification rule: strictly before the cutoff instant is
// a Pre-Request, anything else (including no time at all) is On-Demand.
func (c *Classifier) TypeOf(submittedAt *time.Time) RequestType {
	if submittedAt != nil && submittedAt.Before(c.Cutoff) {
		return PreRequest
	}
	return OnDemand
}

// Classify parses r.RawTimestamp into r.SubmittedAt and sets r.Type. A
// non-blank timestamp that fails to parse is reported as a warning; the
// record is still classified.
func (c *Classifier) Classify(r *Record) *RowParseWarning {
	r.SubmittedAt = nil
	var warning *RowParseWarning
	if t, ok := c.Parse(r.RawTimestamp); ok {
		r.SubmittedAt = &t
	} else if strings.TrimSpace(r.RawTimestamp) != "" {
		warning = &RowParseWarning{Position: r.Position, Raw: r.RawTimestamp}
	}
	r.Type = c.TypeOf(r.SubmittedAt)
	return warning
}
