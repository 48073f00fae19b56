package queue

import (
	"strings"
	"time"
)

// RequestType says whether a request came in before the event started.
type RequestType string

const (
	PreRequest RequestType = "Pre-Request"
	OnDemand   RequestType = "On-Demand"
)

// Field is the canonical name of a request column.
type Field string

const (
	FieldSubmittedAt Field = "submitted_at"
	FieldSubmitter   Field = "submitter"
	FieldSong        Field = "song"
	FieldArtist      Field = "artist"
	FieldDanceName   Field = "dance_name"
	FieldMood        Field = "mood"
	FieldDanceLevel  Field = "dance_level"
	FieldStatus      Field = "status"

	// FieldRequestType is derived by the classifier, never read from the sheet.
	FieldRequestType Field = "request_type"
)

// TimestampLayout is how a parsed submission time is displayed.
const TimestampLayout = "2006-01-02 15:04:05"

const statusPlayed = "played"

// Record is one submitted song/dance request. It only lives for one run and
// is identified by its Position (1-based) within that run's fetch.
type Record struct {
	Position     int         `json:"position"`
	RawTimestamp string      `json:"raw_timestamp"`
	SubmittedAt  *time.Time  `json:"submitted_at,omitempty"`
	Submitter    string      `json:"submitter"`
	Song         string      `json:"song"`
	Artist       string      `json:"artist"`
	DanceName    string      `json:"dance_name"`
	Mood         string      `json:"mood"`
	DanceLevel   string      `json:"dance_level"`
	Status       string      `json:"status"`
	Type         RequestType `json:"request_type"`
}

// Played reports whether the DJ marked the request as played.
func (r Record) Played() bool {
	return strings.EqualFold(r.Status, statusPlayed)
}

// Value returns the display text of a field.
func (r Record) Value(f Field) string {
	switch f {
	case FieldSubmittedAt:
		if r.SubmittedAt != nil {
			return r.SubmittedAt.Format(TimestampLayout)
		}
		return r.RawTimestamp
	case FieldSubmitter:
		return r.Submitter
	case FieldSong:
		return r.Song
	case FieldArtist:
		return r.Artist
	case FieldDanceName:
		return r.DanceName
	case FieldMood:
		return r.Mood
	case FieldDanceLevel:
		return r.DanceLevel
	case FieldStatus:
		return r.Status
	case FieldRequestType:
		return string(r.Type)
	}
	return ""
}
