package queue

import (
	"context"
	"time"
)

var eventZone = time.FixedZone("CDT", -5*60*60)

// runAt is the moment test runs happen: 14 June 2025, 20:00 local.
var runAt = time.Date(2025, time.June, 14, 20, 0, 0, 0, eventZone)

func fixedClock() time.Time { return runAt }

type fakeSource struct {
	sheet   Sheet
	err     error
	calls   int
	sheetID string
	tab     string
}

func (f *fakeSource) Fetch(_ context.Context, sheetID, tab string) (Sheet, error) {
	f.calls++
	f.sheetID, f.tab = sheetID, tab
	return f.sheet, f.err
}

func row(ts, user, song, status string) map[string]string {
	return map[string]string{
		"Timestamp":       ts,
		"User":            user,
		"Song":            song,
		"Line Dance Name": "Cupid Shuffle",
		"Mood":            "Hype",
		"Dance Level":     "Beginner",
		"Status":          status,
	}
}

func requestSheet(rows ...map[string]string) Sheet {
	return Sheet{
		Header: []string{"Timestamp", "User", "Song", "Line Dance Name", "Mood", "Dance Level", "Status"},
		Rows:   rows,
	}
}

func at(day, hour, minute int) *time.Time {
	t := time.Date(2025, time.June, day, hour, minute, 0, 0, eventZone)
	return &t
}
