package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

const cardWidth = 36

// syncFailed is shown for any source failure; details go to the log.
const syncFailed = "Sync failed. Check the sheet connection and try again."

// Renderer turns boards into terminal text.
type Renderer struct {
	Title  string
	Width  int
	Styles Styles

	// Now is used for relative submission times. Defaults to time.Now.
	Now func() time.Time
}

func NewRenderer(title string, width int) *Renderer {
	return &Renderer{Title: title, Width: width, Styles: DefaultStyles(), Now: time.Now}
}

// Board draws the header, sync line and either the table or the cards.
func (r *Renderer) Board(b *queue.Board, mode queue.DisplayMode) string {
	var sb strings.Builder
	sb.WriteString(r.header(b))
	sb.WriteString("\n\n")

	switch {
	case b.NoMatches:
		sb.WriteString(r.Styles.Empty.Render(queue.NoMatchesMessage))
	case mode == queue.DisplayCards:
		sb.WriteString(r.cards(b))
	default:
		sb.WriteString(r.table(b))
	}
	sb.WriteString("\n")
	return sb.String()
}

// Error draws a failed run. Schema errors are shown verbatim.
func (r *Renderer) Error(err error) string {
	msg := syncFailed
	var schemaErr *queue.SchemaError
	if errors.As(err, &schemaErr) {
		msg = schemaErr.Error()
	} else if !errors.Is(err, queue.ErrSourceUnavailable) {
		msg = err.Error()
	}
	head := lipgloss.JoinHorizontal(lipgloss.Center,
		r.Styles.Title.Render(r.Title), "  ", r.Styles.BadgeFail.Render("Sync failed"))
	return head + "\n" + r.Styles.Error.Render(msg) + "\n"
}

// Write renders the result of one run to w.
func (r *Renderer) Write(w io.Writer, b *queue.Board, err error, mode queue.DisplayMode) error {
	var out string
	if err != nil {
		out = r.Error(err)
	} else {
		out = r.Board(b, mode)
	}
	_, werr := io.WriteString(w, out)
	return werr
}

func (r *Renderer) header(b *queue.Board) string {
	head := lipgloss.JoinHorizontal(lipgloss.Center,
		r.Styles.Title.Render(r.Title), "  ", r.Styles.BadgeOK.Render("Live Sync OK"))
	summary := fmt.Sprintf("%s  ·  %d of %d requests  ·  pre-requests before %s",
		queue.SyncCaption(b.SyncedAt), len(b.Records), b.Fetched, b.Cutoff.Format("3:04 PM"))
	return head + "\n" + r.Styles.Caption.Render(summary)
}

func (r *Renderer) table(b *queue.Board) string {
	// Rows are numbered in display order, after filtering and sorting.
	headers := make([]string, 0, len(b.Columns)+1)
	headers = append(headers, "#")
	for _, c := range b.Columns {
		headers = append(headers, c.Label)
	}
	rows := make([][]string, len(b.Records))
	for i, rec := range b.Records {
		row := make([]string, 0, len(b.Columns)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, c := range b.Columns {
			row = append(row, rec.Value(c.Field))
		}
		rows[i] = row
	}

	typeCol := len(b.Columns)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.Styles.Header
			case col == typeCol && row >= 0 && row < len(b.Records):
				return r.typeStyle(b.Records[row].Type).Padding(0, 1)
			}
			return r.Styles.Cell
		})
	if r.Width > 0 {
		t = t.Width(r.Width)
	}
	return t.String()
}

func (r *Renderer) cards(b *queue.Board) string {
	perRow := 1
	if r.Width > 0 {
		perRow = max(1, r.Width/(cardWidth+4))
	}

	var rows []string
	var line []string
	for _, rec := range b.Records {
		line = append(line, r.card(b, rec))
		if len(line) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) card(b *queue.Board, rec queue.Record) string {
	lines := []string{r.Styles.CardTitle.Render(rec.Song)}
	if rec.Artist != "" {
		lines = append(lines, rec.Artist)
	}
	if rec.DanceName != "" {
		dance := "Dance: " + rec.DanceName
		if rec.DanceLevel != "" {
			dance += " (" + rec.DanceLevel + ")"
		}
		lines = append(lines, dance)
	}
	if rec.Mood != "" {
		lines = append(lines, "Mood: "+rec.Mood)
	}

	from := "From " + rec.Submitter
	if rec.SubmittedAt != nil {
		from += " · " + humanize.RelTime(*rec.SubmittedAt, r.now(), "ago", "from now")
	}
	lines = append(lines, r.Styles.Caption.Render(from))

	kind := r.typeStyle(rec.Type).Render(string(rec.Type))
	if rec.Status != "" && b.Label(queue.FieldStatus) != "" {
		kind += r.Styles.Caption.Render(" · " + rec.Status)
	}
	lines = append(lines, kind)

	return r.Styles.Card.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) typeStyle(t queue.RequestType) lipgloss.Style {
	if t == queue.PreRequest {
		return r.Styles.Pre
	}
	return r.Styles.OnDemand
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
