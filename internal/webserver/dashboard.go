package webserver

import (
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

var templateFuncs = template.FuncMap{
	"cell":    func(r queue.Record, f queue.Field) string { return r.Value(f) },
	"rel":     func(t time.Time) string { return humanize.Time(t) },
	"deref":   func(t *time.Time) time.Time { return *t },
	"inc":     func(i int) int { return i + 1 },
	"caption": queue.SyncCaption,
}

// dashboardPage is the template data of the dashboard.
type dashboardPage struct {
	Title      string
	Footer     string
	RequestID  string
	View       queue.DisplayMode
	Options    queue.Options
	Submitters []string
	Board      *queue.Board
	Error      string
	Missing    []string
	Empty      string
}

func (p dashboardPage) Cards() bool { return p.View == queue.DisplayCards }

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	opts, view, err := parseOptions(r, s.cfg.DefaultView)
	status := http.StatusOK
	page := dashboardPage{
		Title:      s.cfg.Title,
		Footer:     s.cfg.Footer,
		RequestID:  RequestID(r.Context()),
		View:       view,
		Options:    opts,
		Submitters: []string{queue.AllSubmitters},
		Empty:      queue.NoMatchesMessage,
	}
	if err != nil {
		status = http.StatusBadRequest
		page.Error = err.Error()
		s.render(w, status, page)
		return
	}

	board, err := s.runner.Run(r.Context(), opts)
	s.publish(r, board, err)
	if err != nil {
		apiErr := toAPIError(err)
		status = toHTTPStatus(apiErr)
		page.Error = apiErr.Message
		page.Missing = apiErr.Missing
		s.render(w, status, page)
		return
	}

	page.Board = board
	page.Options = board.Options
	page.Submitters = append([]string{queue.AllSubmitters}, board.Submitters...)
	s.render(w, status, page)
}

func (s *Server) render(w http.ResponseWriter, status int, page dashboardPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "dashboard.html", page); err != nil {
		s.logger.Error("failed to render dashboard", zap.Error(err))
	}
}
