// Package webserver serves the DJ dashboard and its JSON API.
package webserver

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tejzpr/vibeque-hq/internal/live"
	"github.com/tejzpr/vibeque-hq/internal/queue"
)

const healthMagic = "vibeque-hq-ok"

// ErrAlreadyRunning is returned by Listen when another dashboard owns the
// address.
var ErrAlreadyRunning = errors.New("dashboard already running")

//go:embed templates/*.html
var templateFS embed.FS

// Config holds the display settings of the dashboard.
type Config struct {
	Title       string
	Footer      string
	DefaultView queue.DisplayMode
}

type Server struct {
	runner queue.Runner
	broker *live.Broker
	logger *zap.Logger
	cfg    Config
	tmpl   *template.Template
}

func New(runner queue.Runner, broker *live.Broker, logger *zap.Logger, cfg Config) (*Server, error) {
	if cfg.Title == "" {
		cfg.Title = "VibeQue DJ HQ"
	}
	if cfg.Footer == "" {
		cfg.Footer = queue.DefaultFooter
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = queue.DisplayTable
	}
	if broker == nil {
		broker = live.NewBroker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("dashboard").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{runner: runner, broker: broker, logger: logger, cfg: cfg, tmpl: tmpl}, nil
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/requests", s.handleRequests)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("OPTIONS /api/", handleCORS)

	return withRequestID(withLogging(s.logger, corsMiddleware(mux)))
}

// Listen binds addr. If the address is taken by another dashboard it
// returns ErrAlreadyRunning so the caller can point the operator at it.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err == nil {
		return ln, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if NewClient(LocalURL(addr)).Healthy(ctx) {
		return nil, ErrAlreadyRunning
	}
	return nil, fmt.Errorf("address %s in use by unknown process: %w", addr, err)
}

// LocalURL turns a listen address such as ":8501" into a browsable URL.
func LocalURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": healthMagic})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		next.ServeHTTP(w, r)
	})
}

func handleCORS(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// parseOptions reads the view controls from the query string. The checkbox
// form sends "on"; the API accepts any strconv boolean.
func parseOptions(r *http.Request, defaultView queue.DisplayMode) (queue.Options, queue.DisplayMode, error) {
	q := r.URL.Query()

	var opts queue.Options
	if v := q.Get("unplayed"); v != "" {
		if v == "on" {
			opts.OnlyUnplayed = true
		} else {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return queue.Options{}, "", fmt.Errorf("invalid unplayed value %q", v)
			}
			opts.OnlyUnplayed = b
		}
	}
	opts.Submitter = q.Get("submitter")

	sort, err := queue.ParseSortOrder(q.Get("sort"))
	if err != nil {
		return queue.Options{}, "", err
	}
	opts.Sort = sort

	view := defaultView
	if v := q.Get("view"); v != "" {
		view = queue.ParseDisplayMode(v)
	}
	return opts, view, nil
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	opts, _, err := parseOptions(r, s.cfg.DefaultView)
	if err != nil {
		writeError(w, &APIError{Code: CodeInvalidArgument, Message: err.Error()})
		return
	}

	board, err := s.runner.Run(r.Context(), opts)
	s.publish(r, board, err)
	if err != nil {
		writeError(w, toAPIError(err))
		return
	}

	writeJSON(w, http.StatusOK, boardResponse{Status: board.Status(), Board: board})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.broker.Subscribe()
	defer s.broker.Unsubscribe(ch)

	fmt.Fprintf(w, ": keepalive\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: sync\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// publish tells other open pages that this request ran a sync.
func (s *Server) publish(r *http.Request, board *queue.Board, err error) {
	n := live.SyncNotice{Origin: RequestID(r.Context()), At: time.Now(), OK: err == nil}
	if board != nil {
		n.At = board.SyncedAt
		n.Rows = board.Fetched
	}
	s.broker.Publish(n)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
