// Package handler implements the MCP tools that expose the request queue.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

const syncFailed = "sync failed: the request sheet could not be read"

// Requests serves the queue tools over one Runner.
type Requests struct {
	runner       queue.Runner
	logger       *zap.Logger
	dashboardURL string
	openBrowser  func(string) error

	browserOnce sync.Once
}

func NewRequests(runner queue.Runner, logger *zap.Logger, dashboardURL string, openBrowser func(string) error) *Requests {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requests{runner: runner, logger: logger, dashboardURL: dashboardURL, openBrowser: openBrowser}
}

func ListRequestsTool() mcp.Tool {
	return mcp.NewTool("list_requests",
		mcp.WithDescription("List the current song and line dance requests from the event sheet, each labeled Pre-Request or On-Demand."),
		mcp.WithBoolean("only_unplayed",
			mcp.Description("Hide requests whose status is Played"),
		),
		mcp.WithString("submitter",
			mcp.Description("Only show requests from this submitter. \"All\" or empty shows everyone."),
		),
		mcp.WithString("sort",
			mcp.Description("Order by submission time"),
			mcp.Enum(string(queue.SortNone), string(queue.SortNewest), string(queue.SortOldest)),
		),
	)
}

func OpenDashboardTool() mcp.Tool {
	return mcp.NewTool("open_dashboard",
		mcp.WithDescription("Open the DJ dashboard in the default browser."),
	)
}

// listResult is the JSON body of a list_requests result.
type listResult struct {
	Status     string         `json:"status"`
	Message    string         `json:"message,omitempty"`
	LastSync   string         `json:"last_sync"`
	Fetched    int            `json:"fetched"`
	Submitters []string       `json:"submitters"`
	Options    queue.Options  `json:"options"`
	Requests   []queue.Record `json:"requests"`
}

func (h *Requests) ListRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sort, err := queue.ParseSortOrder(request.GetString("sort", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := queue.Options{
		OnlyUnplayed: request.GetBool("only_unplayed", false),
		Submitter:    request.GetString("submitter", queue.AllSubmitters),
		Sort:         sort,
	}

	board, err := h.runner.Run(ctx, opts)
	if err != nil {
		var schemaErr *queue.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			return mcp.NewToolResultError(schemaErr.Error()), nil
		case errors.Is(err, queue.ErrSourceUnavailable):
			return mcp.NewToolResultError(syncFailed), nil
		case ctx.Err() != nil:
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	res := listResult{
		Status:     board.Status(),
		LastSync:   queue.SyncCaption(board.SyncedAt),
		Fetched:    board.Fetched,
		Submitters: board.Submitters,
		Options:    board.Options,
		Requests:   board.Records,
	}
	if board.NoMatches {
		res.Message = queue.NoMatchesMessage
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode requests: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

// OpenDashboard opens the browser once per process.
func (h *Requests) OpenDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.dashboardURL == "" || h.openBrowser == nil {
		return mcp.NewToolResultError("no dashboard configured"), nil
	}

	opened := false
	h.browserOnce.Do(func() {
		opened = true
		if err := h.openBrowser(h.dashboardURL); err != nil {
			h.logger.Warn("failed to open browser", zap.String("url", h.dashboardURL), zap.Error(err))
		}
	})
	if !opened {
		return mcp.NewToolResultText("dashboard already opened at " + h.dashboardURL), nil
	}
	return mcp.NewToolResultText("opened " + h.dashboardURL), nil
}
