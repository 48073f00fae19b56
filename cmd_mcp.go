package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/tejzpr/vibeque-hq/internal/browser"
	"github.com/tejzpr/vibeque-hq/internal/handler"
	"github.com/tejzpr/vibeque-hq/internal/webserver"
)

var mcpRemote string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the request queue as MCP tools over stdio",
	Long: `Starts an MCP stdio server with the list_requests and open_dashboard
tools. When a dashboard already runs on the configured address its pipeline
is used; otherwise the sheet is read directly.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpRemote, "remote", "", "Base URL of a running dashboard to read from")
}

func runMCP(cmd *cobra.Command, args []string) error {
	runner, release, err := newRunner(cmd.Context(), mcpRemote, true)
	if err != nil {
		return err
	}
	defer release()

	dashboardURL := mcpRemote
	if dashboardURL == "" {
		dashboardURL = webserver.LocalURL(cfg.Server.Addr)
	}
	h := handler.NewRequests(runner, logger, dashboardURL, browser.Open)

	s := server.NewMCPServer(
		"vibeque-hq",
		version,
		server.WithToolCapabilities(false),
	)
	s.AddTool(handler.ListRequestsTool(), h.ListRequests)
	s.AddTool(handler.OpenDashboardTool(), h.OpenDashboard)

	return server.ServeStdio(s)
}
