package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tejzpr/vibeque-hq/internal/browser"
	"github.com/tejzpr/vibeque-hq/internal/live"
	"github.com/tejzpr/vibeque-hq/internal/queue"
	"github.com/tejzpr/vibeque-hq/internal/webserver"
)

const shutdownTimeout = 5 * time.Second

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Serves the dashboard on --addr. Every page load or control change reads
the sheet again; nothing refreshes in the background.

If another dashboard already answers on the address, serve exits and (with
--open) points the browser at it.`,
	RunE: runServe,
}

func registerServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8501)")
	cmd.Flags().BoolVar(&serveOpen, "open", false, "Open the dashboard in the default browser")
}

func init() {
	registerServeFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	open := serveOpen || cfg.Server.OpenBrowser
	url := webserver.LocalURL(addr)

	ln, err := webserver.Listen(addr)
	if errors.Is(err, webserver.ErrAlreadyRunning) {
		logger.Info("dashboard already running", zap.String("url", url))
		if open {
			return browser.Open(url)
		}
		return nil
	}
	if err != nil {
		return err
	}

	pipeline, release, err := newPipeline(ctx)
	if err != nil {
		ln.Close()
		return err
	}
	defer release()

	srv, err := webserver.New(pipeline, live.NewBroker(), logger, webserver.Config{
		Title:       cfg.Display.Title,
		Footer:      cfg.Display.Footer,
		DefaultView: queue.ParseDisplayMode(cfg.Display.DefaultView),
	})
	if err != nil {
		ln.Close()
		return err
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("dashboard listening", zap.String("url", url))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down dashboard")
		return httpServer.Shutdown(shutdownCtx)
	})

	if open {
		if err := browser.Open(url); err != nil {
			logger.Warn("failed to open browser", zap.String("url", url), zap.Error(err))
		}
	}
	return g.Wait()
}
