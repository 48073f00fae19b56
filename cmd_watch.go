package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tejzpr/vibeque-hq/internal/console"
)

var watchFlags viewFlags

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive terminal dashboard",
	Long: `Shows the queue in the terminal. Toggle filters with the keys listed at
the bottom; every change reads the sheet again.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, mode, err := watchFlags.options()
	if err != nil {
		return err
	}
	runner, release, err := newRunner(ctx, watchFlags.remote, false)
	if err != nil {
		return err
	}
	defer release()

	m := console.NewModel(runner, console.NewRenderer(cfg.Display.Title, 0), opts, mode)
	return console.RunTUI(ctx, m)
}
