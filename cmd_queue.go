package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tejzpr/vibeque-hq/internal/console"
	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// viewFlags are the view controls shared by queue and watch.
type viewFlags struct {
	unplayed  bool
	submitter string
	sort      string
	view      string
	remote    string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.unplayed, "unplayed", "u", false, "Only show requests not marked Played")
	cmd.Flags().StringVar(&f.submitter, "submitter", queue.AllSubmitters, "Only show requests from this submitter")
	cmd.Flags().StringVar(&f.sort, "sort", string(queue.SortNone), "Order by submission time: none, newest, oldest")
	cmd.Flags().StringVar(&f.view, "view", "", "table or cards (default from config)")
	cmd.Flags().StringVar(&f.remote, "remote", "", "Base URL of a running dashboard to read from")
}

func (f *viewFlags) options() (queue.Options, queue.DisplayMode, error) {
	sort, err := queue.ParseSortOrder(f.sort)
	if err != nil {
		return queue.Options{}, "", err
	}
	view := f.view
	if view == "" {
		view = cfg.Display.DefaultView
	}
	return queue.Options{
		OnlyUnplayed: f.unplayed,
		Submitter:    f.submitter,
		Sort:         sort,
	}, queue.ParseDisplayMode(view), nil
}

var queueFlags viewFlags

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Print the request queue once",
	Example: `  vibeque-hq queue --unplayed --sort newest
  vibeque-hq queue --submitter Alex --view cards
  vibeque-hq queue --remote http://dj-laptop:8501`,
	Args: cobra.NoArgs,
	RunE: runQueue,
}

func init() {
	queueFlags.register(queueCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, mode, err := queueFlags.options()
	if err != nil {
		return err
	}
	runner, release, err := newRunner(ctx, queueFlags.remote, false)
	if err != nil {
		return err
	}
	defer release()

	board, runErr := runner.Run(ctx, opts)
	r := console.NewRenderer(cfg.Display.Title, 0)
	if err := r.Write(cmd.OutOrStdout(), board, runErr, mode); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("queue: %w", runErr)
	}
	return nil
}
