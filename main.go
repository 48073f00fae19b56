package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tejzpr/vibeque-hq/internal/config"
	"github.com/tejzpr/vibeque-hq/internal/logging"
)

var version = "dev"

var (
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vibeque-hq",
	Short: "VibeQue DJ HQ - live dashboard for song and line dance requests",
	Long: `VibeQue DJ HQ reads song and line dance requests from a Google Sheet,
labels each one Pre-Request or On-Demand against the event cutoff, and shows
the queue to the DJ with filters for unplayed requests, submitter and order.

Run without a subcommand to start the web dashboard.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.JSON, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	registerServeFlags(rootCmd)
	rootCmd.AddCommand(serveCmd, queueCmd, watchCmd, mcpCmd, loadCmd, worksheetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
