package cmd

import (
	"io"
	"log/slog"
	"os"

	"team-timeline/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	logLevelFlag string
	appConfig    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "team-timeline",
	Short: "Schedule team work from roster uploads and render it as a timeline",
	Long: `team-timeline turns roster files (roles, tasks, developers, on-call and leave
periods) into a day-by-day task schedule.

"serve" runs the upload server and its browser page. "upload" posts roster files
to a running server and renders the returned timeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevelFlag != "" {
			cfg.Logging.Level = logLevelFlag
		}
		level, err := config.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}

		// upload renders to stdout, keep its logs out of the way
		var out io.Writer = os.Stdout
		if cmd.Name() == uploadCmd.Name() {
			out = os.Stderr
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})))

		appConfig = cfg
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.AddCommand(serveCmd, uploadCmd)
}
