package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/agriscan/internal/config"
	"github.com/abhisek/agriscan/internal/logging"
)

var (
	v      = config.New()
	cfg    *config.Config
	logger = logging.Discard()

	logCloser io.Closer
)

// flagKeys maps config keys to the flags that override them. Flags are
// looked up on the running command, so local flags bind too.
var flagKeys = map[string]string{
	"catalog":               "catalog",
	"seed":                  "seed",
	"analyze_delay":         "analyze-delay",
	"log.level":             "log-level",
	"log.format":            "log-format",
	"log.file":              "log-file",
	"serve.addr":            "addr",
	"scan.max_upload_bytes": "max-upload-bytes",
}

var rootCmd = &cobra.Command{
	Use:   "agriscan",
	Short: "Plant disease scanner for tomato leaves",
	Long: `AgriScan — scan a leaf photo, get a ranked disease diagnosis,
treatment advice and a confidence chart.

Run without a subcommand to open the terminal scanner.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./agriscan.yaml if present)")
	pf.String("catalog", "", "Label catalog YAML file (default built-in tomato catalog)")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("log-file", "", "Write logs to this file")
	pf.Uint64("seed", 0, "Seed for the random scorer (0 picks one from the clock)")

	rootCmd.Flags().Duration("analyze-delay", 0, "How long the analyzing spinner runs (default 2s)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("config")

	c, err := config.Load(v, path)
	if err != nil {
		return err
	}
	cfg = c

	l, closer, err := newLogger(cmd, c.Log)
	if err != nil {
		return err
	}
	logger, logCloser = l, closer
	logger.Debug("config loaded", "command", cmd.Name(), "catalog", c.Catalog)
	return nil
}

// newLogger writes to the configured log file. Without one, the terminal
// app discards logs (stdout is the UI) and other commands log to stderr.
func newLogger(cmd *cobra.Command, lc config.LogConfig) (*slog.Logger, io.Closer, error) {
	if lc.File != "" {
		l, c, err := logging.OpenFile(lc.File, lc.Level, lc.Format)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return l, c, nil
	}
	if cmd == rootCmd {
		return logging.Discard(), nil, nil
	}
	l, err := logging.New(os.Stderr, lc.Level, lc.Format)
	return l, nil, err
}
