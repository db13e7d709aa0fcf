package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/agriscan/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scanner over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := web.New(svc, web.Options{
			MaxUploadBytes: cfg.Scan.MaxUploadBytes,
			Logger:         logger,
			AccessLog:      os.Stderr,
			SessionTTL:     cfg.Serve.SessionTTL,
			MaxSessions:    cfg.Serve.MaxSessions,
		})
		return srv.Run(ctx, cfg.Serve.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "Address to listen on")
	serveCmd.Flags().Int64("max-upload-bytes", 10<<20, "Largest upload accepted, in bytes")
}
