package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/agriscan/internal/app"
	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
)

// runApp builds the scan service and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Service:        svc,
		AnalyzeDelay:   cfg.AnalyzeDelay,
		MaxUploadBytes: cfg.Scan.MaxUploadBytes,
		Logger:         logger,
	})
}

// newService loads the catalog and wires the engine with a random scorer.
func newService() (*scan.Service, error) {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("scorer seeded", "seed", seed, "labels", cat.Len())

	engine := diagnosis.NewEngine(cat, diagnosis.NewRandomScorer(seed), diagnosis.WithLogger(logger))
	return scan.NewService(engine, logger), nil
}
