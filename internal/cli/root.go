// Package cli contains the stockexport commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cafestock/cafestock-backend/pkg/config"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// Version is the current version of stockexport
var Version = "0.1.0"

// Deps are what the commands run against
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	// Now is the export clock; nil uses time.Now
	Now func() time.Time
}

// NewRootCommand builds the command tree
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	root := &cobra.Command{
		Use:   "stockexport",
		Short: "Export inventory reports as CSV",
		Long: `stockexport turns an inventory snapshot into CSV reports.

A snapshot is a JSON or YAML file with items, movements and alerts, as
held by the point-of-sale front end. Statuses are recomputed on load.

Examples:
  stockexport kinds
  stockexport report valuation --input snapshot.yaml
  stockexport report purchase_order --input snapshot.json --supplier "Acme Coffee"
  stockexport report movements --input snapshot.json --from 2024-03-01 --to 2024-03-31`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReportCommand(deps))
	root.AddCommand(newKindsCommand())

	return root
}

// Execute loads configuration and runs the command line. It is called by main.main().
func Execute() {
	cfg, err := config.LoadWithValidation("stockexport")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter("stockexport", zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := NewRootCommand(Deps{Config: cfg, Logger: log}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
