package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cafestock/cafestock-backend/internal/inventory/export"
	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/config"
	"github.com/cafestock/cafestock-backend/pkg/i18n"
)

type reportFlags struct {
	input      string
	outDir     string
	noHeaders  bool
	dateFormat string
	filename   string
	supplier   string
	from       string
	to         string
	locale     string
}

func newReportCommand(deps Deps) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report <kind>",
		Short: "Build one report and write it to the output directory",
		Long: `Build one report from a snapshot and write it as a timestamped CSV file.

Run 'stockexport kinds' for the report names. The written path is printed on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, deps, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.input, "input", "i", "", "Snapshot file (.json, .yaml or .yml)")
	f.StringVarP(&flags.outDir, "out", "o", "", "Output directory (default from export.output_dir)")
	f.BoolVar(&flags.noHeaders, "no-headers", false, "Omit the header row")
	f.StringVar(&flags.dateFormat, "date-format", "", "Date format: short | long | iso")
	f.StringVar(&flags.filename, "filename", "", "Filename stem replacing the report default")
	f.StringVar(&flags.supplier, "supplier", "", "Purchase order: only this supplier")
	f.StringVar(&flags.from, "from", "", "Movements: first day (YYYY-MM-DD)")
	f.StringVar(&flags.to, "to", "", "Movements: last day (YYYY-MM-DD)")
	f.StringVar(&flags.locale, "locale", "", "Date locale: en | de")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func exportConfig(cfg *config.Config) config.ExportConfig {
	if cfg == nil {
		return config.ExportConfig{OutputDir: "./exports", Locale: "en", DefaultDateFormat: "short", IncludeHeaders: true}
	}
	return cfg.Export
}

func runReport(cmd *cobra.Command, deps Deps, kindName string, flags reportFlags) error {
	kind, err := export.ParseKind(kindName)
	if err != nil {
		return err
	}

	if flags.locale != "" && !i18n.IsSupported(flags.locale) {
		return fmt.Errorf("unsupported locale %q (want en or de)", flags.locale)
	}

	ec := exportConfig(deps.Config)
	loc, err := ec.Location()
	if err != nil {
		return fmt.Errorf("invalid export timezone: %w", err)
	}

	snap, err := LoadSnapshot(flags.input)
	if err != nil {
		return err
	}

	start, err := service.ParseDay(flags.from, loc)
	if err != nil {
		return err
	}
	end, err := service.ParseDay(flags.to, loc)
	if err != nil {
		return err
	}

	opts := export.Options{
		IncludeHeaders: ec.IncludeHeaders && !flags.noHeaders,
		DateFormat:     export.DateFormat(ec.DefaultDateFormat),
		Filename:       flags.filename,
	}
	if flags.dateFormat != "" {
		opts.DateFormat = export.DateFormat(flags.dateFormat)
	}

	settings := service.ExportSettings{Location: loc, Locale: ec.Locale}
	if deps.Config != nil {
		settings.ExpiryWindow = deps.Config.Alerts.ExpiryWindow
	}
	svc := service.NewExportService(settings, nil, deps.Logger, deps.Now)

	outDir := ec.OutputDir
	if flags.outDir != "" {
		outDir = flags.outDir
	}
	files := export.NewFileDelivery(outDir)

	doc, err := svc.Export(cmd.Context(), service.ExportRequest{
		Request: export.Request{
			Kind:      kind,
			Items:     snap.Items,
			Movements: snap.Movements,
			Alerts:    snap.Alerts,
			Options:   opts,
			Supplier:  flags.supplier,
		},
		StartDate: start,
		EndDate:   end,
		Locale:    flags.locale,
	}, files)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), files.Path(doc))
	return nil
}
