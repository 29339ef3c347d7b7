package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/display"
	"github.com/backmassage/smartencode/internal/pipeline"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var (
		format  string
		workers int
		table   bool
	)

	cmd := &cobra.Command{
		Use:   "plan [paths...]",
		Short: "Probe media files and print the transcode decision for each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := ctx.buildConfig(cmd, encodeInputs(cmd.Flags()))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.OutputFormat = config.OutputFormat(format)
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			for _, p := range args {
				cfg.Paths = append(cfg.Paths, config.NormalizeDirArg(p))
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()
			logWarnings(log, warnings)
			if path := log.FilePath(); path != "" {
				log.Debug(cfg.Verbose, "Logging to %s", path)
			}

			prober, err := ctx.newProber(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.OutputFormat == config.OutputText {
				display.PrintBanner(out)
			}

			results, stats, runErr := pipeline.Run(cmd.Context(), cfg, log, prober)
			if runErr != nil && results == nil {
				return runErr
			}

			if cfg.OutputFormat == config.OutputText {
				pipeline.LogResults(cfg, log, results)
				if table {
					fmt.Fprintln(out, display.RenderDecisionTable(decisionRows(results)))
				}
				pipeline.LogSummary(log, stats)
			} else if err := pipeline.WriteReport(out, cfg.OutputFormat, pipeline.BuildReport(cfg, results, stats)); err != nil {
				return err
			}

			if runErr != nil {
				return runErr
			}
			if stats.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", stats.Failed, stats.Total)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", string(config.OutputText), "Output format: text, json, yaml")
	flags.IntVarP(&workers, "workers", "w", config.DefaultWorkers, "Concurrent probes")
	flags.BoolVar(&table, "table", false, "Print a decision table after the per-file log (text format)")
	addEncodeFlags(flags)

	return cmd
}

func decisionRows(results []pipeline.Result) []display.DecisionRow {
	rows := make([]display.DecisionRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, display.DecisionRow{
			Path:     r.Path,
			Size:     r.Size,
			Duration: r.Info.Duration,
			Decision: r.Decision,
			Err:      r.Err,
		})
	}
	return rows
}
