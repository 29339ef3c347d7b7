package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/smartencode/internal/check"
	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/display"
)

func newTiersCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Show the content tiers with overrides from the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.buildConfig(cmd, encodeInputs(cmd.Flags()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderTierTable(cfg))
			return nil
		},
	}
	addEncodeFlags(cmd.Flags())
	return cmd
}

func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderProfileTable(config.Profiles()))
			return nil
		},
	}
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report ffprobe, ffmpeg and encoder availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := ctx.buildConfig(cmd, encodeInputs(cmd.Flags()))
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()
			logWarnings(log, warnings)

			display.PrintBanner(cmd.OutOrStdout())
			check.RunCheck(cmd.Context(), cfg, log)
			if strict {
				return check.CheckDeps(cmd.Context(), cfg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when a required tool or encoder is missing")
	addEncodeFlags(cmd.Flags())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smartencode %s (%s)\n", version, commit)
		},
	}
}
