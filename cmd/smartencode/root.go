package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "smartencode",
		Short:         "Plan size-efficient, compatibility-focused transcodes for a media library",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&ctx.configFlag, "config", "c", "", "TOML configuration file")
	pf.StringVarP(&ctx.profileFlag, "profile", "p", "", "Profile to start from (smart, final, nas, titan)")
	pf.StringVar(&ctx.colorFlag, "color", "", "Color output: auto, always, never")
	pf.StringVar(&ctx.logFlag, "log", "", "Append log lines to this file")
	pf.BoolVarP(&ctx.verbose, "verbose", "v", false, "Verbose output")
	pf.StringVar(&ctx.ffprobeFlag, "ffprobe", "", "ffprobe binary")
	pf.StringVar(&ctx.ffmpegFlag, "ffmpeg", "", "ffmpeg binary")

	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newTiersCommand(ctx))
	rootCmd.AddCommand(newProfilesCommand())
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
