package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/smartencode/internal/check"
	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/logging"
	"github.com/backmassage/smartencode/internal/pipeline"
)

// commandContext carries the persistent flag values shared by subcommands.
type commandContext struct {
	configFlag  string
	profileFlag string
	colorFlag   string
	logFlag     string
	ffprobeFlag string
	ffmpegFlag  string
	verbose     bool

	// newProber is replaced in tests.
	newProber func(cfg *config.Config) (pipeline.Prober, error)
}

func newCommandContext() *commandContext {
	return &commandContext{newProber: ffprobeProber}
}

func ffprobeProber(cfg *config.Config) (pipeline.Prober, error) {
	if err := check.CheckProbe(cfg); err != nil {
		return nil, err
	}
	return pipeline.FFprobe{Binary: cfg.FFprobePath}, nil
}

// buildConfig layers the configuration: profile, then the TOML file, then
// command-line inputs and host flags. The profile comes from --profile, else
// from the file, else the default.
func (c *commandContext) buildConfig(cmd *cobra.Command, cli config.Inputs) (*config.Config, []config.Warning, error) {
	var file config.FileConfig
	if path := strings.TrimSpace(c.configFlag); path != "" {
		fc, err := config.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		file = fc
	}

	profile := file.Profile
	if cmd.Flags().Changed("profile") {
		profile = c.profileFlag
	}

	cfg, warnings, err := config.Build(profile, file.Inputs, cli)
	if err != nil {
		return nil, warnings, err
	}
	file.ApplyTo(&cfg)
	cfg.ConfigFile = strings.TrimSpace(c.configFlag)

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.ColorMode = config.ColorMode(strings.ToLower(c.colorFlag))
	}
	if flags.Changed("log") {
		cfg.LogFile = c.logFlag
	}
	if flags.Changed("ffprobe") {
		cfg.FFprobePath = c.ffprobeFlag
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath = c.ffmpegFlag
	}
	cfg.Verbose = c.verbose

	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}
	return &cfg, warnings, nil
}

// newLogger opens the logger for cfg. When stdout carries a JSON or YAML
// report, log lines move to stderr.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("open logger: %w", err)
	}
	if cfg.OutputFormat != config.OutputText {
		log.SetOutput(os.Stderr)
	}
	return log, nil
}

func logWarnings(log *logging.Logger, warnings []config.Warning) {
	for _, w := range warnings {
		log.Warn("%s", w)
	}
}
