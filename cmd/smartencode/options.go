package main

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/backmassage/smartencode/internal/config"
)

// encodeFlag maps a command-line flag to a raw configuration input. Values
// pass through unparsed so the config layer applies the same recovery rules
// to flags as to profile and file inputs.
type encodeFlag struct {
	name    string
	key     string
	usage   string
	boolean bool
}

var encodeFlags = []encodeFlag{
	{name: "codec", key: config.KeyTargetCodec, usage: "Target video codec: h264, h265, av1"},
	{name: "encoder", key: config.KeyEncoderType, usage: "Encoder backend: cpu, gpu_amd"},
	{name: "quality", key: config.KeyQuality, usage: "Fixed CRF/QP; empty or 0 uses the tier's quality"},
	{name: "speed-preset", key: config.KeySpeedPreset, usage: "Encoder preset: auto, adaptive, or a named preset"},
	{name: "smart-tuning", key: config.KeyEnableSmartTune, usage: "Apply the tier's -tune option", boolean: true},
	{name: "keep-subs", key: config.KeyKeepSubtitles, usage: "Copy subtitle streams", boolean: true},
	{name: "force-1080p", key: config.KeyForce1080p, usage: "Downscale content above 1080p", boolean: true},
	{name: "min-size", key: config.KeySkipSmallFiles, usage: "Skip files under this many MB (0 disables)"},
	{name: "min-duration", key: config.KeyMinDuration, usage: "Skip files shorter than this many seconds"},
	{name: "threads", key: config.KeyThreadCount, usage: "Encoder threads: empty omits, auto derives from size"},
	{name: "tier", key: config.KeyForcePreset, usage: "Force a tier: auto, " + strings.Join(config.TierNames(), ", ")},
	{name: "audio-check", key: config.KeyAudioCheck, usage: "Already-perfect audio check: strict, lenient"},
	{name: "audio-select", key: config.KeyAudioSelection, usage: "Audio stream selection: language, first"},
	{name: "audio-langs", key: config.KeyAudioLanguages, usage: "Accepted audio languages, comma-separated"},
}

// addEncodeFlags registers the encode flags. Boolean flags accept a bare
// --flag as "true".
func addEncodeFlags(fs *pflag.FlagSet) {
	for _, f := range encodeFlags {
		fs.String(f.name, "", f.usage)
		if f.boolean {
			fs.Lookup(f.name).NoOptDefVal = "true"
		}
	}
}

// encodeInputs returns the inputs for the flags set on the command line.
func encodeInputs(fs *pflag.FlagSet) config.Inputs {
	in := config.Inputs{}
	for _, f := range encodeFlags {
		if fl := fs.Lookup(f.name); fl != nil && fl.Changed {
			in[f.key] = fl.Value.String()
		}
	}
	return in
}
