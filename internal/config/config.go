// Package config holds runtime configuration: defaults, variant profiles,
// raw host inputs, TOML config files, and validation. A Config is fully
// populated and validated once at the boundary, before any file is planned.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// --- Enum types for validated string fields ---

// Codec is the target video codec family.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
	CodecAV1  Codec = "av1"
)

// EncoderType selects the encoding backend.
type EncoderType string

const (
	EncoderCPU    EncoderType = "cpu"     // Software encoders (libx264, libx265, libsvtav1).
	EncoderGPUAMD EncoderType = "gpu_amd" // AMD AMF hardware encoders.
)

// AudioCheck selects how strictly the "already perfect" audio predicate is
// evaluated.
type AudioCheck string

const (
	AudioCheckStrict  AudioCheck = "strict"  // ac3 with exactly 6 ch and aac with exactly 2 ch.
	AudioCheckLenient AudioCheck = "lenient" // Any ac3 track and any aac track.
)

// AudioSelection selects which source audio streams feed the audio plan.
type AudioSelection string

const (
	AudioSelectLanguage AudioSelection = "language" // Accepted-language filter, first stream as fallback.
	AudioSelectFirst    AudioSelection = "first"    // First source stream only.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// OutputFormat selects how the CLI reports decisions.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Speed preset sentinels. Any other value is a named encoder preset.
const (
	PresetAuto     = "auto"     // Use the tier's preset.
	PresetAdaptive = "adaptive" // Derive the preset from file size.
)

// Thread count sentinels.
const (
	ThreadsOmit = -1 // Emit no -threads option.
	ThreadsAuto = 0  // Derive the thread count from file size.
)

// ForceTierAuto disables the tier override.
const ForceTierAuto = "auto"

// tierNames lists the tier identifiers accepted by force_preset and [tiers.*]
// tables. Kept in step with planner.Tier.
var tierNames = []string{"general", "animation", "classic", "4k_elite"}

// namedPresets are the x264/x265 preset names accepted for speed_preset.
var namedPresets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// TierOverride replaces individual fields of a tier bundle. Zero values leave
// the bundle field unchanged; Tune "none" removes the tier's tune.
type TierOverride struct {
	CRF     int    `toml:"crf"`
	Preset  string `toml:"preset"`
	Tune    string `toml:"tune"`
	MaxRate string `toml:"maxrate"`
	BufSize string `toml:"bufsize"`
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [Build] with a profile and raw inputs, and then passed (by
// pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	Paths []string

	// Profile the encode options were seeded from.
	Profile ProfileName

	// Encode options.
	TargetCodec        Codec
	EncoderType        EncoderType
	Quality            int    // 0 = tier default CRF/QP.
	SpeedPreset        string // PresetAuto, PresetAdaptive, or a named preset.
	SmartTuning        bool
	KeepSubtitles      bool
	Force1080p         bool
	MinFileSizeMB      int     // 0 disables the size check.
	MinDurationSeconds float64 // Files shorter than this are skipped.
	Threads            int     // ThreadsOmit, ThreadsAuto, or an explicit count.
	ForceTier          string  // ForceTierAuto or a tier name.
	AudioCheck         AudioCheck
	AudioSelection     AudioSelection
	AudioLanguages     []string
	TargetContainer    string // Fixed: "mp4".

	// Per-tier bundle overrides, keyed by tier name.
	TierOverrides map[string]TierOverride

	// Host settings.
	Workers      int    // Concurrent probes. Default: 4.
	FFprobePath  string // Default: "ffprobe".
	FFmpegPath   string // Default: "ffmpeg".
	OutputFormat OutputFormat
	Verbose      bool
	ColorMode    ColorMode
	LogFile      string
	ConfigFile   string
}

// Default values for the encode options (the "smart" profile).
const (
	DefaultMinFileSizeMB      = 100
	DefaultMinDurationSeconds = 60
	DefaultTargetContainer    = "mp4"
	DefaultWorkers            = 4
)

// DefaultAudioLanguages is the accepted-language set for audio selection.
var DefaultAudioLanguages = []string{"da", "dan", "dansk", "en", "eng", "english", "und"}

// DefaultConfig returns a Config with the "smart" profile defaults. Used as
// the base before [Build] applies a profile and inputs.
func DefaultConfig() Config {
	return Config{
		Profile:            ProfileSmart,
		TargetCodec:        CodecH264,
		EncoderType:        EncoderCPU,
		Quality:            0,
		SpeedPreset:        PresetAuto,
		SmartTuning:        true,
		KeepSubtitles:      false,
		Force1080p:         true,
		MinFileSizeMB:      DefaultMinFileSizeMB,
		MinDurationSeconds: DefaultMinDurationSeconds,
		Threads:            ThreadsOmit,
		ForceTier:          ForceTierAuto,
		AudioCheck:         AudioCheckStrict,
		AudioSelection:     AudioSelectLanguage,
		AudioLanguages:     slices.Clone(DefaultAudioLanguages),
		TargetContainer:    DefaultTargetContainer,
		Workers:            DefaultWorkers,
		FFprobePath:        "ffprobe",
		FFmpegPath:         "ffmpeg",
		OutputFormat:       OutputText,
		ColorMode:          ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that enum fields hold valid values and that host
// settings are usable.
func (c *Config) Validate() error {
	switch c.TargetCodec {
	case CodecH264, CodecH265, CodecAV1:
	default:
		return fmt.Errorf("invalid target codec %q (use 'h264', 'h265' or 'av1')", c.TargetCodec)
	}

	switch c.EncoderType {
	case EncoderCPU, EncoderGPUAMD:
	default:
		return fmt.Errorf("invalid encoder type %q (use 'cpu' or 'gpu_amd')", c.EncoderType)
	}

	switch c.AudioCheck {
	case AudioCheckStrict, AudioCheckLenient:
	default:
		return fmt.Errorf("invalid audio check %q (use 'strict' or 'lenient')", c.AudioCheck)
	}

	switch c.AudioSelection {
	case AudioSelectLanguage, AudioSelectFirst:
	default:
		return fmt.Errorf("invalid audio selection %q (use 'language' or 'first')", c.AudioSelection)
	}

	switch c.OutputFormat {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q (use 'text', 'json' or 'yaml')", c.OutputFormat)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if !ValidSpeedPreset(c.SpeedPreset) {
		return fmt.Errorf("invalid speed preset %q", c.SpeedPreset)
	}
	if c.ForceTier != ForceTierAuto && !ValidTier(c.ForceTier) {
		return fmt.Errorf("invalid forced preset %q (use 'auto' or one of %s)", c.ForceTier, strings.Join(tierNames, ", "))
	}
	for name := range c.TierOverrides {
		if !ValidTier(name) {
			return fmt.Errorf("unknown tier %q in tier overrides", name)
		}
	}
	if strings.TrimSpace(c.TargetContainer) == "" {
		return errors.New("target container must not be empty")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	return nil
}

// ValidTier reports whether name is a known tier identifier.
func ValidTier(name string) bool {
	return slices.Contains(tierNames, name)
}

// TierNames returns the known tier identifiers in priority order.
func TierNames() []string {
	return slices.Clone(tierNames)
}

// ValidSpeedPreset reports whether p is a sentinel or a named preset.
func ValidSpeedPreset(p string) bool {
	return p == PresetAuto || p == PresetAdaptive || slices.Contains(namedPresets, p)
}
