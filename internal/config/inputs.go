package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Inputs are raw string options as a host supplies them (UI fields, CLI
// flags, config-file values). Keys are the Key* constants.
type Inputs map[string]string

// Input keys.
const (
	KeyTargetCodec     = "target_codec"
	KeyEncoderType     = "encoder_type"
	KeyQuality         = "quality"
	KeySpeedPreset     = "speed_preset"
	KeyEnableSmartTune = "enable_smart_tuning"
	KeyKeepSubtitles   = "keep_subtitles"
	KeyForce1080p      = "force_1080p"
	KeySkipSmallFiles  = "skip_small_files_mb"
	KeyMinDuration     = "min_duration_seconds"
	KeyThreadCount     = "thread_count"
	KeyForcePreset     = "force_preset"
	KeyAudioCheck      = "audio_check"
	KeyAudioSelection  = "audio_selection"
	KeyAudioLanguages  = "audio_languages"
)

// Legacy aliases accepted for the quality key.
var qualityAliases = []string{"quality_level", "custom_crf", "base_crf"}

// Warning records a malformed value that was replaced by a default instead
// of failing the run.
type Warning struct {
	Key      string
	Value    string
	Fallback string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: invalid value %q, using %s", w.Key, w.Value, w.Fallback)
}

// Build produces a fully populated, validated Config: defaults, then the
// named profile, then each input layer in order (later layers win).
// Malformed numeric and boolean values are recovered with documented
// defaults and reported as warnings; unknown keys and invalid enum values
// are errors.
func Build(profile string, layers ...Inputs) (Config, []Warning, error) {
	p, err := LookupProfile(profile)
	if err != nil {
		return Config{}, nil, err
	}
	cfg := DefaultConfig()
	cfg.Profile = p.Name

	var warnings []Warning
	for _, layer := range append([]Inputs{p.Inputs}, layers...) {
		w, err := cfg.Apply(layer)
		if err != nil {
			return Config{}, warnings, err
		}
		warnings = append(warnings, w...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, warnings, err
	}
	return cfg, warnings, nil
}

// Apply overlays raw inputs onto c. Keys are applied in sorted order so
// warnings are deterministic.
func (c *Config) Apply(in Inputs) ([]Warning, error) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var warnings []Warning
	for _, key := range keys {
		w, err := c.applyOne(key, in[key])
		if err != nil {
			return warnings, err
		}
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings, nil
}

func (c *Config) applyOne(key, raw string) (*Warning, error) {
	val := strings.TrimSpace(raw)
	lower := strings.ToLower(val)

	if slices.Contains(qualityAliases, key) {
		key = KeyQuality
	}

	switch key {
	case KeyTargetCodec:
		c.TargetCodec = Codec(lower)
	case KeyEncoderType:
		c.EncoderType = EncoderType(lower)
	case KeyAudioCheck:
		c.AudioCheck = AudioCheck(lower)
	case KeyAudioSelection:
		c.AudioSelection = AudioSelection(lower)
	case KeySpeedPreset:
		if lower == "" {
			lower = PresetAuto
		}
		c.SpeedPreset = lower
	case KeyForcePreset:
		if lower == "" {
			lower = ForceTierAuto
		}
		c.ForceTier = lower

	case KeyQuality:
		if val == "" || val == "0" {
			c.Quality = 0
			return nil, nil
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > 63 {
			c.Quality = 0
			return &Warning{Key: key, Value: raw, Fallback: "the tier default"}, nil
		}
		c.Quality = n

	case KeySkipSmallFiles:
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			c.MinFileSizeMB = DefaultMinFileSizeMB
			return &Warning{Key: key, Value: raw, Fallback: strconv.Itoa(DefaultMinFileSizeMB)}, nil
		}
		c.MinFileSizeMB = n

	case KeyMinDuration:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			c.MinDurationSeconds = DefaultMinDurationSeconds
			return &Warning{Key: key, Value: raw, Fallback: strconv.Itoa(DefaultMinDurationSeconds)}, nil
		}
		c.MinDurationSeconds = f

	case KeyThreadCount:
		switch lower {
		case "":
			c.Threads = ThreadsOmit
		case "auto":
			c.Threads = ThreadsAuto
		default:
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				c.Threads = ThreadsAuto
				return &Warning{Key: key, Value: raw, Fallback: "auto"}, nil
			}
			c.Threads = n
		}

	case KeyEnableSmartTune:
		return parseBoolInto(&c.SmartTuning, key, raw)
	case KeyKeepSubtitles:
		return parseBoolInto(&c.KeepSubtitles, key, raw)
	case KeyForce1080p:
		return parseBoolInto(&c.Force1080p, key, raw)

	case KeyAudioLanguages:
		var langs []string
		for _, l := range strings.Split(val, ",") {
			if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
				langs = append(langs, l)
			}
		}
		if len(langs) == 0 {
			c.AudioLanguages = slices.Clone(DefaultAudioLanguages)
			return &Warning{Key: key, Value: raw, Fallback: strings.Join(DefaultAudioLanguages, ",")}, nil
		}
		c.AudioLanguages = langs

	default:
		return nil, fmt.Errorf("unknown option %q", key)
	}
	return nil, nil
}

// parseBoolInto sets *dst from raw. Malformed values keep the current value.
func parseBoolInto(dst *bool, key, raw string) (*Warning, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	default:
		return &Warning{Key: key, Value: raw, Fallback: strconv.FormatBool(*dst)}, nil
	}
	return nil, nil
}
