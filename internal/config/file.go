package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the parsed form of a TOML configuration file:
//
//	profile = "nas"
//
//	[encode]
//	target_codec = "h265"
//	keep_subtitles = true
//	audio_languages = ["en", "eng", "und"]
//
//	[tiers.animation]
//	crf = 20
//
//	[host]
//	workers = 8
type FileConfig struct {
	Profile string
	Inputs  Inputs
	Tiers   map[string]TierOverride
	Host    HostSection
}

// HostSection holds host-only settings from the [host] table.
type HostSection struct {
	Workers int    `toml:"workers"`
	FFprobe string `toml:"ffprobe"`
	FFmpeg  string `toml:"ffmpeg"`
	LogFile string `toml:"log_file"`
	Color   string `toml:"color"`
	Format  string `toml:"format"`
}

type fileDoc struct {
	Profile string                  `toml:"profile"`
	Encode  map[string]any          `toml:"encode"`
	Tiers   map[string]TierOverride `toml:"tiers"`
	Host    HostSection             `toml:"host"`
}

// LoadFile reads and decodes a TOML config file. Unknown tables or fields
// are rejected.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseFile(data)
}

// ParseFile decodes TOML config data.
func ParseFile(data []byte) (FileConfig, error) {
	var doc fileDoc
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config: %w", err)
	}

	fc := FileConfig{
		Profile: doc.Profile,
		Inputs:  make(Inputs, len(doc.Encode)),
		Tiers:   doc.Tiers,
		Host:    doc.Host,
	}
	for k, v := range doc.Encode {
		s, err := stringifyValue(v)
		if err != nil {
			return FileConfig{}, fmt.Errorf("parse config: encode.%s: %w", k, err)
		}
		fc.Inputs[k] = s
	}
	return fc, nil
}

// ApplyTo copies tier overrides and host settings onto cfg. Zero values in
// the [host] table leave cfg unchanged.
func (f FileConfig) ApplyTo(cfg *Config) {
	if len(f.Tiers) > 0 {
		if cfg.TierOverrides == nil {
			cfg.TierOverrides = make(map[string]TierOverride, len(f.Tiers))
		}
		for name, o := range f.Tiers {
			cfg.TierOverrides[strings.ToLower(name)] = o
		}
	}
	h := f.Host
	if h.Workers > 0 {
		cfg.Workers = h.Workers
	}
	if h.FFprobe != "" {
		cfg.FFprobePath = h.FFprobe
	}
	if h.FFmpeg != "" {
		cfg.FFmpegPath = h.FFmpeg
	}
	if h.LogFile != "" {
		cfg.LogFile = h.LogFile
	}
	if h.Color != "" {
		cfg.ColorMode = ColorMode(strings.ToLower(h.Color))
	}
	if h.Format != "" {
		cfg.OutputFormat = OutputFormat(strings.ToLower(h.Format))
	}
}

// stringifyValue converts a decoded TOML value back to the raw string form
// that Inputs carries.
func stringifyValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, err := stringifyValue(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
