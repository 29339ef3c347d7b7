package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"root unchanged", "/", "/"},
		{"trailing slash stripped", "/media/in/", "/media/in"},
		{"multiple trailing slashes", "/media/in///", "/media/in"},
		{"no trailing slash", "/media/in", "/media/in"},
		{"relative path", "media/", "media"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProfileSmart, cfg.Profile)
	assert.Equal(t, CodecH264, cfg.TargetCodec)
	assert.Equal(t, EncoderCPU, cfg.EncoderType)
	assert.Equal(t, PresetAuto, cfg.SpeedPreset)
	assert.Equal(t, AudioCheckStrict, cfg.AudioCheck)
	assert.Equal(t, AudioSelectLanguage, cfg.AudioSelection)
	assert.Equal(t, ThreadsOmit, cfg.Threads)
	assert.Equal(t, ForceTierAuto, cfg.ForceTier)
	assert.Equal(t, "mp4", cfg.TargetContainer)
	assert.Equal(t, 100, cfg.MinFileSizeMB)
	assert.InDelta(t, 60.0, cfg.MinDurationSeconds, 0)
	assert.True(t, cfg.SmartTuning)
	assert.True(t, cfg.Force1080p)
	assert.False(t, cfg.KeepSubtitles)
	assert.Equal(t, DefaultAudioLanguages, cfg.AudioLanguages)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Enums(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"h265 codec", func(c *Config) { c.TargetCodec = CodecH265 }, false},
		{"av1 codec", func(c *Config) { c.TargetCodec = CodecAV1 }, false},
		{"vp9 codec", func(c *Config) { c.TargetCodec = "vp9" }, true},
		{"amd encoder", func(c *Config) { c.EncoderType = EncoderGPUAMD }, false},
		{"nvidia encoder", func(c *Config) { c.EncoderType = "gpu_nvidia" }, true},
		{"lenient audio", func(c *Config) { c.AudioCheck = AudioCheckLenient }, false},
		{"bogus audio check", func(c *Config) { c.AudioCheck = "loose" }, true},
		{"first audio selection", func(c *Config) { c.AudioSelection = AudioSelectFirst }, false},
		{"bogus audio selection", func(c *Config) { c.AudioSelection = "all" }, true},
		{"yaml output", func(c *Config) { c.OutputFormat = OutputYAML }, false},
		{"xml output", func(c *Config) { c.OutputFormat = "xml" }, true},
		{"never color", func(c *Config) { c.ColorMode = ColorNever }, false},
		{"empty color", func(c *Config) { c.ColorMode = "" }, true},
		{"adaptive preset", func(c *Config) { c.SpeedPreset = PresetAdaptive }, false},
		{"named preset", func(c *Config) { c.SpeedPreset = "veryslow" }, false},
		{"unknown preset", func(c *Config) { c.SpeedPreset = "warp" }, true},
		{"forced tier", func(c *Config) { c.ForceTier = "classic" }, false},
		{"unknown forced tier", func(c *Config) { c.ForceTier = "documentary" }, true},
		{"tier override", func(c *Config) { c.TierOverrides = map[string]TierOverride{"animation": {CRF: 19}} }, false},
		{"unknown tier override", func(c *Config) { c.TierOverrides = map[string]TierOverride{"sports": {CRF: 19}} }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"empty container", func(c *Config) { c.TargetContainer = " " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLookupProfile(t *testing.T) {
	p, err := LookupProfile("")
	require.NoError(t, err)
	assert.Equal(t, ProfileSmart, p.Name)

	p, err = LookupProfile(" NAS ")
	require.NoError(t, err)
	assert.Equal(t, ProfileNAS, p.Name)

	_, err = LookupProfile("turbo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smart, final, nas, titan")
}

func TestProfiles_AllBuildCleanly(t *testing.T) {
	for _, p := range Profiles() {
		t.Run(string(p.Name), func(t *testing.T) {
			cfg, warnings, err := Build(string(p.Name))
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, p.Name, cfg.Profile)
		})
	}
}

func TestBuild_ProfileValues(t *testing.T) {
	final, _, err := Build("final")
	require.NoError(t, err)
	assert.Equal(t, AudioCheckStrict, final.AudioCheck)
	assert.Equal(t, AudioSelectFirst, final.AudioSelection)
	assert.Equal(t, 0, final.MinFileSizeMB)
	assert.Equal(t, ThreadsOmit, final.Threads)

	nas, _, err := Build("nas")
	require.NoError(t, err)
	assert.Equal(t, AudioCheckLenient, nas.AudioCheck)
	assert.Equal(t, PresetAdaptive, nas.SpeedPreset)
	assert.Equal(t, ThreadsAuto, nas.Threads)
	assert.Equal(t, 100, nas.MinFileSizeMB)

	titan, _, err := Build("titan")
	require.NoError(t, err)
	assert.Equal(t, CodecH265, titan.TargetCodec)
	assert.True(t, titan.KeepSubtitles)
	assert.False(t, titan.Force1080p)
	assert.Equal(t, 0, titan.MinFileSizeMB)
}

func TestBuild_LayersOverrideProfile(t *testing.T) {
	file := Inputs{KeyTargetCodec: "av1", KeyKeepSubtitles: "true"}
	cli := Inputs{KeyTargetCodec: "H265"}

	cfg, warnings, err := Build("titan", file, cli)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, CodecH265, cfg.TargetCodec)
	assert.True(t, cfg.KeepSubtitles)
	assert.Equal(t, ProfileTitan, cfg.Profile)
}

func TestBuild_MalformedValuesRecoverWithWarnings(t *testing.T) {
	tests := []struct {
		name   string
		in     Inputs
		check  func(t *testing.T, cfg Config)
		wanted string
	}{
		{
			name:   "quality not a number",
			in:     Inputs{KeyQuality: "high"},
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, 0, cfg.Quality) },
			wanted: KeyQuality,
		},
		{
			name:   "quality out of range",
			in:     Inputs{KeyQuality: "80"},
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, 0, cfg.Quality) },
			wanted: KeyQuality,
		},
		{
			name:   "size threshold garbage",
			in:     Inputs{KeySkipSmallFiles: "lots"},
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, 100, cfg.MinFileSizeMB) },
			wanted: KeySkipSmallFiles,
		},
		{
			name:   "negative duration",
			in:     Inputs{KeyMinDuration: "-5"},
			check:  func(t *testing.T, cfg Config) { assert.InDelta(t, 60.0, cfg.MinDurationSeconds, 0) },
			wanted: KeyMinDuration,
		},
		{
			name:   "thread count garbage",
			in:     Inputs{KeyThreadCount: "many"},
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, ThreadsAuto, cfg.Threads) },
			wanted: KeyThreadCount,
		},
		{
			name:   "bool garbage keeps current value",
			in:     Inputs{KeyForce1080p: "maybe"},
			check:  func(t *testing.T, cfg Config) { assert.True(t, cfg.Force1080p) },
			wanted: KeyForce1080p,
		},
		{
			name:   "empty language list",
			in:     Inputs{KeyAudioLanguages: " , "},
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, DefaultAudioLanguages, cfg.AudioLanguages) },
			wanted: KeyAudioLanguages,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, warnings, err := Build("smart", tt.in)
			require.NoError(t, err)
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.wanted, warnings[0].Key)
			assert.Contains(t, warnings[0].String(), tt.wanted)
			tt.check(t, cfg)
		})
	}
}

func TestBuild_QualityZeroMeansTierDefault(t *testing.T) {
	cfg, warnings, err := Build("smart", Inputs{KeyQuality: "24"}, Inputs{KeyQuality: "0"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 0, cfg.Quality)
}

func TestBuild_ValidValues(t *testing.T) {
	cfg, warnings, err := Build("smart", Inputs{
		"custom_crf":       "24",
		KeyThreadCount:     "auto",
		KeySkipSmallFiles:  "0",
		KeyMinDuration:     "12.5",
		KeyAudioLanguages:  "EN, ger ,und",
		KeyEnableSmartTune: "off",
		KeyForcePreset:     "4k_elite",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 24, cfg.Quality)
	assert.Equal(t, ThreadsAuto, cfg.Threads)
	assert.Equal(t, 0, cfg.MinFileSizeMB)
	assert.InDelta(t, 12.5, cfg.MinDurationSeconds, 1e-9)
	assert.Equal(t, []string{"en", "ger", "und"}, cfg.AudioLanguages)
	assert.False(t, cfg.SmartTuning)
	assert.Equal(t, "4k_elite", cfg.ForceTier)
}

func TestBuild_Errors(t *testing.T) {
	_, _, err := Build("smart", Inputs{"turbo_mode": "on"})
	assert.ErrorContains(t, err, "unknown option")

	_, _, err = Build("smart", Inputs{KeyTargetCodec: "mpeg2"})
	assert.ErrorContains(t, err, "invalid target codec")

	_, _, err = Build("ultra")
	assert.ErrorContains(t, err, "unknown profile")
}

func TestParseFile(t *testing.T) {
	data := []byte(`
profile = "nas"

[encode]
target_codec = "h265"
keep_subtitles = true
quality = 23
min_duration_seconds = 30.5
audio_languages = ["en", "eng", "und"]

[tiers.animation]
crf = 20
tune = "none"

[host]
workers = 8
format = "JSON"
`)
	fc, err := ParseFile(data)
	require.NoError(t, err)
	assert.Equal(t, "nas", fc.Profile)
	assert.Equal(t, Inputs{
		KeyTargetCodec:    "h265",
		KeyKeepSubtitles:  "true",
		KeyQuality:        "23",
		KeyMinDuration:    "30.5",
		KeyAudioLanguages: "en,eng,und",
	}, fc.Inputs)
	assert.Equal(t, TierOverride{CRF: 20, Tune: "none"}, fc.Tiers["animation"])

	cfg, warnings, err := Build(fc.Profile, fc.Inputs)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	fc.ApplyTo(&cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, CodecH265, cfg.TargetCodec)
	assert.Equal(t, 23, cfg.Quality)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, OutputJSON, cfg.OutputFormat)
	assert.Equal(t, 20, cfg.TierOverrides["animation"].CRF)
}

func TestParseFile_RejectsUnknownFields(t *testing.T) {
	_, err := ParseFile([]byte("[hosts]\nworkers = 2\n"))
	assert.Error(t, err)

	_, err = ParseFile([]byte("[tiers.general]\nspeed = \"fast\"\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartencode.toml")
	require.NoError(t, os.WriteFile(path, []byte("profile = \"titan\"\n"), 0o644))

	fc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "titan", fc.Profile)
	assert.Empty(t, fc.Inputs)

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "read config")
}
