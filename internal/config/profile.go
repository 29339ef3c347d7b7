package config

import (
	"fmt"
	"slices"
	"strings"
)

// ProfileName identifies a variant preset.
type ProfileName string

const (
	ProfileSmart ProfileName = "smart"
	ProfileFinal ProfileName = "final"
	ProfileNAS   ProfileName = "nas"
	ProfileTitan ProfileName = "titan"
)

// Profile is a named set of input defaults. Variants of the rule engine
// differ only in these values; they share every code path.
type Profile struct {
	Name        ProfileName
	Description string
	Inputs      Inputs
}

var profiles = []Profile{
	{
		Name:        ProfileSmart,
		Description: "Strict audio check, language-filtered dual audio, subtitles dropped, 1080p downscale",
		Inputs:      Inputs{},
	},
	{
		Name:        ProfileFinal,
		Description: "H.264 only, first audio stream only, strict AC3 5.1 + AAC stereo check, no size threshold",
		Inputs: Inputs{
			KeyTargetCodec:     string(CodecH264),
			KeyEncoderType:     string(EncoderCPU),
			KeyAudioCheck:      string(AudioCheckStrict),
			KeyAudioSelection:  string(AudioSelectFirst),
			KeyKeepSubtitles:   "false",
			KeyForce1080p:      "true",
			KeySkipSmallFiles:  "0",
			KeyThreadCount:     "",
			KeySpeedPreset:     PresetAuto,
			KeyEnableSmartTune: "true",
		},
	},
	{
		Name:        ProfileNAS,
		Description: "CPU H.264 for NAS playback, size-adaptive preset and threads, skips files under 100 MB",
		Inputs: Inputs{
			KeyTargetCodec:     string(CodecH264),
			KeyEncoderType:     string(EncoderCPU),
			KeyAudioCheck:      string(AudioCheckLenient),
			KeyAudioSelection:  string(AudioSelectLanguage),
			KeyKeepSubtitles:   "false",
			KeyForce1080p:      "true",
			KeySkipSmallFiles:  "100",
			KeyThreadCount:     "0",
			KeySpeedPreset:     PresetAdaptive,
			KeyEnableSmartTune: "true",
		},
	},
	{
		Name:        ProfileTitan,
		Description: "H.265 by default, CPU or AMD GPU, keeps subtitles and native resolution",
		Inputs: Inputs{
			KeyTargetCodec:     string(CodecH265),
			KeyEncoderType:     string(EncoderCPU),
			KeyAudioCheck:      string(AudioCheckLenient),
			KeyAudioSelection:  string(AudioSelectLanguage),
			KeyKeepSubtitles:   "true",
			KeyForce1080p:      "false",
			KeySkipSmallFiles:  "0",
			KeyThreadCount:     "",
			KeySpeedPreset:     PresetAuto,
			KeyEnableSmartTune: "true",
		},
	},
}

// Profiles returns all built-in profiles in display order.
func Profiles() []Profile {
	return slices.Clone(profiles)
}

// LookupProfile returns the profile with the given name (case-insensitive).
func LookupProfile(name string) (Profile, error) {
	n := ProfileName(strings.ToLower(strings.TrimSpace(name)))
	if n == "" {
		n = ProfileSmart
	}
	for _, p := range profiles {
		if p.Name == n {
			return p, nil
		}
	}
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, string(p.Name))
	}
	return Profile{}, fmt.Errorf("unknown profile %q (use one of %s)", name, strings.Join(names, ", "))
}
