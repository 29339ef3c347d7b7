package planner

import (
	"fmt"
	"strings"

	"github.com/backmassage/smartencode/internal/config"
)

// Codec names of the two audio tracks a finished file carries.
const (
	surroundCodec = "ac3"
	stereoCodec   = "aac"
)

// targetCodecNames maps a configured codec to the ffprobe codec_name it
// produces.
var targetCodecNames = map[config.Codec]string{
	config.CodecH264: "h264",
	config.CodecH265: "hevc",
	config.CodecAV1:  "av1",
}

// TargetCodecName returns the ffprobe codec name for c.
func TargetCodecName(c config.Codec) string {
	if n, ok := targetCodecNames[c]; ok {
		return n
	}
	return "h264"
}

// EvaluateSkip runs the ordered skip checks. It returns ReasonNone and an
// empty message when the file should be processed.
func EvaluateSkip(cfg *config.Config, f Facts) (Reason, string) {
	if cfg.MinFileSizeMB > 0 && f.SizeMB < float64(cfg.MinFileSizeMB) {
		return ReasonTooSmall, fmt.Sprintf("Skipping small file (%.0fMB < %dMB)", f.SizeMB, cfg.MinFileSizeMB)
	}
	if f.Duration < cfg.MinDurationSeconds {
		return ReasonTooShort, fmt.Sprintf("Skipping short video (%.1fs < %gs)", f.Duration, cfg.MinDurationSeconds)
	}
	if p := CheckPerfect(cfg, f); p.Perfect() {
		return ReasonAlreadyPerfect, fmt.Sprintf("File is already in the target format (%s/%s, %s audio, %s). Skipping",
			strings.ToUpper(cfg.TargetContainer), cfg.TargetCodec, cfg.AudioCheck, p.subtitleNote())
	}
	return ReasonNone, ""
}

// PerfectCheck is the breakdown of the "already perfect" predicate. Every
// field must hold for the file to be skipped.
type PerfectCheck struct {
	Container bool
	Video     bool
	Subtitles bool
	Audio     bool

	keepSubs bool
}

// Perfect reports whether all conjuncts hold.
func (p PerfectCheck) Perfect() bool {
	return p.Container && p.Video && p.Subtitles && p.Audio
}

func (p PerfectCheck) subtitleNote() string {
	if p.keepSubs {
		return "subtitles kept"
	}
	return "no subtitles"
}

// CheckPerfect evaluates each conjunct of the "already perfect" predicate.
func CheckPerfect(cfg *config.Config, f Facts) PerfectCheck {
	return PerfectCheck{
		Container: f.Container == probeContainer(cfg.TargetContainer),
		Video:     strings.EqualFold(f.Video.Codec, TargetCodecName(cfg.TargetCodec)),
		Subtitles: cfg.KeepSubtitles || len(f.Subtitles) == 0,
		Audio:     audioIsPerfect(cfg.AudioCheck, f),
		keepSubs:  cfg.KeepSubtitles,
	}
}

func audioIsPerfect(mode config.AudioCheck, f Facts) bool {
	var surround, stereo bool
	for _, a := range f.Audio {
		codec := strings.ToLower(a.Codec)
		switch {
		case codec == surroundCodec && (mode == config.AudioCheckLenient || a.Channels == 6):
			surround = true
		case codec == stereoCodec && (mode == config.AudioCheckLenient || a.Channels == 2):
			stereo = true
		}
	}
	return surround && stereo
}

func probeContainer(target string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(target)), ".")
}
