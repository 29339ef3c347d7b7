package planner

import (
	"errors"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/ffmpeg"
	"github.com/backmassage/smartencode/internal/probe"
)

// Evaluate decides what to do with one file. It never panics and never
// returns an error: every failure is a non-processing Decision whose Err and
// Summary explain it.
//
// Flow:
//  1. Extract facts (fails on missing probe data or no video stream)
//  2. Skip checks: size, duration, already perfect
//  3. Classify content into a tier
//  4. Assemble encoder, audio, subtitle and filter plans into a directive
func Evaluate(cfg *config.Config, pr *probe.ProbeResult, fi probe.FileInfo) Decision {
	f, err := Extract(pr, fi)
	if err != nil {
		reason := ReasonMissingProbeData
		if errors.Is(err, ErrNoVideoStream) {
			reason = ReasonNoVideoStream
		}
		return Decision{Action: ActionSkip, Reason: reason, Err: err, Summary: abortSummary(err)}
	}

	if reason, msg := EvaluateSkip(cfg, f); reason != ReasonNone {
		return Decision{Action: ActionSkip, Reason: reason, Summary: skipSummary(f, msg)}
	}

	plan := Assemble(cfg, f, Classify(cfg, f))
	return Decision{
		Action:  ActionProcess,
		Reason:  ReasonNone,
		Plan:    plan,
		Summary: planSummary(f, plan),
	}
}

// Assemble builds the plan and its directive for a classified file.
// Directive order: video map, audio maps, subtitles, scale filter, pixel
// format, video codec, audio codecs, container flags.
func Assemble(cfg *config.Config, f Facts, c Classification) *Plan {
	bundle := BundleFor(cfg, c.Tier)
	p := &Plan{
		Classification: c,
		Encoder:        ResolveEncoder(cfg, f, bundle),
		Audio:          BuildAudioPlan(cfg, f.Audio),
		Subtitles:      BuildSubtitlePlan(cfg, f.Subtitles),
		ScaleFilter:    BuildScaleFilter(cfg, f),
		Container:      "." + probeContainer(cfg.TargetContainer),
	}

	d := &p.Directive
	d.Add(ffmpeg.SectionVideoMap, "-map", "0:v")
	p.Audio.addMaps(d)
	p.Subtitles.addArgs(d)
	if p.ScaleFilter != "" {
		d.Add(ffmpeg.SectionFilter, "-vf", p.ScaleFilter)
	}
	d.Add(ffmpeg.SectionPixFmt, "-pix_fmt", "yuv420p")
	p.Encoder.addArgs(d)
	p.Audio.addCodecs(d)
	d.Add(ffmpeg.SectionContainer, "-movflags", "+faststart")
	return p
}
