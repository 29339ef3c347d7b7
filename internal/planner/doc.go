// Package planner is the transcoding rule engine. For each file it extracts
// facts from probe data, decides whether the file can be skipped, classifies
// the content into a tier, and assembles an ffmpeg.Directive for the rest.
//
//   - Decision, Plan, AudioPlan, SubtitlePlan (types.go)
//   - Extract: first video stream, stream subsets, resolution/HDR, year (extract.go)
//   - EvaluateSkip, CheckPerfect: size, duration, already-perfect checks (skip.go)
//   - Classify: ordered rule table over tiers (classify.go, tiers.go)
//   - ResolveEncoder: encoder table, presets, tune sets, threads (encoder.go)
//   - BuildAudioPlan: language selection and surround/stereo pairs (audio.go)
//   - Evaluate, Assemble: the pipeline entry point (planner.go)
//
// The package is pure: no I/O, no logging, no shared mutable state. It is safe
// to call Evaluate from many goroutines at once.
package planner
