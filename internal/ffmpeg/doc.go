// Package ffmpeg holds the structured output directive the planner builds for
// each file.
//
// A Directive is an ordered list of typed arguments grouped into sections
// (stream maps, subtitles, filters, pixel format, video codec, audio codecs,
// container flags). Keeping the arguments typed lets callers and tests
// inspect intermediate state; text is produced only by Args, String and
// Preset at the boundary.
package ffmpeg
