package planner

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/backmassage/smartencode/internal/probe"
)

const bytesPerMB = 1024 * 1024

// yearPattern matches a plausible release year in a file name.
var yearPattern = regexp.MustCompile(`\b(19\d\d|20[0-2]\d)\b`)

// Facts are the planner's view of one file, derived once from the probe and
// file info and shared by every later stage.
type Facts struct {
	Video     probe.Stream
	Audio     []probe.Stream
	Subtitles []probe.Stream
	Container string

	HighRes bool
	HDR     bool
	Year    int // 0 = unknown.

	Name     string // Lowercased base name.
	Path     string // Lowercased full path.
	Bytes    int64
	SizeMB   float64
	Duration float64
}

// Extract derives Facts from a probe result. It fails with
// ErrMissingProbeData when there is no stream list at all and with
// ErrNoVideoStream when no non-cover-art video stream exists.
func Extract(pr *probe.ProbeResult, fi probe.FileInfo) (Facts, error) {
	if pr == nil || pr.Streams == nil {
		return Facts{}, ErrMissingProbeData
	}
	videos := pr.VideoStreams()
	if len(videos) == 0 {
		return Facts{}, ErrNoVideoStream
	}
	v := videos[0]

	name := fi.Name
	if name == "" {
		name = filepath.Base(fi.Path)
	}

	size := fi.Size
	if size <= 0 {
		size = pr.Format.Size
	}
	duration := fi.Duration
	if duration <= 0 {
		duration = pr.Format.Duration
	}

	container := probe.NormalizeContainer(pr.Container)
	if container == "" {
		container = probe.ContainerFromPath(name)
	}

	return Facts{
		Video:     v,
		Audio:     pr.AudioStreams(),
		Subtitles: pr.SubtitleStreams(),
		Container: container,
		HighRes:   v.IsHighResolution(),
		HDR:       v.IsHDR(),
		Year:      resolveYear(fi.Year, name),
		Name:      strings.ToLower(name),
		Path:      strings.ToLower(fi.Path),
		Bytes:     size,
		SizeMB:    float64(size) / bytesPerMB,
		Duration:  duration,
	}, nil
}

// resolveYear prefers a supplied year in range and falls back to the first
// year-like token in the file name.
func resolveYear(supplied int, name string) int {
	if supplied >= 1900 && supplied <= 2029 {
		return supplied
	}
	m := yearPattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return y
}
