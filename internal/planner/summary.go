package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type summary struct {
	b strings.Builder
}

func (s *summary) line(format string, a ...any) {
	fmt.Fprintf(&s.b, format, a...)
	s.b.WriteByte('\n')
}

func (s *summary) String() string { return s.b.String() }

func abortSummary(err error) string {
	var s summary
	s.line("Aborting: %v", err)
	return s.String()
}

func skipSummary(f Facts, msg string) string {
	var s summary
	s.line("%s", msg)
	s.line("Source: %s", describeSource(f))
	return s.String()
}

func planSummary(f Facts, p *Plan) string {
	var s summary
	c := p.Classification
	label := BundleFor(nil, c.Tier).Label
	if c.Forced {
		s.line("Forced: %s -> %s", c.Reason, label)
	} else {
		s.line("Detected: %s (%s)", label, c.Reason)
	}
	if p.ScaleFilter != "" {
		s.line("Downscaling from %s to 1080p", f.Video.Resolution())
	}

	e := p.Encoder
	s.line("Encoder: %s", describeEncoder(e))
	s.line("Quality: %s", e.qualityLabel())

	s.line("Audio: %d source stream(s), %d output track(s)", len(f.Audio), p.Audio.TrackCount())
	if p.Audio.Fallback {
		s.line("   no stream in an accepted language, using the first")
	}
	for i, pair := range p.Audio.Pairs {
		s.line("   - Track %d (from a:%d, %s): %dch -> %s", 2*i, pair.SourceIndex, pair.Language, pair.SourceChannels, describeTrack(pair.Surround))
		s.line("   - Track %d (from a:%d, %s): -> %s", 2*i+1, pair.SourceIndex, pair.Language, describeTrack(pair.Stereo))
	}

	switch {
	case p.Subtitles.Include:
		s.line("Subtitles: %d track(s) kept (%s)", p.Subtitles.Count, p.Subtitles.Codec)
	case p.Subtitles.Count > 0:
		s.line("Subtitles: %d track(s) removed", p.Subtitles.Count)
	default:
		s.line("Subtitles: none")
	}

	s.line("Source: %s", describeSource(f))
	s.line("Output: %s", strings.ToUpper(strings.TrimPrefix(p.Container, ".")))
	return s.String()
}

func describeEncoder(e Encoder) string {
	if e.Hardware {
		return e.Name + " (AMD AMF, constant QP)"
	}
	parts := []string{e.Name, fmt.Sprintf("preset %s (%s)", e.Preset, e.PresetSource)}
	if e.Tune != "" {
		parts = append(parts, "tune "+e.Tune)
	}
	if e.Threads > 0 {
		parts = append(parts, fmt.Sprintf("%d threads", e.Threads))
	}
	return strings.Join(parts, ", ")
}

func describeTrack(t AudioTrack) string {
	switch {
	case t.Copy():
		return "copy original"
	case t.Channels == stereoChannels:
		return fmt.Sprintf("%s stereo (%s)", strings.ToUpper(t.Codec), t.Bitrate)
	default:
		return fmt.Sprintf("%s 5.1 (%s)", strings.ToUpper(t.Codec), t.Bitrate)
	}
}

func describeSource(f Facts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", f.Video.Resolution(), f.Video.Codec)
	if f.HDR {
		b.WriteString(" (HDR)")
	}
	if f.Year > 0 {
		fmt.Fprintf(&b, ", year %d", f.Year)
	} else {
		b.WriteString(", year unknown")
	}
	if f.Bytes > 0 {
		fmt.Fprintf(&b, ", %s", humanize.IBytes(uint64(f.Bytes)))
	}
	if f.Duration > 0 {
		fmt.Fprintf(&b, ", %s", time.Duration(f.Duration*float64(time.Second)).Round(time.Second))
	}
	fmt.Fprintf(&b, ", %s", f.Container)
	return b.String()
}
