package probe

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Kind classifies a stream by its ffprobe codec_type.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
	KindOther    Kind = "other"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
	Tags       map[string]string
}

// Stream holds the parsed properties of one stream. Video, audio and subtitle
// fields share one record; fields that do not apply to a kind stay zero.
type Stream struct {
	Index int
	Kind  Kind
	Codec string

	// Video.
	Width         int
	Height        int
	ColorTransfer string
	AttachedPic   bool

	// Audio.
	Channels int

	// Audio and subtitle.
	Language string
}

// ProbeResult is the media metadata record consumed by the planner.
//
// A nil Streams slice means probe data is missing entirely; an empty non-nil
// slice means the file was probed and reported no streams.
type ProbeResult struct {
	Container string
	Format    FormatInfo
	Streams   []Stream
}

// FileInfo describes the file on disk. Year is an externally supplied release
// year; zero means unknown.
type FileInfo struct {
	Name     string
	Path     string
	Size     int64
	Duration float64
	Year     int
}

// VideoStreams returns the video streams that are not attached pictures
// (cover art), in source order.
func (p *ProbeResult) VideoStreams() []Stream {
	var out []Stream
	for _, s := range p.Streams {
		if s.Kind == KindVideo && !s.AttachedPic {
			out = append(out, s)
		}
	}
	return out
}

// AudioStreams returns the audio streams in source order.
func (p *ProbeResult) AudioStreams() []Stream {
	return p.ofKind(KindAudio)
}

// SubtitleStreams returns the subtitle streams in source order.
func (p *ProbeResult) SubtitleStreams() []Stream {
	return p.ofKind(KindSubtitle)
}

func (p *ProbeResult) ofKind(k Kind) []Stream {
	var out []Stream
	for _, s := range p.Streams {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

// Resolution returns "WxH" for a video stream, or "unknown".
func (s Stream) Resolution() string {
	if s.Width <= 0 || s.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// ContainerFromPath derives the normalized container name from a file
// extension ("Movie.MP4" -> "mp4"). It returns "" when there is no extension.
func ContainerFromPath(path string) string {
	return NormalizeContainer(filepath.Ext(path))
}

// NormalizeContainer lowercases a container name and strips a leading dot.
// ffprobe format lists such as "mov,mp4,m4a,3gp,3g2,mj2" are reduced to
// "mp4" when they include it, otherwise to their first entry.
func NormalizeContainer(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, ".")
	if !strings.Contains(name, ",") {
		return name
	}
	parts := strings.Split(name, ",")
	for _, p := range parts {
		if p == "mp4" {
			return p
		}
	}
	return parts[0]
}
