package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result. The container name is taken from the file extension,
// falling back to ffprobe's format name.
func Probe(ctx context.Context, binary, path string) (*ProbeResult, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		"--", path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	pr, err := ParseJSON(out)
	if err != nil {
		return nil, err
	}
	if c := ContainerFromPath(path); c != "" {
		pr.Container = c
	}
	return pr, nil
}

// ParseJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// NewFileInfo assembles the FileInfo record for path. Duration comes from the
// probe; the release year is read from the container's "year" or "date" tag
// when present.
func NewFileInfo(path string, size int64, pr *ProbeResult) FileInfo {
	fi := FileInfo{
		Name: filepath.Base(path),
		Path: path,
		Size: size,
	}
	if pr != nil {
		fi.Duration = pr.Format.Duration
		fi.Year = yearFromTags(pr.Format.Tags)
	}
	return fi
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index         int               `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecType     string            `json:"codec_type"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	ColorTransfer string            `json:"color_transfer"`
	Channels      int               `json:"channels"`
	Disposition   map[string]int    `json:"disposition"`
	Tags          map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *ProbeResult {
	pr := &ProbeResult{
		Container: NormalizeContainer(raw.Format.FormatName),
		Format: FormatInfo{
			Filename:   raw.Format.Filename,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Size:       parseInt64(raw.Format.Size),
			BitRate:    parseInt64(raw.Format.BitRate),
			Tags:       raw.Format.Tags,
		},
	}
	if raw.Streams == nil {
		return pr
	}

	pr.Streams = make([]Stream, 0, len(raw.Streams))
	for i := range raw.Streams {
		pr.Streams = append(pr.Streams, convertStream(&raw.Streams[i]))
	}
	return pr
}

func convertStream(s *ffprobeStream) Stream {
	st := Stream{
		Index: s.Index,
		Kind:  kindOf(s.CodecType),
		Codec: strings.ToLower(s.CodecName),
	}
	switch st.Kind {
	case KindVideo:
		st.Width = s.Width
		st.Height = s.Height
		st.ColorTransfer = s.ColorTransfer
		st.AttachedPic = s.Disposition["attached_pic"] == 1
	case KindAudio:
		st.Channels = s.Channels
		st.Language = tagValue(s.Tags, "language")
	case KindSubtitle:
		st.Language = tagValue(s.Tags, "language")
	}
	return st
}

func kindOf(codecType string) Kind {
	switch strings.ToLower(codecType) {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	default:
		return KindOther
	}
}

// tagValue looks a tag up case-insensitively; Matroska and MP4 muxers
// disagree on "language" vs "LANGUAGE".
func tagValue(tags map[string]string, key string) string {
	if v, ok := tags[key]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func yearFromTags(tags map[string]string) int {
	for _, key := range []string{"year", "date"} {
		v := tagValue(tags, key)
		if len(v) < 4 {
			continue
		}
		if y, err := strconv.Atoi(v[:4]); err == nil && y >= 1900 && y <= 2029 {
			return y
		}
	}
	return 0
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
