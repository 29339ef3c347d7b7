package planner

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/ffmpeg"
)

// Encoder is the resolved video encoder configuration for one file.
type Encoder struct {
	Name          string
	Hardware      bool
	Preset        string // Empty for hardware encoders.
	PresetSource  string // "tier", "adaptive", "user".
	Tune          string // Empty when not applied.
	Quality       int    // CRF for software encoders, QP for AMF.
	QualitySource string // "tier" or "user".
	Threads       int    // config.ThreadsOmit when no -threads option is emitted.
	MaxRate       string
	BufSize       string
	X264Params    string
}

// encoderTable selects the encoder for (backend, codec).
var encoderTable = map[config.EncoderType]map[config.Codec]string{
	config.EncoderCPU: {
		config.CodecH264: "libx264",
		config.CodecH265: "libx265",
		config.CodecAV1:  "libsvtav1",
	},
	config.EncoderGPUAMD: {
		config.CodecH264: "h264_amf",
		config.CodecH265: "hevc_amf",
		config.CodecAV1:  "av1_amf",
	},
}

// tuneSets lists the -tune values each tunable encoder accepts.
var tuneSets = map[string][]string{
	"libx264": {"film", "animation", "grain", "stillimage", "fastdecode", "zerolatency", "psnr", "ssim"},
	"libx265": {"animation", "grain", "psnr", "ssim", "fastdecode", "zerolatency"},
}

// svtPresets maps named presets to SVT-AV1 ordinals.
var svtPresets = map[string]int{
	"slower": 5,
	"slow":   6,
	"medium": 8,
	"fast":   10,
	"faster": 12,
}

const svtDefaultPreset = 8

// Size-adaptive thresholds, in MB.
const (
	adaptiveFasterMB = 4000
	adaptiveFastMB   = 1000
	threadsPerMB     = 500
	minAutoThreads   = 4
	maxAutoThreads   = 16
)

// SelectEncoder returns the encoder name for a codec and backend.
func SelectEncoder(codec config.Codec, backend config.EncoderType) string {
	if byCodec, ok := encoderTable[backend]; ok {
		if name, ok := byCodec[codec]; ok {
			return name
		}
	}
	return "libx264"
}

// ResolveEncoder fills in the encoder configuration for a tier bundle.
func ResolveEncoder(cfg *config.Config, f Facts, b TierBundle) Encoder {
	e := Encoder{
		Name:          SelectEncoder(cfg.TargetCodec, cfg.EncoderType),
		Hardware:      cfg.EncoderType == config.EncoderGPUAMD,
		Quality:       b.CRF,
		QualitySource: "tier",
		Threads:       config.ThreadsOmit,
	}
	if cfg.Quality > 0 {
		e.Quality = cfg.Quality
		e.QualitySource = "user"
	}
	if e.Hardware {
		return e
	}

	e.Preset, e.PresetSource = resolvePreset(cfg.SpeedPreset, b.Preset, f.SizeMB)
	if e.Name == "libsvtav1" {
		e.Preset = strconv.Itoa(svtPreset(e.Preset))
	}
	if cfg.SmartTuning && b.Tune != "" && slices.Contains(tuneSets[e.Name], b.Tune) {
		e.Tune = b.Tune
	}
	if e.Name == "libx264" || e.Name == "libx265" {
		e.MaxRate = b.MaxRate
		e.BufSize = b.BufSize
	}
	if e.Name == "libx264" {
		e.X264Params = b.X264Params
	}
	e.Threads = resolveThreads(cfg.Threads, f.SizeMB)
	return e
}

func resolvePreset(setting, tierPreset string, sizeMB float64) (string, string) {
	switch setting {
	case "", config.PresetAuto:
		return tierPreset, "tier"
	case config.PresetAdaptive:
		return AdaptivePreset(sizeMB), "adaptive"
	default:
		return setting, "user"
	}
}

// AdaptivePreset picks a faster preset for larger files.
func AdaptivePreset(sizeMB float64) string {
	switch {
	case sizeMB > adaptiveFasterMB:
		return "faster"
	case sizeMB > adaptiveFastMB:
		return "fast"
	default:
		return "medium"
	}
}

// AutoThreads derives a thread count from file size, clamped to [4, 16].
func AutoThreads(sizeMB float64) int {
	n := int(sizeMB / threadsPerMB)
	return min(maxAutoThreads, max(minAutoThreads, n))
}

func resolveThreads(setting int, sizeMB float64) int {
	switch {
	case setting == config.ThreadsAuto:
		return AutoThreads(sizeMB)
	case setting > 0:
		return setting
	default:
		return config.ThreadsOmit
	}
}

func svtPreset(name string) int {
	if n, ok := svtPresets[name]; ok {
		return n
	}
	return svtDefaultPreset
}

// addArgs appends the video codec section to d.
func (e Encoder) addArgs(d *ffmpeg.Directive) {
	const s = ffmpeg.SectionVideoCodec
	d.Add(s, "-c:v", e.Name)
	if e.Hardware {
		q := strconv.Itoa(e.Quality)
		d.Add(s, "-quality", "balanced")
		d.Add(s, "-rc", "cqp")
		d.Add(s, "-qp_i", q)
		d.Add(s, "-qp_p", q)
		return
	}
	d.Add(s, "-preset", e.Preset)
	if e.Tune != "" {
		d.Add(s, "-tune", e.Tune)
	}
	d.Add(s, "-crf", strconv.Itoa(e.Quality))
	if e.MaxRate != "" {
		d.Add(s, "-maxrate", e.MaxRate)
		d.Add(s, "-bufsize", e.BufSize)
	}
	if e.Name == "libx264" {
		d.Add(s, "-profile:v", "high")
		d.Add(s, "-level", "4.1")
	}
	if e.X264Params != "" {
		d.Add(s, "-x264-params", e.X264Params)
	}
	if e.Threads != config.ThreadsOmit {
		d.Add(s, "-threads", strconv.Itoa(e.Threads))
	}
}

// qualityLabel renders the quality parameter, e.g. "CRF 22".
func (e Encoder) qualityLabel() string {
	kind := "CRF"
	if e.Hardware {
		kind = "QP"
	}
	return fmt.Sprintf("%s %d (%s)", kind, e.Quality, e.QualitySource)
}
