package pipeline

import (
	"github.com/backmassage/smartencode/internal/display"
	"github.com/backmassage/smartencode/internal/logging"
	"github.com/backmassage/smartencode/internal/probe"
)

var formatBytes = display.FormatBytes

func logFileStats(log *logging.Logger, pr *probe.ProbeResult) {
	videos := pr.VideoStreams()
	if len(videos) == 0 {
		return
	}
	v := videos[0]
	codec := v.Codec
	if codec == "" {
		codec = "unknown"
	}
	suffix := ""
	if v.IsHDR() {
		suffix = " [HDR]"
	}
	log.Info("  Video: %s | %s | %s%s", v.Resolution(), display.FormatBitrateLabel(pr.Format.BitRate/1000), codec, suffix)
}

// Bitrate outlier thresholds by resolution tier (pixels → low/high kbps),
// applied to the container's overall bitrate.
type bitrateTier struct {
	maxPixels int
	lowKbps   int64
	highKbps  int64
	label     string
}

var bitrateTiers = []bitrateTier{
	{640 * 360, 250, 1800, "<=360p"},
	{854 * 480, 500, 2500, "<=480p"},
	{1280 * 720, 1000, 5000, "<=720p"},
	{1920 * 1080, 2500, 10000, "<=1080p"},
	{2560 * 1440, 5000, 18000, "<=1440p"},
	{3840 * 2160, 10000, 45000, "<=2160p"},
}

// bitrateBounds returns the expected kbps range for a frame size.
func bitrateBounds(pixels int) (low, high int64, label string) {
	for _, t := range bitrateTiers {
		if pixels <= t.maxPixels {
			return t.lowKbps, t.highKbps, t.label
		}
	}
	return 15000, 65000, ">2160p"
}

func logBitrateOutlier(log *logging.Logger, pr *probe.ProbeResult) {
	videos := pr.VideoStreams()
	if len(videos) == 0 {
		return
	}
	v := videos[0]
	kbps := pr.Format.BitRate / 1000
	if v.Width <= 0 || v.Height <= 0 || kbps <= 0 {
		return
	}

	low, high, label := bitrateBounds(v.Width * v.Height)
	if kbps < low {
		log.Warn("  Bitrate outlier (low): %d kb/s for %s; expected %d-%d kb/s (%s)",
			kbps, v.Resolution(), low, high, label)
	} else if kbps > high {
		log.Warn("  Bitrate outlier (high): %d kb/s for %s; expected %d-%d kb/s (%s)",
			kbps, v.Resolution(), low, high, label)
	}
}
