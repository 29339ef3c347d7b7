package planner

import (
	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/ffmpeg"
	"github.com/backmassage/smartencode/internal/probe"
)

// BuildSubtitlePlan keeps all subtitle streams as a copy when retention is
// enabled and any exist; otherwise they are dropped.
func BuildSubtitlePlan(cfg *config.Config, subs []probe.Stream) SubtitlePlan {
	if !cfg.KeepSubtitles || len(subs) == 0 {
		return SubtitlePlan{Count: len(subs)}
	}
	return SubtitlePlan{Include: true, Codec: "copy", Count: len(subs)}
}

func (p SubtitlePlan) addArgs(d *ffmpeg.Directive) {
	if !p.Include {
		return
	}
	d.Add(ffmpeg.SectionSubtitle, "-map", "0:s?")
	d.Add(ffmpeg.SectionSubtitle, "-c:s", p.Codec)
}
