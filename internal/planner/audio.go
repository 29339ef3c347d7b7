package planner

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/ffmpeg"
	"github.com/backmassage/smartencode/internal/probe"
)

const (
	surroundBitrateFull    = "448k" // Sources with 6+ channels.
	surroundBitrateReduced = "384k"
	surroundChannels       = 6
	stereoBitrate          = "160k"
	stereoChannels         = 2
	undetermined           = "und"
)

// languageSet matches stream language tags against the accepted list:
// literally first, then by ISO base language ("en-US" matches "eng").
type languageSet struct {
	literal map[string]bool
	bases   map[language.Base]bool
}

func newLanguageSet(langs []string) languageSet {
	s := languageSet{literal: make(map[string]bool), bases: make(map[language.Base]bool)}
	for _, l := range langs {
		l = strings.ToLower(strings.TrimSpace(l))
		s.literal[l] = true
		if b, ok := exactBase(l); ok {
			s.bases[b] = true
		}
	}
	return s
}

func (s languageSet) accepts(lang string) bool {
	if s.literal[lang] {
		return true
	}
	b, ok := exactBase(lang)
	return ok && s.bases[b]
}

// exactBase returns the base language of tag when it is known with
// certainty. "und" and unparseable tags have none.
func exactBase(tag string) (language.Base, bool) {
	t, err := language.Parse(tag)
	if err != nil {
		return language.Base{}, false
	}
	b, conf := t.Base()
	return b, conf == language.Exact
}

// streamLanguage returns the lowercased language tag, "und" when absent.
func streamLanguage(s probe.Stream) string {
	if l := strings.ToLower(strings.TrimSpace(s.Language)); l != "" {
		return l
	}
	return undetermined
}

// SelectAudio returns the audio-relative indices of the source streams to
// keep, in source order, and whether the first-stream fallback was used.
func SelectAudio(cfg *config.Config, audio []probe.Stream) ([]int, bool) {
	if len(audio) == 0 {
		return nil, false
	}
	if cfg.AudioSelection == config.AudioSelectFirst {
		return []int{0}, false
	}
	set := newLanguageSet(cfg.AudioLanguages)
	var idx []int
	for i, a := range audio {
		if set.accepts(streamLanguage(a)) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return []int{0}, true
	}
	return idx, false
}

// BuildAudioPlan selects source streams and derives a surround/stereo pair
// for each. The subtitle list plays no part.
func BuildAudioPlan(cfg *config.Config, audio []probe.Stream) AudioPlan {
	idx, fallback := SelectAudio(cfg, audio)
	plan := AudioPlan{Fallback: fallback}
	for _, i := range idx {
		a := audio[i]
		ch := a.Channels
		if ch <= 0 {
			ch = 2
		}
		plan.Pairs = append(plan.Pairs, AudioTrackPlan{
			SourceIndex:    i,
			Language:       streamLanguage(a),
			SourceCodec:    strings.ToLower(a.Codec),
			SourceChannels: ch,
			Surround:       surroundTrack(ch),
			Stereo:         AudioTrack{Codec: stereoCodec, Bitrate: stereoBitrate, Channels: stereoChannels},
		})
	}
	return plan
}

func surroundTrack(channels int) AudioTrack {
	if channels <= 2 {
		return AudioTrack{Codec: "copy"}
	}
	bitrate := surroundBitrateReduced
	if channels >= 6 {
		bitrate = surroundBitrateFull
	}
	return AudioTrack{Codec: surroundCodec, Bitrate: bitrate, Channels: surroundChannels}
}

// addMaps appends two maps per pair: the source stream feeds both tracks.
func (p AudioPlan) addMaps(d *ffmpeg.Directive) {
	for _, pair := range p.Pairs {
		d.Addf(ffmpeg.SectionAudioMap, "-map", "0:a:%d", pair.SourceIndex)
		d.Addf(ffmpeg.SectionAudioMap, "-map", "0:a:%d", pair.SourceIndex)
	}
}

func (p AudioPlan) addCodecs(d *ffmpeg.Directive) {
	for i, pair := range p.Pairs {
		addTrack(d, 2*i, pair.Surround)
		addTrack(d, 2*i+1, pair.Stereo)
	}
}

func addTrack(d *ffmpeg.Directive, out int, t AudioTrack) {
	const s = ffmpeg.SectionAudioCodec
	d.Add(s, "-c:a:"+strconv.Itoa(out), t.Codec)
	if t.Copy() {
		return
	}
	d.Add(s, "-b:a:"+strconv.Itoa(out), t.Bitrate)
	d.Add(s, "-ac:a:"+strconv.Itoa(out), strconv.Itoa(t.Channels))
}
