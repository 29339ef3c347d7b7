package planner

import (
	"errors"

	"github.com/backmassage/smartencode/internal/ffmpeg"
)

// Fatal extraction errors. They are carried in Decision.Err, never returned
// from Evaluate.
var (
	ErrMissingProbeData = errors.New("missing probe data")
	ErrNoVideoStream    = errors.New("no video stream")
)

// Action describes the per-file processing decision.
type Action int

const (
	ActionSkip Action = iota
	ActionProcess
)

func (a Action) String() string {
	if a == ActionProcess {
		return "process"
	}
	return "skip"
}

// Reason explains a skip. ReasonNone accompanies ActionProcess.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingProbeData
	ReasonNoVideoStream
	ReasonTooSmall
	ReasonTooShort
	ReasonAlreadyPerfect
)

var reasonNames = [...]string{
	ReasonNone:             "none",
	ReasonMissingProbeData: "missing-probe-data",
	ReasonNoVideoStream:    "no-video-stream",
	ReasonTooSmall:         "too-small",
	ReasonTooShort:         "too-short",
	ReasonAlreadyPerfect:   "already-perfect",
}

func (r Reason) String() string {
	if int(r) < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Decision is the result of evaluating one file. It is either a skip (Plan
// is nil) or a process (Plan is set); never both.
type Decision struct {
	Action  Action
	Reason  Reason
	Err     error
	Plan    *Plan
	Summary string
}

// ShouldProcess reports whether the host should transcode the file.
func (d Decision) ShouldProcess() bool { return d.Action == ActionProcess && d.Plan != nil }

// Plan holds everything decided for a file that will be processed.
type Plan struct {
	Classification Classification
	Encoder        Encoder
	Audio          AudioPlan
	Subtitles      SubtitlePlan
	ScaleFilter    string // Empty when no scaling is applied.
	Container      string // Output extension, e.g. ".mp4".
	Directive      ffmpeg.Directive
}

// Tier returns the classified content tier.
func (p *Plan) Tier() Tier { return p.Classification.Tier }

// AudioTrack is one output audio track.
type AudioTrack struct {
	Codec    string // "copy", "ac3" or "aac".
	Bitrate  string // e.g. "448k"; empty for copy.
	Channels int    // 0 for copy.
}

// Copy reports whether the track is a lossless stream copy.
func (t AudioTrack) Copy() bool { return t.Codec == "copy" }

// AudioTrackPlan is the pair of output tracks derived from one source stream.
type AudioTrackPlan struct {
	SourceIndex    int // Audio-relative index (0:a:N).
	Language       string
	SourceCodec    string
	SourceChannels int
	Surround       AudioTrack
	Stereo         AudioTrack
}

// AudioPlan lists track pairs in selection order. Pair i produces output
// tracks 2i (surround) and 2i+1 (stereo).
type AudioPlan struct {
	Pairs    []AudioTrackPlan
	Fallback bool // No stream matched the accepted languages; the first was used.
}

// TrackCount returns the number of output audio tracks.
func (a AudioPlan) TrackCount() int { return 2 * len(a.Pairs) }

// SubtitlePlan describes subtitle handling.
type SubtitlePlan struct {
	Include bool
	Codec   string // "copy" when included.
	Count   int    // Source subtitle streams.
}
