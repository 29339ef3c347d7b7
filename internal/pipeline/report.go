package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/planner"
)

// Report is the machine-readable form of a batch run.
type Report struct {
	Profile string        `json:"profile" yaml:"profile"`
	Files   []ReportEntry `json:"files" yaml:"files"`
	Totals  ReportTotals  `json:"totals" yaml:"totals"`
}

// ReportEntry describes the decision for one file.
type ReportEntry struct {
	Path     string        `json:"path" yaml:"path"`
	Size     int64         `json:"size" yaml:"size"`
	Duration float64       `json:"duration" yaml:"duration"`
	Action   string        `json:"action" yaml:"action"`
	Reason   string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Tier     string        `json:"tier,omitempty" yaml:"tier,omitempty"`
	Rule     string        `json:"rule,omitempty" yaml:"rule,omitempty"`
	Encoder  string        `json:"encoder,omitempty" yaml:"encoder,omitempty"`
	Quality  int           `json:"quality,omitempty" yaml:"quality,omitempty"`
	Scale    string        `json:"scale,omitempty" yaml:"scale,omitempty"`
	Audio    []ReportAudio `json:"audio,omitempty" yaml:"audio,omitempty"`
	Subs     string        `json:"subtitles,omitempty" yaml:"subtitles,omitempty"`
	Args     []string      `json:"args,omitempty" yaml:"args,omitempty"`
	Summary  string        `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// ReportAudio is one selected source stream and its two output tracks.
type ReportAudio struct {
	Source   int    `json:"source" yaml:"source"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Surround string `json:"surround" yaml:"surround"`
	Stereo   string `json:"stereo" yaml:"stereo"`
}

// ReportTotals mirrors RunStats with string keys.
type ReportTotals struct {
	Files        int            `json:"files" yaml:"files"`
	Process      int            `json:"process" yaml:"process"`
	Skip         int            `json:"skip" yaml:"skip"`
	Failed       int            `json:"failed" yaml:"failed"`
	SkipReasons  map[string]int `json:"skip_reasons,omitempty" yaml:"skip_reasons,omitempty"`
	Tiers        map[string]int `json:"tiers,omitempty" yaml:"tiers,omitempty"`
	InputBytes   int64          `json:"input_bytes" yaml:"input_bytes"`
	ProcessBytes int64          `json:"process_bytes" yaml:"process_bytes"`
}

// BuildReport converts results and stats into a Report.
func BuildReport(cfg *config.Config, results []Result, stats RunStats) Report {
	rep := Report{
		Profile: string(cfg.Profile),
		Files:   make([]ReportEntry, 0, len(results)),
		Totals: ReportTotals{
			Files:        stats.Total,
			Process:      stats.Processed,
			Skip:         stats.Skipped,
			Failed:       stats.Failed,
			InputBytes:   stats.TotalInputBytes,
			ProcessBytes: stats.ProcessBytes,
		},
	}
	if len(stats.SkipReasons) > 0 {
		rep.Totals.SkipReasons = make(map[string]int, len(stats.SkipReasons))
		for r, n := range stats.SkipReasons {
			rep.Totals.SkipReasons[r.String()] = n
		}
	}
	if len(stats.Tiers) > 0 {
		rep.Totals.Tiers = make(map[string]int, len(stats.Tiers))
		for t, n := range stats.Tiers {
			rep.Totals.Tiers[string(t)] = n
		}
	}
	for _, r := range results {
		rep.Files = append(rep.Files, reportEntry(r))
	}
	return rep
}

func reportEntry(r Result) ReportEntry {
	e := ReportEntry{Path: r.Path, Size: r.Size, Duration: r.Info.Duration}
	if r.Err != nil {
		e.Action = "error"
		e.Error = r.Err.Error()
		return e
	}

	d := r.Decision
	e.Action = d.Action.String()
	e.Summary = d.Summary
	if !d.ShouldProcess() {
		e.Reason = d.Reason.String()
		if d.Err != nil {
			e.Error = d.Err.Error()
		}
		return e
	}

	p := d.Plan
	e.Tier = string(p.Tier())
	e.Rule = p.Classification.Rule
	e.Encoder = p.Encoder.Name
	e.Quality = p.Encoder.Quality
	e.Scale = p.ScaleFilter
	for _, pair := range p.Audio.Pairs {
		e.Audio = append(e.Audio, ReportAudio{
			Source:   pair.SourceIndex,
			Language: pair.Language,
			Surround: trackLabel(pair.Surround),
			Stereo:   trackLabel(pair.Stereo),
		})
	}
	switch {
	case p.Subtitles.Include:
		e.Subs = "copy"
	case p.Subtitles.Count > 0:
		e.Subs = "drop"
	}
	e.Args = p.Directive.Args()
	return e
}

func trackLabel(t planner.AudioTrack) string {
	if t.Copy() {
		return "copy"
	}
	return fmt.Sprintf("%s %s %dch", t.Codec, t.Bitrate, t.Channels)
}

// WriteReport encodes rep to w as JSON or YAML.
func WriteReport(w io.Writer, format config.OutputFormat, rep Report) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
