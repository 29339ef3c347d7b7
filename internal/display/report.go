package display

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/planner"
)

// DecisionRow is one file in the decision report.
type DecisionRow struct {
	Path     string
	Size     int64
	Duration float64
	Decision planner.Decision
	Err      error // Host-side failure (e.g. probe); Decision is unset.
}

// RenderDecisionTable renders the per-file decision report.
func RenderDecisionTable(rows []DecisionRow) string {
	headers := []string{"File", "Size", "Duration", "Action", "Tier", "Encoder", "Audio", "Detail"}
	aligns := []Align{AlignLeft, AlignRight, AlignRight}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, decisionCells(r))
	}
	return RenderTable(headers, out, aligns)
}

func decisionCells(r DecisionRow) []string {
	cells := []string{filepath.Base(r.Path), FormatBytes(r.Size), FormatDuration(r.Duration)}
	if r.Err != nil {
		return append(cells, "failed", "-", "-", "-", r.Err.Error())
	}
	d := r.Decision
	if !d.ShouldProcess() {
		return append(cells, "skip", "-", "-", "-", d.Reason.String())
	}
	p := d.Plan
	detail := p.Classification.Rule
	if p.ScaleFilter != "" {
		detail += ", downscale"
	}
	if p.Subtitles.Include {
		detail += ", subs kept"
	}
	return append(cells,
		"process",
		TierTitle(string(p.Tier())),
		encoderLabel(p.Encoder),
		strconv.Itoa(p.Audio.TrackCount())+" tracks",
		detail,
	)
}

func encoderLabel(e planner.Encoder) string {
	if e.Hardware {
		return fmt.Sprintf("%s qp %d", e.Name, e.Quality)
	}
	return fmt.Sprintf("%s crf %d", e.Name, e.Quality)
}

// RenderTierTable renders the tier bundles with any overrides from cfg.
func RenderTierTable(cfg *config.Config) string {
	headers := []string{"Tier", "Label", "Preset", "Tune", "CRF", "Maxrate", "Bufsize"}
	aligns := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}
	var rows [][]string
	for _, b := range planner.Bundles() {
		b = planner.BundleFor(cfg, b.Tier)
		tune := b.Tune
		if tune == "" {
			tune = "-"
		}
		rows = append(rows, []string{
			string(b.Tier), b.Label, b.Preset, tune, strconv.Itoa(b.CRF), b.MaxRate, b.BufSize,
		})
	}
	return RenderTable(headers, rows, aligns)
}

// RenderProfileTable lists the built-in profiles.
func RenderProfileTable(profiles []config.Profile) string {
	headers := []string{"Profile", "Description"}
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{string(p.Name), p.Description})
	}
	return RenderTable(headers, rows, nil)
}
