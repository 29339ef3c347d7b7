package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/logging"
	"github.com/backmassage/smartencode/internal/planner"
	"github.com/backmassage/smartencode/internal/probe"
	"github.com/backmassage/smartencode/internal/term"
)

// Prober supplies probe data for a file.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.ProbeResult, error)
}

// FFprobe probes files with the ffprobe binary.
type FFprobe struct {
	Binary string
}

// Probe runs ffprobe on path.
func (p FFprobe) Probe(ctx context.Context, path string) (*probe.ProbeResult, error) {
	return probe.Probe(ctx, p.Binary, path)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, path string) (*probe.ProbeResult, error)

// Probe calls f(ctx, path).
func (f ProberFunc) Probe(ctx context.Context, path string) (*probe.ProbeResult, error) {
	return f(ctx, path)
}

// Result is the outcome for one file. Err is set when the host could not
// stat or probe the file; Decision is meaningful only when Err is nil.
type Result struct {
	Path     string
	Size     int64
	Info     probe.FileInfo
	Probe    *probe.ProbeResult
	Decision planner.Decision
	Err      error
}

// Run is the top-level batch entry point. It discovers files under
// cfg.Paths, evaluates them with up to cfg.Workers concurrent probes, and
// returns results in discovery order with aggregate stats. The returned
// error is a discovery failure or the context's error after cancellation;
// per-file failures are reported in the results.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, prober Prober) ([]Result, RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.Paths...)
	if err != nil {
		return nil, stats, err
	}
	log.Info("Found %d files", len(files))
	logBatchHeader(cfg, log)

	showProgress := cfg.OutputFormat == config.OutputText && term.IsTerminal(os.Stdout)
	prog := newProgress(os.Stdout, showProgress, len(files))
	results, err := evaluateAll(ctx, cfg, prober, files, prog)
	prog.clear()

	for _, r := range results {
		stats.Add(r)
	}
	if err != nil {
		log.Warn("Interrupted")
	}
	return results, stats, err
}

// Evaluate probes and evaluates files with bounded concurrency. Results are
// indexed like files.
func Evaluate(ctx context.Context, cfg *config.Config, prober Prober, files []string) ([]Result, error) {
	return evaluateAll(ctx, cfg, prober, files, nil)
}

func evaluateAll(ctx context.Context, cfg *config.Config, prober Prober, files []string, prog *progress) ([]Result, error) {
	results := make([]Result, len(files))
	for i, f := range files {
		results[i].Path = f
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluateFile(gctx, cfg, prober, path)
			if prog != nil {
				prog.step(filepath.Base(path), results[i].Err != nil)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Err == nil && results[i].Probe == nil {
				results[i].Err = err
			}
		}
		return results, err
	}
	return results, nil
}

// evaluateFile handles one media file: stat → probe → evaluate.
func evaluateFile(ctx context.Context, cfg *config.Config, prober Prober, path string) Result {
	r := Result{Path: path}

	fi, err := os.Stat(path)
	if err != nil {
		r.Err = fmt.Errorf("stat: %w", err)
		return r
	}
	r.Size = fi.Size()

	pr, err := prober.Probe(ctx, path)
	if err != nil {
		r.Err = fmt.Errorf("probe: %w", err)
		return r
	}
	r.Probe = pr
	r.Info = probe.NewFileInfo(path, r.Size, pr)
	r.Decision = planner.Evaluate(cfg, pr, r.Info)
	return r
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger) {
	log.Info("Profile: %s", cfg.Profile)
	log.Info("Target: %s via %s, %s",
		strings.ToUpper(cfg.TargetContainer), planner.SelectEncoder(cfg.TargetCodec, cfg.EncoderType), qualityMode(cfg))
	log.Info("Audio: %s check, %s selection (%s)", cfg.AudioCheck, cfg.AudioSelection, strings.Join(cfg.AudioLanguages, ","))
	if cfg.KeepSubtitles {
		log.Info("Subtitles: copy all streams")
	} else {
		log.Info("Subtitles: dropped")
	}
	if cfg.Force1080p {
		log.Info("Scaling: downscale above 1080p to 1920 wide")
	}
	if cfg.MinFileSizeMB > 0 {
		log.Info("Skip: files under %d MB or %gs", cfg.MinFileSizeMB, cfg.MinDurationSeconds)
	} else {
		log.Info("Skip: files under %gs", cfg.MinDurationSeconds)
	}
	if cfg.ForceTier != config.ForceTierAuto {
		log.Info("Tier: forced to %s", cfg.ForceTier)
	}
	log.Debug(cfg.Verbose, "Workers: %d, ffprobe: %s", cfg.Workers, cfg.FFprobePath)
}

func qualityMode(cfg *config.Config) string {
	if cfg.Quality > 0 {
		return fmt.Sprintf("fixed quality %d", cfg.Quality)
	}
	return "tier quality"
}

// LogResults writes each result to log in order: failures as errors, skips
// with their reason, and processed files with their summary.
func LogResults(cfg *config.Config, log *logging.Logger, results []Result) {
	total := len(results)
	for i, r := range results {
		name := filepath.Base(r.Path)
		prefix := fmt.Sprintf("[%d/%d] %s", i+1, total, name)

		if r.Err != nil {
			log.Error("%s: %v", prefix, r.Err)
			continue
		}
		if cfg.Verbose && r.Probe != nil {
			logFileStats(log, r.Probe)
			logBitrateOutlier(log, r.Probe)
		}

		d := r.Decision
		if !d.ShouldProcess() {
			log.Skip("%s: %s", prefix, d.Reason)
			for _, line := range summaryLines(d.Summary) {
				log.Debug(cfg.Verbose, "  %s", line)
			}
			continue
		}

		log.Plan("%s: %s", prefix, d.Plan.Classification.Tier)
		for _, line := range summaryLines(d.Summary) {
			log.Info("  %s", line)
		}
		log.Debug(cfg.Verbose, "  Preset: %s", d.Plan.Directive.Preset())
	}
}

func summaryLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// LogSummary writes the batch totals.
func LogSummary(log *logging.Logger, stats RunStats) {
	log.Info("==============================")
	log.Info("Done: %d to process, %d skipped, %d failed (of %d)", stats.Processed, stats.Skipped, stats.Failed, stats.Total)
	for _, reason := range []planner.Reason{
		planner.ReasonAlreadyPerfect, planner.ReasonTooSmall, planner.ReasonTooShort,
		planner.ReasonNoVideoStream, planner.ReasonMissingProbeData,
	} {
		if n := stats.SkipReasons[reason]; n > 0 {
			log.Info("  Skipped (%s): %d", reason, n)
		}
	}
	for _, b := range planner.Bundles() {
		if n := stats.Tiers[b.Tier]; n > 0 {
			log.Info("  %s: %d", b.Label, n)
		}
	}
	log.Info("  Data to transcode: %s of %s (%s left as is)",
		formatBytes(stats.ProcessBytes), formatBytes(stats.TotalInputBytes), formatBytes(stats.SkippedBytes()))
	if stats.Failed > 0 {
		log.Error("%d file(s) failed", stats.Failed)
	} else {
		log.Success("All files evaluated")
	}
}
