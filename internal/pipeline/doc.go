// Package pipeline is the host side of the planner: it discovers media
// files, probes them with bounded concurrency, evaluates each one, and
// reports the decisions.
//
// Types:
//   - Prober, FFprobe, ProberFunc: probe sources (runner.go)
//   - Result: one file's decision or host failure (runner.go)
//   - RunStats: aggregate counters and byte totals (stats.go)
//   - Report: JSON/YAML decision report (report.go)
//
// Functions:
//   - Discover(paths...) → sorted media files; prunes extras dirs
//   - Evaluate(ctx, cfg, prober, files) → []Result in input order
//   - Run(ctx, cfg, log, prober) → results and stats
package pipeline
