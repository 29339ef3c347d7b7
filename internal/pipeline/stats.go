package pipeline

import "github.com/backmassage/smartencode/internal/planner"

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total           int
	Processed       int
	Skipped         int
	Failed          int
	SkipReasons     map[planner.Reason]int
	Tiers           map[planner.Tier]int
	TotalInputBytes int64
	ProcessBytes    int64 // Bytes of files that will be transcoded.
}

// Add folds one result into the stats.
func (s *RunStats) Add(r Result) {
	s.Total++
	s.TotalInputBytes += r.Size
	switch {
	case r.Err != nil:
		s.Failed++
	case r.Decision.ShouldProcess():
		s.Processed++
		s.ProcessBytes += r.Size
		if s.Tiers == nil {
			s.Tiers = make(map[planner.Tier]int)
		}
		s.Tiers[r.Decision.Plan.Tier()]++
	default:
		s.Skipped++
		if s.SkipReasons == nil {
			s.SkipReasons = make(map[planner.Reason]int)
		}
		s.SkipReasons[r.Decision.Reason]++
	}
}

// SkippedBytes returns the bytes of files that need no work or failed.
func (s *RunStats) SkippedBytes() int64 {
	return s.TotalInputBytes - s.ProcessBytes
}
