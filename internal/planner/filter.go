package planner

import "github.com/backmassage/smartencode/internal/config"

// downscaleFilter scales to 1920 wide with an even, aspect-preserving height.
const downscaleFilter = "scale=1920:-2:flags=lanczos"

// BuildScaleFilter returns the -vf value, or "" when no scaling applies.
func BuildScaleFilter(cfg *config.Config, f Facts) string {
	if cfg.Force1080p && f.HighRes {
		return downscaleFilter
	}
	return ""
}
