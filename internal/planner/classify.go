package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/backmassage/smartencode/internal/config"
)

// Classification is the tier chosen for a file and why.
type Classification struct {
	Tier   Tier
	Rule   string // Name of the rule that matched, or "forced".
	Reason string
	Forced bool
}

var (
	animationKeywords = regexp.MustCompile(`\b(anime|animation|animated|cartoon|pixar|dreamworks|disney|ghibli|studio)\b`)
	episodePattern    = regexp.MustCompile(`\bs\d{1,2}e\d{1,2}\b`)
	toonKeywords      = regexp.MustCompile(`\b(anime|toon)\b`)
	classicKeywords   = regexp.MustCompile(`\b(classic|criterion|restored|remastered|noir|western|35mm|grain|vintage|bw|black.?white)\b`)
)

var (
	animationPathSegments = []string{"anime", "animation", "cartoon"}
	classicPathSegments   = []string{"classics", "criterion"}
)

// classifyRule is one row of the classification table. match returns a
// human-readable reason when the rule applies.
type classifyRule struct {
	name  string
	tier  Tier
	match func(f Facts) (string, bool)
}

// classifyRules is evaluated top-down; the first match wins.
var classifyRules = []classifyRule{
	{name: "high-resolution", tier: TierElite, match: matchElite},
	{name: "animation", tier: TierAnimation, match: matchAnimation},
	{name: "classic", tier: TierClassic, match: matchClassic},
	{name: "fallback", tier: TierGeneral, match: func(f Facts) (string, bool) {
		if f.Year > 0 {
			return fmt.Sprintf("modern content from %d", f.Year), true
		}
		return "modern content", true
	}},
}

// Classify picks the content tier for f. A known forced tier in cfg is used
// verbatim; otherwise, including for unknown tier names, the rule table
// decides.
func Classify(cfg *config.Config, f Facts) Classification {
	if cfg != nil && config.ValidTier(cfg.ForceTier) {
		return Classification{
			Tier:   Tier(cfg.ForceTier),
			Rule:   "forced",
			Reason: fmt.Sprintf("user selected preset '%s'", cfg.ForceTier),
			Forced: true,
		}
	}
	for _, r := range classifyRules {
		if reason, ok := r.match(f); ok {
			return Classification{Tier: r.tier, Rule: r.name, Reason: reason}
		}
	}
	// Unreachable: the fallback rule always matches.
	return Classification{Tier: TierGeneral, Rule: "fallback"}
}

func matchElite(f Facts) (string, bool) {
	switch {
	case f.HighRes && f.HDR:
		return "4K/HDR content", true
	case f.HighRes:
		return "high-resolution content", true
	case f.HDR:
		return "HDR content", true
	}
	return "", false
}

func matchAnimation(f Facts) (string, bool) {
	if m := animationKeywords.FindString(f.Name); m != "" {
		return fmt.Sprintf("animation keyword %q in name", m), true
	}
	if seg, ok := containsAny(f.Path, animationPathSegments); ok {
		return fmt.Sprintf("animation folder %q in path", seg), true
	}
	if strings.Contains(f.Name, "[") && strings.Contains(f.Name, "]") {
		return "bracketed release tag in name", true
	}
	if episodePattern.MatchString(f.Name) && toonKeywords.MatchString(f.Name) {
		return "anime episode numbering in name", true
	}
	return "", false
}

func matchClassic(f Facts) (string, bool) {
	if f.Year > 0 && f.Year < 2000 {
		return fmt.Sprintf("classic film from %d", f.Year), true
	}
	if m := classicKeywords.FindString(f.Name); m != "" {
		return fmt.Sprintf("classic keyword %q in name", m), true
	}
	if seg, ok := containsAny(f.Path, classicPathSegments); ok {
		return fmt.Sprintf("classic folder %q in path", seg), true
	}
	return "", false
}

func containsAny(s string, subs []string) (string, bool) {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}
