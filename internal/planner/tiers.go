package planner

import (
	"strings"

	"github.com/backmassage/smartencode/internal/config"
)

// Tier is a content category. Each tier maps to a fixed TierBundle.
type Tier string

const (
	TierGeneral   Tier = "general"
	TierAnimation Tier = "animation"
	TierClassic   Tier = "classic"
	TierElite     Tier = "4k_elite"
)

// TierBundle is the encoder parameter set for a tier.
type TierBundle struct {
	Tier       Tier
	Label      string
	Preset     string
	Tune       string // Empty = no tune.
	CRF        int
	MaxRate    string
	BufSize    string
	X264Params string
}

// Shared x264 motion-estimation and GOP settings.
const (
	x264Base = "subme=0:me_range=4:rc_lookahead=10"
	x264GOP  = "keyint=240:min-keyint=24:scenecut=40"
)

// tierBundles is ordered by classification priority.
var tierBundles = []TierBundle{
	{
		Tier:       TierElite,
		Label:      "4K Elite",
		Preset:     "slow",
		CRF:        18,
		MaxRate:    "8000k",
		BufSize:    "16000k",
		X264Params: "subme=2:me_range=4:rc_lookahead=10:me=hex:8x8dct=1:partitions=none:ref=4:bframes=3:b-adapt=1:direct=spatial:weightp=1:" + x264GOP + ":rc-lookahead=50",
	},
	{
		Tier:       TierAnimation,
		Label:      "Animation Pro",
		Preset:     "fast",
		Tune:       "animation",
		CRF:        21,
		MaxRate:    "6000k",
		BufSize:    "12000k",
		X264Params: x264Base + ":me=dia:no-chroma-me:8x8dct=0:partitions=none:ref=3:bframes=3:b-adapt=1:direct=spatial:weightp=1:" + x264GOP + ":deblock=-1,-1:psy-rd=0.4:0",
	},
	{
		Tier:       TierClassic,
		Label:      "Classic Master",
		Preset:     "slower",
		Tune:       "grain",
		CRF:        20,
		MaxRate:    "6000k",
		BufSize:    "12000k",
		X264Params: "subme=2:me_range=4:rc_lookahead=10:me=hex:8x8dct=1:ref=4:bframes=4:b-adapt=2:direct=auto:weightp=1:" + x264GOP + ":rc-lookahead=50:aq-mode=1:aq-strength=0.8",
	},
	{
		Tier:       TierGeneral,
		Label:      "General Elite",
		Preset:     "medium",
		Tune:       "film",
		CRF:        22,
		MaxRate:    "6000k",
		BufSize:    "12000k",
		X264Params: x264Base + ":me=hex:8x8dct=0:partitions=none:ref=3:bframes=3:b-adapt=1:direct=spatial:weightp=1:" + x264GOP,
	},
}

// Bundles returns the built-in tier bundles in classification priority order.
func Bundles() []TierBundle {
	out := make([]TierBundle, len(tierBundles))
	copy(out, tierBundles)
	return out
}

// BundleFor returns the bundle for tier with any configured overrides
// applied. Unknown tiers resolve to the general bundle.
func BundleFor(cfg *config.Config, tier Tier) TierBundle {
	b := tierBundles[len(tierBundles)-1]
	for _, tb := range tierBundles {
		if tb.Tier == tier {
			b = tb
			break
		}
	}
	if cfg == nil {
		return b
	}
	o, ok := cfg.TierOverrides[string(b.Tier)]
	if !ok {
		return b
	}
	if o.CRF > 0 {
		b.CRF = o.CRF
	}
	if o.Preset != "" {
		b.Preset = strings.ToLower(o.Preset)
	}
	switch t := strings.ToLower(o.Tune); t {
	case "":
	case "none":
		b.Tune = ""
	default:
		b.Tune = t
	}
	if o.MaxRate != "" {
		b.MaxRate = o.MaxRate
	}
	if o.BufSize != "" {
		b.BufSize = o.BufSize
	}
	return b
}
