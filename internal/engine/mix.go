package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// canonicalMix validates mix against the configured sources and returns it as
// an ordered slice following source configuration order. Sources absent from
// mix appear with a zero share.
func canonicalMix(sources []EnergySource, mix EnergyMix) ([]MixShare, error) {
	known := make(map[string]bool, len(sources))
	for _, s := range sources {
		known[s.Name] = true
	}

	// Sorted so the first reported problem does not depend on map order.
	names := make([]string, 0, len(mix))
	for name := range mix {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		share := mix[name]
		if !known[name] {
			return nil, newInputError(ErrInvalidMix, "mix."+name, share, "unknown energy source")
		}
		if math.IsNaN(share) || math.IsInf(share, 0) || share < 0 || share > 1 {
			return nil, newInputError(ErrInvalidMix, "mix."+name, share, "share must be in [0, 1]")
		}
	}

	out := make([]MixShare, 0, len(sources))
	var sum float64
	for _, s := range sources {
		share := mix[s.Name]
		sum += share
		out = append(out, MixShare{Source: s.Name, Share: share})
	}

	if math.Abs(sum-1) > MixTolerance {
		return nil, newInputError(ErrInvalidMix, "mix", FormatMix(out), fmt.Sprintf("shares sum to %v, want 1 ± %g", sum, MixTolerance))
	}
	return out, nil
}

// FormatMix renders a canonical mix as comma-separated name=share pairs,
// e.g. "solar=0.3,gas=0.7".
func FormatMix(mix []MixShare) string {
	var b strings.Builder
	for i, m := range mix {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(m.Source)
		b.WriteByte('=')
		b.WriteString(formatFloat(m.Share))
	}
	return b.String()
}
