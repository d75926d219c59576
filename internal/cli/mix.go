package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/aipower-model/internal/config"
	"github.com/rshade/aipower-model/internal/engine"
)

// ParseMix parses "solar=0.3,gas=0.7" into an EnergyMix. Share validity is
// left to the engine.
func ParseMix(s string) (engine.EnergyMix, error) {
	mix := engine.EnergyMix{}
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid mix entry %q: want source=share", pair)
		}
		if _, dup := mix[name]; dup {
			return nil, fmt.Errorf("invalid mix: source %q listed twice", name)
		}
		share, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mix share for %s: %w", name, err)
		}
		mix[name] = share
	}
	if len(mix) == 0 {
		return nil, fmt.Errorf("invalid mix %q: no entries", s)
	}
	return mix, nil
}

// resolveMix accepts either a grid mix name or a source=share list.
func resolveMix(grid config.Grid, s string) (engine.EnergyMix, error) {
	if m, ok := grid.Mix(s); ok {
		return m.Shares, nil
	}
	return ParseMix(s)
}
