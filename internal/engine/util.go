package engine

import "strconv"

// formatFloat formats a float with the fewest digits that round-trip.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
