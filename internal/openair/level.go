package openair

import "strings"

// formatLevel rewrites an altitude ("3500 ft") as OpenAir "3500ALT". Flight
// levels and SFC pass through.
func formatLevel(level string) string {
	if alt, ok := strings.CutSuffix(level, " ft"); ok {
		return alt + "ALT"
	}
	return level
}
