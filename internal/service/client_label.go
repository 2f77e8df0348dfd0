package service

import (
	"strings"

	"github.com/mssola/useragent"
)

// clientLabel condenses a raw User-Agent header into a short human-readable
// label ("Chrome 120 / Linux") for access-log display. The raw header is
// stored alongside; the label is a convenience, never a source of truth.
func clientLabel(ua string) string {
	if ua == "" {
		return ""
	}
	parsed := useragent.New(ua)
	name, version := parsed.Browser()
	if name == "" {
		return ""
	}
	parts := []string{name}
	if version != "" {
		if i := strings.IndexByte(version, '.'); i > 0 {
			version = version[:i]
		}
		parts[0] = name + " " + version
	}
	if os := parsed.OS(); os != "" {
		parts = append(parts, os)
	}
	return strings.Join(parts, " / ")
}
