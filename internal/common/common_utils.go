package common

import (
	"fmt"
	"strings"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// NormalizeTags splits a raw comma-separated tag string, trims whitespace and
// drops empties, preserving input order. " foo, bar ,, baz" -> [foo bar baz].
func NormalizeTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// PermanentMuteYear marks the boundary past which a mute renders as
// "permanent" rather than a countdown. The admin UI writes 9999-12-31 for
// permanent mutes.
const PermanentMuteYear = 9000

// IsPermanentMute reports whether a mute timestamp is the far-future sentinel.
func IsPermanentMute(until *time.Time) bool {
	return until != nil && until.Year() > PermanentMuteYear
}
