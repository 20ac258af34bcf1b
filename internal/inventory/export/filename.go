package export

import (
	"time"
)

const (
	fileExtension   = ".csv"
	timestampLayout = "2006-01-02T15-04-05"
)

// Filename builds {stem}{suffix}_{timestamp}.csv.
// The timestamp is now in UTC, truncated to whole seconds, with colons replaced.
func Filename(stem, suffix string, now time.Time) string {
	return stem + suffix + "_" + now.UTC().Truncate(time.Second).Format(timestampLayout) + fileExtension
}
