package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TruncateString shortens s to max runes, appending "..." when cut.
func TruncateString(s string, max int) string {
	if max <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// FormatDuration renders a duration as mm:ss for the session summary.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// GetUniqueFilename returns name, or name with a numeric suffix if a
// file with that name already exists in its directory.
func GetUniqueFilename(name string) string {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
