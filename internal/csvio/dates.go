package csvio

import "time"

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
	readableLayout  = "January 2, 2006 3:04 PM"
)

// flexibleLayouts is the decode priority order; the first layout that
// parses wins.
var flexibleLayouts = []string{readableLayout, dateLayout, timestampLayout}

func formatDate(t time.Time) string      { return t.Format(dateLayout) }
func formatTimestamp(t time.Time) string { return t.Format(timestampLayout) }

// parseFlexibleDate tries each known layout in order. The second return is
// false when none of them match; callers decide the fallback (now for
// required dates, nil for optional ones).
func parseFlexibleDate(s string) (time.Time, bool) {
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
