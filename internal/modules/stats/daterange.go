package stats

import "time"

// Range tokens supported by the dashboard's time selector.
const (
	Range1Day   = "1day"
	Range7Days  = "7days"
	Range30Days = "30days"
	Range90Days = "90days"
	Range1Year  = "1year"

	DefaultRange = Range30Days
)

// resolveRangeAt maps a symbolic range token to a concrete [start, end] pair
// anchored on now. Unrecognized tokens silently fall back to the 30-day
// window. Ranges are relative and recomputed on every call.
func resolveRangeAt(token string, now time.Time) (start, end time.Time) {
	end = now
	switch token {
	case Range1Day:
		start = end.AddDate(0, 0, -1)
	case Range7Days:
		start = end.AddDate(0, 0, -7)
	case Range30Days:
		start = end.AddDate(0, 0, -30)
	case Range90Days:
		start = end.AddDate(0, 0, -90)
	case Range1Year:
		start = end.AddDate(-1, 0, 0)
	default:
		start = end.AddDate(0, 0, -30)
	}
	return start, end
}
