package salon

// Listing endpoints default to 100 rows with a hard cap of 1000; search
// endpoints default to 50 with a cap of 500.
const (
	defaultListLimit   = 100
	maxListLimit       = 1000
	defaultSearchLimit = 50
	maxSearchLimit     = 500
)

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
