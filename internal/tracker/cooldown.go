package tracker

import "math"

// The Riot development rate budget resets every 2 minutes and allows 100
// requests per window. A quarter of the budget is reserved for on-demand
// requests outside the poll loop (registration lookups, rank queries), and
// each polled account can cost up to 3 requests in the worst case (spectator
// lookup, champion metadata refresh, account refresh).
const (
	budgetWindowSeconds       = 120
	requestQuota              = 100
	overheadRatio             = 0.75
	requestsPerAccountPerLoop = 3
)

// Cooldown computes how many seconds the poll loop must sleep between
// iterations so that polling activeCount accounts once per iteration stays
// inside the rate budget. A floor of one account keeps the interval non-zero
// when nobody is registered; with the floor the minimum cooldown is 4.8s.
// The result is rounded to 2 decimal places.
func Cooldown(activeCount int) float64 {
	if activeCount < 1 {
		activeCount = 1
	}

	cooldown := (budgetWindowSeconds / (requestQuota * overheadRatio)) *
		float64(activeCount) * requestsPerAccountPerLoop

	return math.Round(cooldown*100) / 100
}
