package utils

// CalculateWinRate returns the win percentage over wins+losses games, or 0
// when no games were played.
func CalculateWinRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}
