package utils

import "strings"

var tierColors = map[string]int{
	"UNRANKED":    0xCCCCCC,
	"IRON":        0x3C3C3C,
	"BRONZE":      0xCD7F32,
	"SILVER":      0xC0C0C0,
	"GOLD":        0xFFD700,
	"PLATINUM":    0x00FFCC,
	"EMERALD":     0x50C878,
	"DIAMOND":     0x00BFFF,
	"MASTER":      0x800080,
	"GRANDMASTER": 0xFF4500,
	"CHALLENGER":  0x1E90FF,
}

// GetRankColor returns the embed color for a ranked tier, white for anything
// unknown.
func GetRankColor(tier string) int {
	if color, ok := tierColors[strings.ToUpper(tier)]; ok {
		return color
	}
	return 0xFFFFFF
}
