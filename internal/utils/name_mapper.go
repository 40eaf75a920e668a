package utils

// A few champions keep a legacy internal name in the Riot API while their
// display name and image key diverge from it.
var renamedChampions = map[string]struct {
	display string
	image   string
}{
	"FiddleSticks": {display: "Fiddlesticks", image: "Fiddlesticks"},
	"MonkeyKing":   {display: "Wukong", image: "MonkeyKing"},
}

// ChampionNameMapper translates a champion name as reported by the API into
// either its display name or the key used in Data Dragon image URLs.
func ChampionNameMapper(apiName string, forImage bool) string {
	renamed, ok := renamedChampions[apiName]
	if !ok {
		return apiName
	}
	if forImage {
		return renamed.image
	}
	return renamed.display
}
