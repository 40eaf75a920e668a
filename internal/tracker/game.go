package tracker

import (
	"strconv"
	"time"

	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
)

const (
	classicGameMode       = "CLASSIC"
	customGameType        = "CUSTOM_GAME"
	customLobbyMinPlayers = 10
)

const (
	blueTeamID = 100
	redTeamID  = 200
)

// GameStart carries everything the notifier needs to announce a match.
type GameStart struct {
	SummonerName  string
	GameMode      string
	Champion      string
	ChampionImage string
	BlueTeam      []string
	RedTeam       []string
	StartedAt     time.Time
}

// Qualifies decides whether a detected match is announcement-worthy: it must
// be on the standard competitive map, and a custom lobby must have filled up
// with 10 human players. Custom lobbies padded with bots are ignored.
func Qualifies(game *riotapi.CurrentGameInfo) bool {
	if game.GameMode != classicGameMode {
		return false
	}
	if game.GameType == customGameType && game.HumanParticipants() < customLobbyMinPlayers {
		return false
	}
	return true
}

// PostedGameKey builds the deduplication token recorded per guild once a
// (game, account) pair has been announced.
func PostedGameKey(gameID int64, puuid string) string {
	return strconv.FormatInt(gameID, 10) + ":" + puuid
}
