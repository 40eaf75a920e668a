package riotapi

import (
	"encoding/json"
	"fmt"
)

// CurrentGameInfo describes a live match as reported by the spectator endpoint.
type CurrentGameInfo struct {
	GameID            int64                    `json:"gameId"`
	GameMode          string                   `json:"gameMode"`
	GameType          string                   `json:"gameType"`
	GameStartTime     int64                    `json:"gameStartTime"` // unix millis, 0 while loading
	GameLength        int64                    `json:"gameLength"`
	PlatformID        string                   `json:"platformId"`
	Participants      []CurrentGameParticipant `json:"participants"`
}

type CurrentGameParticipant struct {
	TeamID     int    `json:"teamId"`
	ChampionID int64  `json:"championId"`
	PUUID      string `json:"puuid"`
	SummonerID string `json:"summonerId"`
	RiotID     string `json:"riotId"`
	Bot        bool   `json:"bot"`
}

// HumanParticipants returns the number of non-bot players in the match.
func (g *CurrentGameInfo) HumanParticipants() int {
	count := 0
	for _, p := range g.Participants {
		if !p.Bot {
			count++
		}
	}
	return count
}

// GetActiveGame fetches the live match a player is currently in, if any.
// A nil game with a nil error means the player is confirmed to not be in a
// match. Any other failure, including a rejected credential, is returned as
// an error for the caller to classify.
func (c *Client) GetActiveGame(region, puuid string) (*CurrentGameInfo, error) {
	base, err := c.platformURL(region)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", base, puuid)

	resp, err := c.makeRequest(url)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	var game CurrentGameInfo
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return &game, nil
}
