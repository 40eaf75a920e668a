package tracker

import (
	"testing"

	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
)

func participants(humans, bots int) []riotapi.CurrentGameParticipant {
	var out []riotapi.CurrentGameParticipant
	for i := 0; i < humans; i++ {
		out = append(out, riotapi.CurrentGameParticipant{TeamID: 100})
	}
	for i := 0; i < bots; i++ {
		out = append(out, riotapi.CurrentGameParticipant{TeamID: 200, Bot: true})
	}
	return out
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		name string
		game riotapi.CurrentGameInfo
		want bool
	}{
		{
			"matched classic game",
			riotapi.CurrentGameInfo{GameMode: "CLASSIC", GameType: "MATCHED_GAME", Participants: participants(10, 0)},
			true,
		},
		{
			"aram is ignored",
			riotapi.CurrentGameInfo{GameMode: "ARAM", GameType: "MATCHED_GAME", Participants: participants(10, 0)},
			false,
		},
		{
			"full custom lobby",
			riotapi.CurrentGameInfo{GameMode: "CLASSIC", GameType: "CUSTOM_GAME", Participants: participants(10, 0)},
			true,
		},
		{
			"short-handed custom lobby",
			riotapi.CurrentGameInfo{GameMode: "CLASSIC", GameType: "CUSTOM_GAME", Participants: participants(9, 0)},
			false,
		},
		{
			"custom lobby padded with bots",
			riotapi.CurrentGameInfo{GameMode: "CLASSIC", GameType: "CUSTOM_GAME", Participants: participants(9, 1)},
			false,
		},
		{
			"small matched game still qualifies",
			riotapi.CurrentGameInfo{GameMode: "CLASSIC", GameType: "MATCHED_GAME", Participants: participants(2, 0)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Qualifies(&tt.game); got != tt.want {
				t.Errorf("Qualifies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostedGameKey(t *testing.T) {
	got := PostedGameKey(4815162342, "puuid-abc")
	want := "4815162342:puuid-abc"
	if got != want {
		t.Errorf("PostedGameKey() = %q, want %q", got, want)
	}
}
