package bot

import (
	"strings"
	"testing"
	"time"

	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
	"github.com/creamy-cogs/league-live-tracker/internal/tracker"
)

func testAnnouncer() *Announcer {
	return NewAnnouncer(nil, riotapi.NewClient(""), "owner-1")
}

func TestBuildGameStartEmbed(t *testing.T) {
	start := &tracker.GameStart{
		SummonerName:  "Player#EUW",
		GameMode:      "CLASSIC",
		Champion:      "Wukong",
		ChampionImage: "MonkeyKing",
		BlueTeam:      []string{"Wukong", "Annie"},
		RedTeam:       []string{"Olaf"},
		StartedAt:     time.Now(),
	}

	embed := testAnnouncer().buildGameStartEmbed(start)

	if embed.Title != "Player#EUW has started a classic game!" {
		t.Errorf("title = %q", embed.Title)
	}
	if embed.Color != colorGameStart {
		t.Errorf("color = %#x, want %#x", embed.Color, colorGameStart)
	}
	if !strings.Contains(embed.Thumbnail.URL, "/img/champion/MonkeyKing.png") {
		t.Errorf("thumbnail = %q", embed.Thumbnail.URL)
	}
	if len(embed.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(embed.Fields))
	}
	if embed.Fields[0].Name != "Blue Team" || embed.Fields[0].Value != "Wukong, Annie" {
		t.Errorf("blue field = %+v", embed.Fields[0])
	}
	if embed.Fields[1].Name != "Red Team" || embed.Fields[1].Value != "Olaf" {
		t.Errorf("red field = %+v", embed.Fields[1])
	}
	if embed.Footer == nil || embed.Footer.Text == "" {
		t.Error("footer is missing")
	}
}

func TestBuildGameStartEmbedEmptyTeams(t *testing.T) {
	start := &tracker.GameStart{
		SummonerName: "Player#EUW",
		GameMode:     "CLASSIC",
		StartedAt:    time.Now(),
	}

	embed := testAnnouncer().buildGameStartEmbed(start)

	for _, field := range embed.Fields {
		if field.Value != "No teammates." {
			t.Errorf("%s = %q, want placeholder for an empty team", field.Name, field.Value)
		}
	}
}

func TestNotifyOwnerWithoutOwnerConfigured(t *testing.T) {
	announcer := NewAnnouncer(nil, riotapi.NewClient(""), "")
	if err := announcer.NotifyOwner("hello"); err == nil {
		t.Fatal("NotifyOwner succeeded without an owner id")
	}
}
