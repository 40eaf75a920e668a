package riotapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetAccountByRiotID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, `{"puuid": "puuid-1", "gameName": "Player", "tagLine": "EUW"}`)
	}))
	defer server.Close()

	account, err := testClient(server.URL).GetAccountByRiotID("Player", "EUW")
	if err != nil {
		t.Fatalf("GetAccountByRiotID: %v", err)
	}
	if gotPath != "/riot/account/v1/accounts/by-riot-id/Player/EUW" {
		t.Errorf("path = %q", gotPath)
	}
	if account.PUUID != "puuid-1" {
		t.Errorf("account = %+v", account)
	}
	if got := account.RiotID(); got != "Player#EUW" {
		t.Errorf("RiotID() = %q, want Player#EUW", got)
	}
}

func TestGetSummonerRankPicksSoloQueue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"queueType": "RANKED_FLEX_SR",  "tier": "SILVER", "rank": "I",  "leaguePoints": 10},
			{"queueType": "RANKED_SOLO_5x5", "tier": "GOLD",   "rank": "II", "leaguePoints": 34, "wins": 60, "losses": 40}
		]`)
	}))
	defer server.Close()

	entry, err := testClient(server.URL).GetSummonerRank("euw", "summoner-1")
	if err != nil {
		t.Fatalf("GetSummonerRank: %v", err)
	}
	if entry.Tier != "GOLD" || entry.Rank != "II" || entry.LeaguePoints != 34 {
		t.Errorf("entry = %+v, want the solo queue entry", entry)
	}
}

func TestGetSummonerRankUnranked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	entry, err := testClient(server.URL).GetSummonerRank("euw", "summoner-1")
	if err != nil {
		t.Fatalf("GetSummonerRank: %v", err)
	}
	if entry.Tier != "UNRANKED" {
		t.Errorf("entry = %+v, want UNRANKED fallback", entry)
	}
}

func TestSetAPIKey(t *testing.T) {
	client := NewClient("")
	if _, ok := client.APIKey(); ok {
		t.Fatal("APIKey() reported a key on an empty client")
	}

	client.SetAPIKey("RGAPI-new")
	key, ok := client.APIKey()
	if !ok || key != "RGAPI-new" {
		t.Fatalf("APIKey() = %q, %v after SetAPIKey", key, ok)
	}
}

func TestPlatformHost(t *testing.T) {
	tests := []struct {
		region string
		want   string
	}{
		{"na", "na1"},
		{"NA", "na1"},
		{"euw", "euw1"},
		{"eune", "eun1"},
		{"kr", "kr"},
		{"las", "la2"},
		{"oce", "oc1"},
	}

	for _, tt := range tests {
		host, err := PlatformHost(tt.region)
		if err != nil {
			t.Errorf("PlatformHost(%q): %v", tt.region, err)
			continue
		}
		if host != tt.want {
			t.Errorf("PlatformHost(%q) = %q, want %q", tt.region, host, tt.want)
		}
	}

	if _, err := PlatformHost("mars"); err == nil {
		t.Error("PlatformHost accepted an unknown region")
	}
	if ValidRegion("mars") {
		t.Error("ValidRegion accepted an unknown region")
	}
	if !ValidRegion("br") {
		t.Error("ValidRegion rejected br")
	}
	if len(Regions()) != 12 {
		t.Errorf("len(Regions()) = %d, want 12", len(Regions()))
	}
}
