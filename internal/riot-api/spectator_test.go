package riotapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(url string) *Client {
	c := NewClient("RGAPI-test")
	c.baseURL = url
	c.ddragonBaseURL = url
	return c
}

func TestGetActiveGameDecodesLiveMatch(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Riot-Token")
		fmt.Fprint(w, `{
			"gameId": 4815162342,
			"gameMode": "CLASSIC",
			"gameType": "MATCHED_GAME",
			"gameStartTime": 1700000000000,
			"gameLength": 600,
			"platformId": "EUW1",
			"participants": [
				{"teamId": 100, "championId": 1, "puuid": "puuid-1", "riotId": "player#one"},
				{"teamId": 200, "championId": 2, "puuid": "puuid-2", "bot": true}
			]
		}`)
	}))
	defer server.Close()

	game, err := testClient(server.URL).GetActiveGame("euw", "puuid-1")
	if err != nil {
		t.Fatalf("GetActiveGame: %v", err)
	}
	if game == nil {
		t.Fatal("GetActiveGame returned nil game")
	}
	if gotToken != "RGAPI-test" {
		t.Errorf("X-Riot-Token = %q, want RGAPI-test", gotToken)
	}
	if game.GameID != 4815162342 || game.GameMode != "CLASSIC" {
		t.Errorf("game = %+v", game)
	}
	if len(game.Participants) != 2 || game.Participants[1].Bot != true {
		t.Errorf("participants = %+v", game.Participants)
	}
	if game.HumanParticipants() != 1 {
		t.Errorf("HumanParticipants() = %d, want 1", game.HumanParticipants())
	}
}

func TestGetActiveGameNotFoundMeansNotInMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"message":"Data not found","status_code":404}}`, http.StatusNotFound)
	}))
	defer server.Close()

	game, err := testClient(server.URL).GetActiveGame("euw", "puuid-1")
	if err != nil {
		t.Fatalf("GetActiveGame: %v, want nil error on 404", err)
	}
	if game != nil {
		t.Fatalf("game = %+v, want nil on 404", game)
	}
}

func TestGetActiveGameUnauthorizedIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"message":"Forbidden","status_code":403}}`, http.StatusForbidden)
	}))
	defer server.Close()

	game, err := testClient(server.URL).GetActiveGame("euw", "puuid-1")
	if err == nil {
		t.Fatal("GetActiveGame returned nil error on 403")
	}
	if game != nil {
		t.Fatalf("game = %+v, want nil on 403", game)
	}
	if !IsUnauthorizedError(err) {
		t.Errorf("IsUnauthorizedError(%v) = false, want true", err)
	}
	if IsNotFoundError(err) {
		t.Errorf("IsNotFoundError(%v) = true, want false", err)
	}
}

func TestGetActiveGameUnknownRegion(t *testing.T) {
	if _, err := NewClient("RGAPI-test").GetActiveGame("mars", "puuid-1"); err == nil {
		t.Fatal("GetActiveGame accepted an unknown region")
	}
}

func TestMakeRequestRetriesAfterThrottle(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"gameId": 1}`)
	}))
	defer server.Close()

	game, err := testClient(server.URL).GetActiveGame("euw", "puuid-1")
	if err != nil {
		t.Fatalf("GetActiveGame: %v", err)
	}
	if game == nil || game.GameID != 1 {
		t.Fatalf("game = %+v, want game 1 after retry", game)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}
