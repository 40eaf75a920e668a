package riotapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ddragonServer(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		switch r.URL.Path {
		case "/api/versions.json":
			fmt.Fprint(w, `["14.16.1", "14.15.1"]`)
		case "/cdn/14.16.1/data/en_US/champion.json":
			fmt.Fprint(w, `{"data": {
				"Annie":        {"key": "1",  "id": "Annie",        "name": "Annie"},
				"MonkeyKing":   {"key": "62", "id": "MonkeyKing",   "name": "Wukong"},
				"FiddleSticks": {"key": "9",  "id": "Fiddlesticks", "name": "Fiddlesticks"}
			}}`)
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

func TestPrimeChampionData(t *testing.T) {
	var requests int
	server := ddragonServer(t, &requests)
	defer server.Close()

	client := testClient(server.URL)
	if err := client.PrimeChampionData(); err != nil {
		t.Fatalf("PrimeChampionData: %v", err)
	}

	if got := client.Version(); got != "14.16.1" {
		t.Errorf("Version() = %q, want 14.16.1", got)
	}

	champions, err := client.Champions()
	if err != nil {
		t.Fatalf("Champions: %v", err)
	}
	if len(champions) != 3 {
		t.Fatalf("len(champions) = %d, want 3", len(champions))
	}
	if champions[62].Name != "Wukong" || champions[62].ImageKey != "MonkeyKing" {
		t.Errorf("champion 62 = %+v, want Wukong/MonkeyKing", champions[62])
	}

	// Priming and reading should not trigger further downloads.
	if _, err := client.Champions(); err != nil {
		t.Fatalf("Champions: %v", err)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 (versions + champion list)", requests)
	}
}

func TestChampionsLoadsLazily(t *testing.T) {
	var requests int
	server := ddragonServer(t, &requests)
	defer server.Close()

	client := testClient(server.URL)
	champions, err := client.Champions()
	if err != nil {
		t.Fatalf("Champions: %v", err)
	}
	if champions[1].Name != "Annie" {
		t.Errorf("champion 1 = %+v, want Annie", champions[1])
	}
}

func TestVersionFallsBackWhenUnprimed(t *testing.T) {
	if got := NewClient("RGAPI-test").Version(); got != defaultDDragonVersion {
		t.Errorf("Version() = %q, want %q", got, defaultDDragonVersion)
	}
}
