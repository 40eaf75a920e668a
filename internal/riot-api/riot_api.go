package riotapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

type Client struct {
	mu          sync.RWMutex
	apiKey      string
	httpClient  *http.Client
	rateLimiter *RateLimiter

	// overridden in tests to point at a local server
	baseURL        string
	ddragonBaseURL string

	champMu   sync.Mutex
	version   string
	champions map[int64]Champion
}

// NewClient creates and returns a new Client instance for interacting with the Riot API.
// It initializes the client with the provided API key and sets up a rate limiter.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		rateLimiter: NewRateLimiter(20, 100), // 20 requests per second, burst of 100
	}
}

// APIKey returns the current credential and whether one is set.
func (c *Client) APIKey() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey, c.apiKey != ""
}

// SetAPIKey replaces the credential used for all subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
}

func (c *Client) platformURL(region string) (string, error) {
	host, err := PlatformHost(region)
	if err != nil {
		return "", err
	}
	if c.baseURL != "" {
		return c.baseURL, nil
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", host), nil
}

func (c *Client) regionalURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return "https://europe.api.riotgames.com"
}

// GetAccountByRiotID fetches the account record of a player with the given
// gameName and tagLine ("gameName#tagLine").
func (c *Client) GetAccountByRiotID(gameName, tagLine string) (*Account, error) {
	encodedName := url.PathEscape(gameName)
	encodedTag := url.PathEscape(tagLine)
	url := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s", c.regionalURL(), encodedName, encodedTag)

	resp, err := c.makeRequest(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return &account, nil
}

// GetSummonerByPUUID fetches summoner data by puuid on the given region.
func (c *Client) GetSummonerByPUUID(region, puuid string) (*Summoner, error) {
	base, err := c.platformURL(region)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", base, puuid)

	resp, err := c.makeRequest(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var summoner Summoner
	if err := json.NewDecoder(resp.Body).Decode(&summoner); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return &summoner, nil
}

// GetSummonerRank fetches a summoner's current solo queue tier and rank.
func (c *Client) GetSummonerRank(region, riotSummonerID string) (*LeagueEntry, error) {
	base, err := c.platformURL(region)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s", base, riotSummonerID)

	resp, err := c.makeRequest(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var leagueEntries []LeagueEntry
	if err := json.NewDecoder(resp.Body).Decode(&leagueEntries); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	for _, entry := range leagueEntries {
		if entry.QueueType == "RANKED_SOLO_5x5" {
			return &entry, nil
		}
	}

	return &LeagueEntry{
		QueueType: "RANKED_SOLO_5x5",
		Tier:      "UNRANKED",
		Rank:      "",
	}, nil
}

type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (a *Account) RiotID() string {
	return fmt.Sprintf("%s#%s", a.GameName, a.TagLine)
}

type Summoner struct {
	RiotSummonerID string `json:"id"`
	RiotAccountID  string `json:"accountId"`
	PUUID          string `json:"puuid"`
	ProfileIconID  int    `json:"profileIconId"`
	RevisionDate   int64  `json:"revisionDate"`
	SummonerLevel  int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}
