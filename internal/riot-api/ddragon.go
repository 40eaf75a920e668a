package riotapi

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Champion holds the display name and the image key of one champion. The two
// differ for a handful of champions (e.g. Wukong's images are stored under
// MonkeyKing).
type Champion struct {
	Name     string
	ImageKey string
}

const defaultDDragonVersion = "14.15.1"

func (c *Client) ddragonURL() string {
	if c.ddragonBaseURL != "" {
		return c.ddragonBaseURL
	}
	return "https://ddragon.leagueoflegends.com"
}

// GetCurrentDDragonVersion fetches the current version of data dragon.
func (c *Client) GetCurrentDDragonVersion() (string, error) {
	url := c.ddragonURL() + "/api/versions.json"

	resp, err := c.makeRequest(url)
	if err != nil {
		return defaultDDragonVersion, fmt.Errorf("error making request: %w. using default version", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return defaultDDragonVersion, fmt.Errorf("error reading response body: %w. using default version", err)
	}

	var versions []string
	err = json.Unmarshal(body, &versions)
	if err != nil {
		return defaultDDragonVersion, fmt.Errorf("error unmarshaling JSON: %w. using default version", err)
	}

	if len(versions) == 0 {
		return defaultDDragonVersion, fmt.Errorf("no versions found in the response. using default version")
	}

	return versions[0], nil
}

// PrimeChampionData resolves the current data dragon version and downloads the
// champion list. Called once at startup, before the poll loop's first
// iteration; both values are then cached for the process lifetime.
func (c *Client) PrimeChampionData() error {
	c.champMu.Lock()
	defer c.champMu.Unlock()
	return c.loadChampionsLocked()
}

// Version returns the cached data dragon version, falling back to a default
// when champion data was never primed.
func (c *Client) Version() string {
	c.champMu.Lock()
	defer c.champMu.Unlock()
	if c.version == "" {
		return defaultDDragonVersion
	}
	return c.version
}

// Champions returns the champion id to champion mapping, downloading it on
// first use.
func (c *Client) Champions() (map[int64]Champion, error) {
	c.champMu.Lock()
	defer c.champMu.Unlock()

	if c.champions != nil {
		return c.champions, nil
	}
	if err := c.loadChampionsLocked(); err != nil {
		return nil, err
	}
	return c.champions, nil
}

func (c *Client) loadChampionsLocked() error {
	version, err := c.GetCurrentDDragonVersion()
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.ddragonURL(), version)
	resp, err := c.makeRequest(url)
	if err != nil {
		return fmt.Errorf("error requesting champion data: %w", err)
	}
	defer resp.Body.Close()

	var raw struct {
		Data map[string]struct {
			Key  string `json:"key"`
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("error decoding champion data: %w", err)
	}

	champions := make(map[int64]Champion, len(raw.Data))
	for _, champ := range raw.Data {
		id, err := strconv.ParseInt(champ.Key, 10, 64)
		if err != nil {
			return fmt.Errorf("champion key %q is not numeric: %w", champ.Key, err)
		}
		champions[id] = Champion{Name: champ.Name, ImageKey: champ.ID}
	}

	c.version = version
	c.champions = champions
	return nil
}
