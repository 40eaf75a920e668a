package riotapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

func (c *Client) makeRequest(url string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("error waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if key, ok := c.APIKey(); ok {
		req.Header.Set("X-Riot-Token", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		resp.Body.Close()
		if retryAfter != "" {
			seconds, _ := strconv.Atoi(retryAfter)
			time.Sleep(time.Duration(seconds) * time.Second)
		} else {
			time.Sleep(1 * time.Second)
		}
		return c.makeRequest(url)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		headers := resp.Header
		resp.Body.Close()
		return nil, &RiotAPIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Headers:    headers,
		}
	}

	return resp, nil
}
