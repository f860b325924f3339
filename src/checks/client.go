// Package checks is a minimal GitHub Checks API client.
package checks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the GitHub Checks API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new checks client authenticated with token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// CreateCheckRun creates a check run in in_progress state against headSHA
// and returns its ID.
func (c *Client) CreateCheckRun(ctx context.Context, owner, repo, name, headSHA string) (int64, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/check-runs", c.baseURL, owner, repo)

	body := CreateRequest{
		Name:    name,
		HeadSHA: headSHA,
		Status:  StatusInProgress,
	}

	var run CheckRun
	if err := c.do(ctx, "POST", url, body, http.StatusCreated, &run); err != nil {
		return 0, err
	}

	return run.ID, nil
}

// UpdateCheckRun patches an existing check run. Annotation pushes and the
// final completed transition both go through here.
func (c *Client) UpdateCheckRun(ctx context.Context, owner, repo string, id int64, req UpdateRequest) error {
	url := fmt.Sprintf("%s/repos/%s/%s/check-runs/%d", c.baseURL, owner, repo, id)
	return c.do(ctx, "PATCH", url, req, http.StatusOK, nil)
}

// do sends one JSON request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, url string, body interface{}, wantStatus int, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API error %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}

	return nil
}
