// Package moneypuck ingests per-season advanced skater stats from the
// MoneyPuck CSV feed.
package moneypuck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	baseURL = "https://moneypuck.com/moneypuck/playerData"

	// The feed host rejects default Go client fingerprints
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client downloads season CSV files, caching them under dataDir/raw
type Client struct {
	http    *http.Client
	dataDir string
}

// NewClient creates a CSV client with a 60 second timeout for the large files
func NewClient(dataDir string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		dataDir: dataDir,
	}
}

// DownloadSeason fetches the skaters CSV for a season start year. On a fetch
// failure a previously cached copy is used when available.
func (c *Client) DownloadSeason(ctx context.Context, year int) ([]byte, error) {
	url := fmt.Sprintf("%s/seasonSummary/%d/regular/skaters.csv", baseURL, year)
	cachePath := filepath.Join(c.dataDir, "raw", fmt.Sprintf("moneypuck_%d.csv", year))

	data, err := c.fetch(ctx, url)
	if err != nil {
		if cached, cerr := os.ReadFile(cachePath); cerr == nil {
			log.Warn("using cached advanced stats", "year", year, "error", err)
			return cached, nil
		}
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err == nil {
		if werr := os.WriteFile(cachePath, data, 0o644); werr != nil {
			log.Warn("failed to cache advanced stats", "year", year, "error", werr)
		}
	}

	return data, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
