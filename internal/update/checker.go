// Package update checks the GitHub Releases API for a newer mdgate version.
// The check is advisory: callers report the result and never block on it.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mdgate/mdgate/internal/resilience"
)

// DefaultAPIURL is the latest-release endpoint for mdgate.
const DefaultAPIURL = "https://api.github.com/repos/mdgate/mdgate/releases/latest"

// ErrNoRelease indicates the repository has no published release.
var ErrNoRelease = errors.New("update: no release found")

// Release describes the latest published release.
type Release struct {
	Version     string
	PublishedAt time.Time
	URL         string
}

// releaseResponse is the subset of the GitHub Releases API response we read.
type releaseResponse struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// Checker queries a releases endpoint for the latest version.
type Checker struct {
	apiURL string
	client *http.Client
	policy resilience.Policy
}

// NewChecker creates a Checker for apiURL. A nil client gets a 10 second
// timeout. Transient HTTP failures are retried with backoff.
func NewChecker(apiURL string, client *http.Client) *Checker {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Checker{
		apiURL: apiURL,
		client: client,
		policy: resilience.Policy{
			MaxRetries: 2,
			BaseDelay:  200 * time.Millisecond,
			MaxDelay:   2 * time.Second,
			Jitter:     true,
		},
	}
}

// Latest fetches the latest release metadata.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	var release *Release

	err := resilience.Retry(ctx, c.policy, func() error {
		r, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		release = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return release, nil
}

// IsUpdateAvailable reports whether the latest release is newer than the
// running version.
func (c *Checker) IsUpdateAvailable(ctx context.Context, current string) (bool, *Release, error) {
	release, err := c.Latest(ctx)
	if err != nil {
		return false, nil, err
	}
	if compareSemver(release.Version, current) <= 0 {
		return false, nil, nil
	}
	return true, release, nil
}

func (c *Checker) fetch(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, resilience.Permanent(fmt.Errorf("update: create request: %w", err))
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "mdgate-update-check")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, resilience.Permanent(ErrNoRelease)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, resilience.Permanent(fmt.Errorf("update: status %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("update: status %d", resp.StatusCode)
	}

	var body releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resilience.Permanent(fmt.Errorf("update: decode response: %w", err))
	}

	return &Release{
		Version:     body.TagName,
		PublishedAt: body.PublishedAt,
		URL:         body.HTMLURL,
	}, nil
}

// compareSemver compares two version strings, tolerating a "v" prefix and
// pre-release suffixes. Returns -1, 0, or 1.
func compareSemver(a, b string) int {
	ap := parseSemverParts(a)
	bp := parseSemverParts(b)
	for i := range 3 {
		if ap[i] > bp[i] {
			return 1
		}
		if ap[i] < bp[i] {
			return -1
		}
	}
	return 0
}

// parseSemverParts extracts [major, minor, patch] from a version string.
func parseSemverParts(v string) [3]int {
	v = strings.TrimPrefix(v, "v")

	var parts [3]int
	for i, seg := range strings.SplitN(v, ".", 3) {
		if idx := strings.IndexAny(seg, "-+"); idx >= 0 {
			seg = seg[:idx]
		}
		if n, err := strconv.Atoi(seg); err == nil {
			parts[i] = n
		}
	}
	return parts
}
