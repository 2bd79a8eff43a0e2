// Package update compares the running version with the latest GitHub release.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultAPI is the GitHub REST endpoint.
const DefaultAPI = "https://api.github.com"

// Result holds the outcome of an update check.
type Result struct {
	Latest    string // latest version tag without "v" (e.g. "0.2.0")
	Current   string
	UpdateURL string // release page
}

// NeedsUpdate returns true if the latest version is newer than current.
func (r *Result) NeedsUpdate() bool {
	return r != nil && compareVersions(r.Latest, r.Current) > 0
}

type ghRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries the latest release of one repository.
type Checker struct {
	API    string
	Owner  string
	Repo   string
	Client *http.Client
}

// NewChecker returns a Checker for owner/repo against DefaultAPI with a 3s timeout.
func NewChecker(owner, repo string) *Checker {
	return &Checker{
		API:    DefaultAPI,
		Owner:  owner,
		Repo:   repo,
		Client: &http.Client{Timeout: 3 * time.Second},
	}
}

// Check compares currentVersion with the latest release. Dev builds are
// never reported as outdated.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*Result, error) {
	current := strings.TrimPrefix(currentVersion, "v")
	if current == "" || current == "dev" {
		return &Result{Current: current}, nil
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimSuffix(c.API, "/"), c.Owner, c.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update check: %s", resp.Status)
	}

	var rel ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("update check: decode release: %w", err)
	}

	return &Result{
		Latest:    strings.TrimPrefix(rel.TagName, "v"),
		Current:   current,
		UpdateURL: rel.HTMLURL,
	}, nil
}

// compareVersions compares two semver-ish strings (major.minor.patch).
// Returns >0 if a > b, <0 if a < b, 0 if equal.
func compareVersions(a, b string) int {
	ap := parseVersion(a)
	bp := parseVersion(b)
	for i := 0; i < 3; i++ {
		if ap[i] != bp[i] {
			return ap[i] - bp[i]
		}
	}
	return 0
}

// parseVersion splits "1.2.3" into [1, 2, 3]. Missing parts default to 0.
// A pre-release suffix on the patch ("3-rc1") is ignored.
func parseVersion(v string) [3]int {
	var parts [3]int
	for i, s := range strings.SplitN(v, ".", 3) {
		s, _, _ = strings.Cut(s, "-")
		n, _ := strconv.Atoi(s)
		parts[i] = n
	}
	return parts
}
