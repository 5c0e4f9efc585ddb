// Package selfupdate checks GitHub releases for newer versions of flashy
// and replaces the running binary with a verified download.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "EkalavyanS"
	defaultRepo    = "Flashy"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second
)

// Checker talks to the GitHub releases API.
type Checker struct {
	owner    string
	repo     string
	baseURL  string
	client   *http.Client
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the releases API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepository points the checker at another owner/repo.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the flashy releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:    defaultOwner,
		repo:     defaultRepo,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: defaultTimeout},
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type release struct {
	TagName string         `json:"tag_name"`
	HTMLURL string         `json:"html_url"`
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// assetURL returns the download URL of the asset called name.
func (r *release) assetURL(name string) (string, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a.DownloadURL, true
		}
	}
	return "", false
}

// fetchRelease loads the release tagged tag, or the latest release when
// tag is empty.
func (c *Checker) fetchRelease(ctx context.Context, tag string) (*release, error) {
	path := "releases/latest"
	if tag != "" {
		path = "releases/tags/" + canonical(tag)
	}
	url := fmt.Sprintf("%s/repos/%s/%s/%s", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch release: HTTP %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &rel, nil
}

// Check fetches the latest release and compares it with input.Version.
// Versions that are not valid semver, such as development builds, never
// report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.fetchRelease(ctx, "")
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		CurrentVersion: input.Version,
		LatestVersion:  rel.TagName,
		ReleaseURL:     rel.HTMLURL,
	}
	current, latest := canonical(input.Version), canonical(rel.TagName)
	if semver.IsValid(current) && semver.IsValid(latest) {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result, nil
}

// canonical adds the "v" prefix semver requires.
func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
