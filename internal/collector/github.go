package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
)

const (
	// repositoriesPath lists repositories of the authenticated account.
	repositoriesPath = "user/repos"

	// basicAuthUsername is sent with basic auth; GitHub ignores it.
	basicAuthUsername = "username"
)

// Options configures the GitHub collector
type Options struct {
	BaseURL    string
	AuthScheme string // "basic" or "bearer"
	Timeout    time.Duration
}

// githubCollector implements Collector using the GitHub REST API
type githubCollector struct {
	client *github.Client
}

// NewGitHubCollector creates a new GitHub collector authenticating with token
func NewGitHubCollector(token string, opts Options) (Collector, error) {
	var httpClient *http.Client
	switch opts.AuthScheme {
	case "bearer":
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	case "", "basic":
		tp := &github.BasicAuthTransport{
			Username: basicAuthUsername,
			Password: token,
		}
		httpClient = tp.Client()
	default:
		return nil, fmt.Errorf("unknown auth scheme %q", opts.AuthScheme)
	}
	httpClient.Timeout = opts.Timeout

	client := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &githubCollector{client: client}, nil
}

// FetchRepositories retrieves the repository listing in a single request
func (c *githubCollector) FetchRepositories(ctx context.Context) (*FetchResult, error) {
	req, err := c.client.NewRequest(http.MethodGet, repositoriesPath, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to build request", err)
	}

	slog.Debug("fetching repositories", "url", req.URL.String())

	resp, err := c.client.BareDo(ctx, req)
	if resp == nil {
		return nil, apperrors.NewFetchError("request failed", err)
	}
	defer resp.Body.Close()

	slog.Debug("received response", "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return &FetchResult{StatusCode: resp.StatusCode}, apperrors.NewStatusError(resp.StatusCode)
	}
	if err != nil {
		return nil, apperrors.NewFetchError("request failed", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to read response body", err)
	}

	return &FetchResult{
		Body:       body,
		StatusCode: resp.StatusCode,
	}, nil
}
