package forge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/s3dev/gitvck/domain"
)

// githubClient lists repository tags through the GitHub REST API.
type githubClient struct {
	httpClient *http.Client
}

func newGitHubClient(httpClient *http.Client) *githubClient {
	return &githubClient{httpClient: httpClient}
}

func (it *githubClient) name() string { return "github" }

func (it *githubClient) matchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "github.com")
}

func (it *githubClient) listTags(ctx context.Context, project, token string) ([]string, error) {
	owner, repo, found := strings.Cut(project, "/")
	if !found {
		return nil, &domain.ParseError{Value: project}
	}

	client := gh.NewClient(it.httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	var allTags []string
	opts := &gh.ListOptions{PerPage: perPage}
	for {
		tags, resp, err := client.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, classifyGitHubError(project, err)
		}
		for _, tag := range tags {
			allTags = append(allTags, tag.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allTags, nil
}

// classifyGitHubError translates the client's error types into the domain
// failure set so the caller can skip with the right reason.
func classifyGitHubError(project string, err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var respErr *gh.ErrorResponse

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("github rate limit for %q: %w", project, domain.ErrAccessDenied)
	case errors.As(err, &respErr):
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("repository %q: %w", project, domain.ErrNoVersions)
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("github status %d for %q: %w",
				respErr.Response.StatusCode, project, domain.ErrAccessDenied)
		}
	}
	return &domain.NetworkError{Op: fmt.Sprintf("list github tags for %q", project), Err: err}
}
