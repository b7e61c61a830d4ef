// Package forge resolves the latest tagged version of a repository hosted
// on a git forge, over the forge's API.
package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/s3dev/gitvck/domain"
)

const perPage = 100

// client is one forge API. The project argument is the full path below the
// host ("owner/repo", deeper for subgroups).
type client interface {
	name() string
	matchesURL(rawURL string) bool
	listTags(ctx context.Context, project, token string) ([]string, error)
}

// Source queries a forge for a repository's tags and picks the greatest one
// under version precedence, not the most recently created.
type Source struct {
	token   string
	clients []client
}

// New creates a Source. An empty token falls back to the environment; the
// httpClient only serves the GitHub API and may be nil.
func New(token string, httpClient *http.Client) *Source {
	if token == "" {
		token = TokenFromEnv()
	}
	return &Source{
		token: token,
		clients: []client{
			newGitLabClient(),
			newGitHubClient(httpClient),
		},
	}
}

func (it *Source) Kind() domain.SourceKind { return domain.KindForge }

// LatestVersion lists the repository's tags and returns the greatest
// version-shaped one in its original spelling.
func (it *Source) LatestVersion(ctx context.Context, req domain.CheckRequest) (string, error) {
	_, project, err := parseProject(req.Path)
	if err != nil {
		return "", err
	}

	token := req.Token
	if token == "" {
		token = it.token
	}

	tags, err := it.clientFor(req.Path).listTags(ctx, project, token)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("repository %q has no tags: %w", project, domain.ErrNoVersions)
	}

	latest, ok := domain.Latest(tags)
	if !ok {
		return "", fmt.Errorf("repository %q has no version-shaped tag: %w", project, domain.ErrNoVersions)
	}
	return latest, nil
}

// clientFor picks the forge owning the given path. Bare owner/repo
// spellings default to GitHub, matching the original contract.
func (it *Source) clientFor(rawURL string) client {
	for _, cl := range it.clients {
		if cl.matchesURL(rawURL) {
			return cl
		}
	}
	return it.clients[len(it.clients)-1]
}

// parseProject extracts the host (when present) and the project path from an
// owner/repo spelling, an HTTPS URL, or an scp-like git address.
func parseProject(raw string) (host, project string, err error) {
	addr := strings.TrimSpace(raw)
	addr = strings.TrimSuffix(addr, "/")
	addr = strings.TrimSuffix(addr, ".git")

	switch {
	case strings.Contains(addr, "://"):
		parsed, perr := url.Parse(addr)
		if perr != nil {
			return "", "", &domain.ParseError{Value: raw, Err: perr}
		}
		host = parsed.Host
		project = strings.Trim(parsed.Path, "/")
	case strings.HasPrefix(addr, "git@"):
		hostPart, pathPart, ok := strings.Cut(strings.TrimPrefix(addr, "git@"), ":")
		if !ok {
			return "", "", &domain.ParseError{Value: raw}
		}
		host = hostPart
		project = strings.Trim(pathPart, "/")
	default:
		project = addr
	}

	if !strings.Contains(project, "/") {
		return "", "", &domain.ParseError{Value: raw}
	}
	return host, project, nil
}

// TokenFromEnv returns a forge token from the environment, preferring the
// project-specific variable over the conventional one.
func TokenFromEnv() string {
	for _, key := range []string{"GITVCK_GITHUB_TOKEN", "GITHUB_TOKEN"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}
