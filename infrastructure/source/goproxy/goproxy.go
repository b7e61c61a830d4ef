// Package goproxy resolves the latest tagged version of a Go module from a
// module proxy.
package goproxy

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"

	"github.com/s3dev/gitvck/domain"
)

const defaultTimeout = 5 * time.Second

var defaultBaseURL *url.URL

func init() {
	defaultBaseURL, _ = url.Parse("https://proxy.golang.org")
}

// Source queries a Go module proxy's @v/list endpoint.
type Source struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// New creates a Source. A nil httpClient gets a client with the default
// timeout; a nil baseURL points at proxy.golang.org.
func New(httpClient *http.Client, baseURL *url.URL) *Source {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == nil {
		baseURL = defaultBaseURL
	}
	return &Source{httpClient: httpClient, baseURL: baseURL}
}

func (it *Source) Kind() domain.SourceKind { return domain.KindGoProxy }

// LatestVersion lists the module's tagged versions and returns the newest
// one under semver precedence.
func (it *Source) LatestVersion(ctx context.Context, req domain.CheckRequest) (string, error) {
	escaped, err := module.EscapePath(req.Path)
	if err != nil {
		return "", &domain.ParseError{Value: req.Path, Err: err}
	}
	endpoint := fmt.Sprintf("%s/%s/@v/list", it.baseURL, escaped)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &domain.NetworkError{Op: "build proxy request", Err: err}
	}

	response, err := it.httpClient.Do(request)
	if err != nil {
		return "", &domain.NetworkError{Op: fmt.Sprintf("query proxy for %q", req.Path), Err: err}
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusNotFound, response.StatusCode == http.StatusGone:
		return "", fmt.Errorf("module %q: %w", req.Path, domain.ErrNoVersions)
	case response.StatusCode == http.StatusUnauthorized,
		response.StatusCode == http.StatusForbidden,
		response.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("proxy status %d for %q: %w",
			response.StatusCode, req.Path, domain.ErrAccessDenied)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return "", &domain.NetworkError{
			Op: fmt.Sprintf("query proxy for %q: status %d", req.Path, response.StatusCode),
		}
	}

	var versions []string
	scanner := bufio.NewScanner(response.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if semver.IsValid(normalizeVersion(line)) {
			versions = append(versions, line)
		}
	}
	if err = scanner.Err(); err != nil {
		return "", &domain.NetworkError{Op: "read proxy response", Err: err}
	}

	if len(versions) == 0 {
		return "", fmt.Errorf("module %q has no tagged versions: %w", req.Path, domain.ErrNoVersions)
	}
	sortVersionsDescending(versions)
	return versions[0], nil
}

// sortVersionsDescending orders versions newest first under semver
// precedence, falling back to string comparison for odd inputs.
func sortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])
		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return versions[i] > versions[j]
	})
}

func normalizeVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
