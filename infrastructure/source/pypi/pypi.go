// Package pypi resolves the latest released version of a package from the
// PyPI JSON API.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/s3dev/gitvck/domain"
)

const defaultTimeout = 5 * time.Second

var defaultBaseURL *url.URL

func init() {
	defaultBaseURL, _ = url.Parse("https://pypi.org")
}

// Source queries a PyPI-compatible index. One request per check.
type Source struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// New creates a Source. A nil httpClient gets a client with the default
// timeout; a nil baseURL points at pypi.org.
func New(httpClient *http.Client, baseURL *url.URL) *Source {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == nil {
		baseURL = defaultBaseURL
	}
	return &Source{httpClient: httpClient, baseURL: baseURL}
}

func (it *Source) Kind() domain.SourceKind { return domain.KindRegistry }

// LatestVersion fetches the package metadata and returns info.version, the
// index's idea of the current release.
func (it *Source) LatestVersion(ctx context.Context, req domain.CheckRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/pypi/%s/json", it.baseURL, url.PathEscape(req.Path))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &domain.NetworkError{Op: "build pypi request", Err: err}
	}
	request.Header.Set("Accept", "application/json")

	response, err := it.httpClient.Do(request)
	if err != nil {
		return "", &domain.NetworkError{Op: fmt.Sprintf("query pypi for %q", req.Path), Err: err}
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("package %q: %w", req.Path, domain.ErrNoVersions)
	case response.StatusCode == http.StatusUnauthorized,
		response.StatusCode == http.StatusForbidden,
		response.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("pypi status %d for %q: %w",
			response.StatusCode, req.Path, domain.ErrAccessDenied)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return "", &domain.NetworkError{
			Op: fmt.Sprintf("query pypi for %q: status %d", req.Path, response.StatusCode),
		}
	}

	var payload struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}
	if err = json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", &domain.ParseError{Value: "pypi metadata", Err: err}
	}

	if payload.Info.Version == "" {
		return "", fmt.Errorf("package %q has no release: %w", req.Path, domain.ErrNoVersions)
	}
	return payload.Info.Version, nil
}
