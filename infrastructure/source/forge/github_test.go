package forge //nolint:testpackage // tests unexported functions

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3dev/gitvck/domain"
)

// interceptingClient sends every request to the given handler, whatever host
// the API client believes it is talking to.
func interceptingClient(t *testing.T, handler http.Handler) *http.Client {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, network, _ string) (net.Conn, error) {
				return net.Dial(network, srv.Listener.Addr().String())
			},
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // test server
		},
	}
}

func TestGitHubListTags(t *testing.T) {
	t.Parallel()

	t.Run("should walk every page of tags", func(t *testing.T) {
		t.Parallel()

		// given
		cl := interceptingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/s3dev/utils4/tags", r.URL.Path)
			if r.URL.Query().Get("page") == "2" {
				_, _ = w.Write([]byte(`[{"name": "v0.9.5-hotfix"}]`))
				return
			}
			w.Header().Set("Link",
				`<https://api.github.com/repos/s3dev/utils4/tags?page=2>; rel="next"`)
			_, _ = w.Write([]byte(`[{"name": "v1.0.0"}]`))
		}))
		client := newGitHubClient(cl)

		// when
		tags, err := client.listTags(context.Background(), "s3dev/utils4", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0", "v0.9.5-hotfix"}, tags)
	})

	t.Run("should report a missing repository as no versions", func(t *testing.T) {
		t.Parallel()

		// given
		cl := interceptingClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		}))
		client := newGitHubClient(cl)

		// when
		_, err := client.listTags(context.Background(), "s3dev/nope", "")

		// then
		assert.ErrorIs(t, err, domain.ErrNoVersions)
	})

	t.Run("should report a rejected credential as access denied", func(t *testing.T) {
		t.Parallel()

		// given
		cl := interceptingClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
		}))
		client := newGitHubClient(cl)

		// when
		_, err := client.listTags(context.Background(), "s3dev/utils4", "bad-token")

		// then
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("should reject a project without an owner", func(t *testing.T) {
		t.Parallel()

		// given
		client := newGitHubClient(nil)

		// when
		_, err := client.listTags(context.Background(), "utils4", "")

		// then
		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestClassifyGitHubError(t *testing.T) {
	t.Parallel()

	t.Run("should map client error types onto domain failures", func(t *testing.T) {
		t.Parallel()

		response := func(status int) *http.Response {
			return &http.Response{StatusCode: status}
		}
		tests := []struct {
			name string
			err  error
			want domain.Reason
		}{
			{"rate limit", &gh.RateLimitError{}, domain.ReasonAccessDenied},
			{"abuse rate limit", &gh.AbuseRateLimitError{}, domain.ReasonAccessDenied},
			{"not found", &gh.ErrorResponse{Response: response(http.StatusNotFound)}, domain.ReasonNotFound},
			{"forbidden", &gh.ErrorResponse{Response: response(http.StatusForbidden)}, domain.ReasonAccessDenied},
			{"server error", &gh.ErrorResponse{Response: response(http.StatusBadGateway)}, domain.ReasonNetwork},
			{"transport", errors.New("dial tcp: timeout"), domain.ReasonNetwork},
		}

		for _, test := range tests {
			classified := classifyGitHubError("s3dev/utils4", test.err)
			assert.Equal(t, test.want, domain.ClassifyFailure(classified), "case %s", test.name)
		}
	})
}

func TestGitHubMatchesURL(t *testing.T) {
	t.Parallel()

	t.Run("should match github addresses only", func(t *testing.T) {
		t.Parallel()

		// given
		client := newGitHubClient(nil)

		// then
		assert.True(t, client.matchesURL("https://github.com/s3dev/utils4"))
		assert.False(t, client.matchesURL("https://gitlab.com/grp/proj"))
		assert.False(t, client.matchesURL("s3dev/utils4"))
	})
}

func TestGitLabMatchesURL(t *testing.T) {
	t.Parallel()

	t.Run("should match gitlab addresses only", func(t *testing.T) {
		t.Parallel()

		// given
		client := newGitLabClient()

		// then
		assert.True(t, client.matchesURL("https://gitlab.com/grp/proj"))
		assert.False(t, client.matchesURL("https://github.com/s3dev/utils4"))
	})
}
