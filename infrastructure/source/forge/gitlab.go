package forge

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/s3dev/gitvck/domain"
)

// gitlabClient lists project tags through the GitLab API. The project path
// may include subgroups.
type gitlabClient struct{}

func newGitLabClient() *gitlabClient {
	return &gitlabClient{}
}

func (it *gitlabClient) name() string { return "gitlab" }

func (it *gitlabClient) matchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "gitlab.com")
}

func (it *gitlabClient) listTags(ctx context.Context, project, token string) ([]string, error) {
	client, err := gl.NewClient(token)
	if err != nil {
		return nil, &domain.NetworkError{Op: "build gitlab client", Err: err}
	}

	var allTags []string
	opts := &gl.ListTagsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	for {
		tags, resp, err := client.Tags.ListTags(project, opts, gl.WithContext(ctx))
		if err != nil {
			return nil, classifyGitLabError(project, resp, err)
		}
		for _, tag := range tags {
			allTags = append(allTags, tag.Name)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allTags, nil
}

func classifyGitLabError(project string, resp *gl.Response, err error) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("repository %q: %w", project, domain.ErrNoVersions)
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("gitlab status %d for %q: %w",
				resp.StatusCode, project, domain.ErrAccessDenied)
		}
	}
	return &domain.NetworkError{Op: fmt.Sprintf("list gitlab tags for %q", project), Err: err}
}
