// Package gitrepo resolves the latest tag of a git repository reached
// directly, either a local working copy or a remote URL.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/s3dev/gitvck/domain"
)

// Source reads tag refs straight from a repository, no forge API involved.
type Source struct{}

func New() *Source { return &Source{} }

func (it *Source) Kind() domain.SourceKind { return domain.KindRepository }

// LatestVersion collects the repository's tag names and returns the
// greatest version-shaped one in its original spelling.
func (it *Source) LatestVersion(ctx context.Context, req domain.CheckRequest) (string, error) {
	var tags []string
	var err error
	if isLocalPath(req.Path) {
		tags, err = localTags(req.Path)
	} else {
		tags, err = remoteTags(ctx, req.Path)
	}
	if err != nil {
		return "", err
	}

	if len(tags) == 0 {
		return "", fmt.Errorf("repository %q has no tags: %w", req.Path, domain.ErrNoVersions)
	}
	latest, ok := domain.Latest(tags)
	if !ok {
		return "", fmt.Errorf("repository %q has no version-shaped tag: %w", req.Path, domain.ErrNoVersions)
	}
	return latest, nil
}

// isLocalPath reports whether the path exists on disk. Anything else is
// treated as a remote URL.
func isLocalPath(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func localTags(path string) ([]string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%q is not a git repository: %w", path, domain.ErrNoVersions)
		}
		return nil, fmt.Errorf("failed to open repository %q: %w", path, err)
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to read tags of %q: %w", path, err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags of %q: %w", path, err)
	}
	return tags, nil
}

// remoteTags asks the remote for its advertised refs and keeps the tag
// refs, the ls-remote equivalent.
func remoteTags(ctx context.Context, rawURL string) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{rawURL},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		switch {
		case errors.Is(err, transport.ErrRepositoryNotFound):
			return nil, fmt.Errorf("repository %q: %w", rawURL, domain.ErrNoVersions)
		case errors.Is(err, transport.ErrAuthenticationRequired),
			errors.Is(err, transport.ErrAuthorizationFailed):
			return nil, fmt.Errorf("repository %q: %w", rawURL, domain.ErrAccessDenied)
		default:
			return nil, &domain.NetworkError{Op: fmt.Sprintf("list remote %q", rawURL), Err: err}
		}
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
	}
	return tags, nil
}
