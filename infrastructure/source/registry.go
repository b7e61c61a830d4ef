package source

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/s3dev/gitvck/domain"
	"github.com/s3dev/gitvck/infrastructure/source/forge"
	"github.com/s3dev/gitvck/infrastructure/source/gitrepo"
	"github.com/s3dev/gitvck/infrastructure/source/goproxy"
	"github.com/s3dev/gitvck/infrastructure/source/pypi"
)

// Registry holds the registered source implementations, one per kind.
type Registry struct {
	sources map[domain.SourceKind]domain.Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[domain.SourceKind]domain.Source),
	}
}

// Register adds a source under its kind, replacing any previous one.
func (it *Registry) Register(src domain.Source) {
	it.sources[src.Kind()] = src
}

// Get returns the source serving the given kind.
func (it *Registry) Get(kind domain.SourceKind) (domain.Source, error) {
	src, ok := it.sources[kind]
	if !ok {
		return nil, fmt.Errorf("unknown source kind: %q", kind)
	}
	return src, nil
}

// Kinds returns the registered kinds in stable order.
func (it *Registry) Kinds() []domain.SourceKind {
	kinds := make([]domain.SourceKind, 0, len(it.sources))
	for kind := range it.sources {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Options configures the default source set.
type Options struct {
	// HTTPClient serves the registry-style sources; nil means each source's
	// own default client with its default timeout.
	HTTPClient *http.Client
	// ForgeToken is the fallback credential for forge lookups; requests can
	// still carry their own.
	ForgeToken string
}

// Defaults builds a registry with the four standard sources.
func Defaults(opts Options) *Registry {
	reg := NewRegistry()
	reg.Register(pypi.New(opts.HTTPClient, nil))
	reg.Register(goproxy.New(opts.HTTPClient, nil))
	reg.Register(forge.New(opts.ForgeToken, opts.HTTPClient))
	reg.Register(gitrepo.New())
	return reg
}
