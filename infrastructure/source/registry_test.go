package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3dev/gitvck/domain"
	"github.com/s3dev/gitvck/infrastructure/source"
	testdoubles "github.com/s3dev/gitvck/test"
)

func TestSourceRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a source by kind", func(t *testing.T) {
		t.Parallel()

		// given
		reg := source.NewRegistry()
		stub := &testdoubles.SpySource{SourceKind: domain.KindRegistry}
		reg.Register(stub)

		// when
		src, err := reg.Get(domain.KindRegistry)

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.KindRegistry, src.Kind())
	})

	t.Run("should fail for an unknown kind", func(t *testing.T) {
		t.Parallel()

		// given
		reg := source.NewRegistry()

		// when
		_, err := reg.Get(domain.KindForge)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown source kind")
	})

	t.Run("should list registered kinds in stable order", func(t *testing.T) {
		t.Parallel()

		// given
		reg := source.NewRegistry()
		reg.Register(&testdoubles.SpySource{SourceKind: domain.KindRepository})
		reg.Register(&testdoubles.SpySource{SourceKind: domain.KindForge})

		// when
		kinds := reg.Kinds()

		// then
		assert.Equal(t, []domain.SourceKind{domain.KindRepository, domain.KindForge}, kinds)
	})

	t.Run("should overwrite a source of the same kind", func(t *testing.T) {
		t.Parallel()

		// given
		reg := source.NewRegistry()
		first := &testdoubles.SpySource{SourceKind: domain.KindRegistry}
		second := &testdoubles.SpySource{SourceKind: domain.KindRegistry, Latest: "9.9.9"}
		reg.Register(first)
		reg.Register(second)

		// when
		src, err := reg.Get(domain.KindRegistry)

		// then
		require.NoError(t, err)
		assert.Same(t, second, src)
	})
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	t.Run("should cover every source kind", func(t *testing.T) {
		t.Parallel()

		// when
		reg := source.Defaults(source.Options{})

		// then
		for _, kind := range []domain.SourceKind{
			domain.KindRegistry,
			domain.KindGoProxy,
			domain.KindForge,
			domain.KindRepository,
		} {
			src, err := reg.Get(kind)
			require.NoError(t, err, "kind %s", kind)
			assert.Equal(t, kind, src.Kind())
		}
	})
}
