package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3dev/gitvck/domain"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	t.Run("should treat missing components as zero", func(t *testing.T) {
		t.Parallel()

		// given
		short, err := domain.ParseVersion("2.0")
		require.NoError(t, err)
		full, err := domain.ParseVersion("2.0.0")
		require.NoError(t, err)

		// when
		equal := short.Equal(full)

		// then
		assert.True(t, equal)
		assert.Equal(t, 0, short.Compare(full))
	})

	t.Run("should tolerate a v prefix and whitespace", func(t *testing.T) {
		t.Parallel()

		// given
		prefixed, err := domain.ParseVersion("  v1.2.3 ")
		require.NoError(t, err)
		plain, err := domain.ParseVersion("1.2.3")
		require.NoError(t, err)

		// when
		equal := prefixed.Equal(plain)

		// then
		assert.True(t, equal)
		assert.Equal(t, "v1.2.3", prefixed.String())
	})

	t.Run("should name the offending string on failure", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "1.abc.1"

		// when
		_, err := domain.ParseVersion(raw)

		// then
		require.Error(t, err)
		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, raw, parseErr.Value)
		assert.Contains(t, err.Error(), `"1.abc.1"`)
	})

	t.Run("should reject blank input", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := domain.ParseVersion("   ")

		// then
		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestParsedVersionCompare(t *testing.T) {
	t.Parallel()

	parse := func(t *testing.T, raw string) domain.ParsedVersion {
		t.Helper()
		version, err := domain.ParseVersion(raw)
		require.NoError(t, err)
		return version
	}

	t.Run("should compare numeric components as integers", func(t *testing.T) {
		t.Parallel()

		// given
		v190 := parse(t, "1.9.0")
		v1100 := parse(t, "1.10.0")
		v200 := parse(t, "2.0.0")

		// then
		assert.True(t, v190.LessThan(v1100))
		assert.True(t, v1100.LessThan(v200))
		assert.True(t, v190.LessThan(v200))
	})

	t.Run("should order a pre-release before its release", func(t *testing.T) {
		t.Parallel()

		// given
		beta := parse(t, "1.2.3-beta1")
		release := parse(t, "1.2.3")

		// then
		assert.True(t, beta.LessThan(release))
		assert.False(t, release.LessThan(beta))
	})

	t.Run("should be indifferent to the v prefix in ordering", func(t *testing.T) {
		t.Parallel()

		// given
		tagged := parse(t, "v0.9.5")
		plain := parse(t, "1.0.0")

		// then
		assert.True(t, tagged.LessThan(plain))
	})
}

func TestLatest(t *testing.T) {
	t.Parallel()

	t.Run("should pick the greatest version, not the last one", func(t *testing.T) {
		t.Parallel()

		// given
		candidates := []string{"v1.0.0", "v0.9.5-hotfix"}

		// when
		latest, ok := domain.Latest(candidates)

		// then
		require.True(t, ok)
		assert.Equal(t, "v1.0.0", latest)
	})

	t.Run("should ignore candidates that do not parse", func(t *testing.T) {
		t.Parallel()

		// given
		candidates := []string{"release-notes", "v1.2.0", "nightly", "v1.10.0"}

		// when
		latest, ok := domain.Latest(candidates)

		// then
		require.True(t, ok)
		assert.Equal(t, "v1.10.0", latest)
	})

	t.Run("should report false when nothing parses", func(t *testing.T) {
		t.Parallel()

		// when
		latest, ok := domain.Latest([]string{"latest", "stable", ""})

		// then
		assert.False(t, ok)
		assert.Empty(t, latest)
	})

	t.Run("should report false for an empty list", func(t *testing.T) {
		t.Parallel()

		// when
		_, ok := domain.Latest(nil)

		// then
		assert.False(t, ok)
	})
}

func TestParseErrorUnwrap(t *testing.T) {
	t.Parallel()

	t.Run("should expose the underlying cause", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("boom")
		err := &domain.ParseError{Value: "x", Err: cause}

		// then
		assert.ErrorIs(t, err, cause)
	})
}
