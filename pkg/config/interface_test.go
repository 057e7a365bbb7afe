package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultProvider(t *testing.T) {
	t.Parallel()
	provider := NewDefaultProvider()
	assert.NotNil(t, provider)
	assert.Implements(t, (*Provider)(nil), provider)
}

//nolint:paralleltest // Mutates the process cache
func TestDefaultProviderGetConfig(t *testing.T) {
	calls := stubReadConfig(t, func() (*Config, error) { return testConfig(), nil })

	provider := NewDefaultProvider()
	first, err := provider.GetConfig()
	require.NoError(t, err)
	second, err := provider.GetConfig()
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, *calls)
}

func TestPathProvider(t *testing.T) {
	t.Parallel()

	t.Run("reads the given file", func(t *testing.T) {
		t.Parallel()
		path := copyFixture(t, t.TempDir(), "settings.json")
		provider := NewPathProvider(path)

		cfg, err := provider.GetConfig()
		require.NoError(t, err)
		assert.Len(t, cfg.Systems, 2)
		assert.Equal(t, path, cfg.ConfigFileName())

		located, err := provider.ConfigFilePath()
		require.NoError(t, err)
		assert.Equal(t, path, located)

		target, err := provider.DefaultConfigFilePath()
		require.NoError(t, err)
		assert.Equal(t, path, target)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.json")
		provider := NewPathProvider(path)

		_, err := provider.GetConfig()
		assert.ErrorIs(t, err, ErrConfigFileNotFound)
		_, err = provider.ConfigFilePath()
		assert.ErrorIs(t, err, ErrConfigFileNotFound)

		target, err := provider.DefaultConfigFilePath()
		require.NoError(t, err)
		assert.Equal(t, path, target)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("relative path is made absolute", func(t *testing.T) {
		t.Parallel()
		provider := NewPathProvider(filepath.Join("testdata", "settings.json"))

		located, err := provider.ConfigFilePath()
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(located))
		assert.Equal(t, "settings.json", filepath.Base(located))
	})
}
