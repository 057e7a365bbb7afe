package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorLocate(t *testing.T) {
	t.Parallel()

	t.Run("first root wins", func(t *testing.T) {
		t.Parallel()
		home, system := t.TempDir(), t.TempDir()
		want := writeSettings(t, home, []byte("{}"))
		writeSettings(t, system, []byte("{}"))

		locator := &Locator{DirName: ConfigDirName, FileName: DefaultConfigFileName, SearchDirs: []string{home, system}}
		got, err := locator.Locate()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("falls back to later roots", func(t *testing.T) {
		t.Parallel()
		home, system := t.TempDir(), t.TempDir()
		want := writeSettings(t, system, []byte("{}"))

		locator := &Locator{DirName: ConfigDirName, FileName: DefaultConfigFileName, SearchDirs: []string{home, system}}
		got, err := locator.Locate()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("directories are skipped", func(t *testing.T) {
		t.Parallel()
		home := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(home, ConfigDirName, DefaultConfigFileName), 0o700))

		locator := &Locator{DirName: ConfigDirName, FileName: DefaultConfigFileName, SearchDirs: []string{home}}
		_, err := locator.Locate()
		assert.ErrorIs(t, err, ErrConfigFileNotFound)
	})

	t.Run("not found lists every candidate", func(t *testing.T) {
		t.Parallel()
		home, system := t.TempDir(), t.TempDir()

		locator := &Locator{DirName: ConfigDirName, FileName: "lab.json", SearchDirs: []string{home, system}}
		_, err := locator.Locate()
		require.ErrorIs(t, err, ErrConfigFileNotFound)

		var notFound *FileNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "lab.json", notFound.FileName)
		assert.Equal(t, []string{
			filepath.Join(home, ConfigDirName, "lab.json"),
			filepath.Join(system, ConfigDirName, "lab.json"),
		}, notFound.Searched)
		assert.Contains(t, err.Error(), filepath.Join(system, ConfigDirName, "lab.json"))
	})

	t.Run("absolute file name", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "elsewhere.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

		locator := &Locator{DirName: ConfigDirName, FileName: path, SearchDirs: []string{t.TempDir()}}
		assert.Equal(t, []string{path}, locator.Candidates())
		got, err := locator.Locate()
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})
}

func TestLocatorDefaultPath(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	locator := &Locator{DirName: ConfigDirName, FileName: DefaultConfigFileName, SearchDirs: []string{home, t.TempDir()}}

	path, err := locator.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ConfigDirName, DefaultConfigFileName), path)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewLocator(t *testing.T) {
	t.Parallel()

	locator := NewLocator(newEnvReader(t, map[string]string{ConfigFileEnvVar: "lab.json"}))
	assert.Equal(t, "lab.json", locator.FileName)
	assert.Equal(t, ConfigDirName, locator.DirName)
	assert.NotEmpty(t, locator.SearchDirs)

	locator = NewLocator(newEnvReader(t, nil))
	assert.Equal(t, DefaultConfigFileName, locator.FileName)
}
