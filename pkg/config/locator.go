package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/stacklok/toolhive-core/env"
)

const (
	// ConfigFileEnvVar overrides the settings file name.
	ConfigFileEnvVar = "UPLINK_CONFIG_FILE"
	// DefaultConfigFileName is used when ConfigFileEnvVar is unset.
	DefaultConfigFileName = "settings.json"
	// ConfigDirName is the directory under each XDG config root.
	ConfigDirName = "uplink"
)

// Locator finds the settings file under the XDG configuration directories.
type Locator struct {
	// DirName is appended to each search root
	DirName string
	// FileName is the settings file name, or an absolute path
	FileName string
	// SearchDirs are the roots searched in priority order
	SearchDirs []string
}

// NewLocator returns a locator over $XDG_CONFIG_HOME and $XDG_CONFIG_DIRS
// with the file name taken from UPLINK_CONFIG_FILE, if set.
func NewLocator(envReader env.Reader) *Locator {
	return &Locator{
		DirName:    ConfigDirName,
		FileName:   configFileName(envReader),
		SearchDirs: defaultSearchDirs(),
	}
}

func configFileName(envReader env.Reader) string {
	if name := envReader.Getenv(ConfigFileEnvVar); name != "" {
		return name
	}
	return DefaultConfigFileName
}

func defaultSearchDirs() []string {
	return append([]string{xdg.ConfigHome}, xdg.ConfigDirs...)
}

// Candidates returns every path Locate considers, in order.
func (l *Locator) Candidates() []string {
	if filepath.IsAbs(l.FileName) {
		return []string{filepath.Clean(l.FileName)}
	}
	candidates := make([]string, 0, len(l.SearchDirs))
	for _, dir := range l.SearchDirs {
		candidates = append(candidates, filepath.Join(dir, l.DirName, l.FileName))
	}
	return candidates
}

// Locate returns the first candidate that is an existing regular file.
// When none is, it returns a *FileNotFoundError.
func (l *Locator) Locate() (string, error) {
	candidates := l.Candidates()
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", &FileNotFoundError{FileName: l.FileName, Searched: candidates}
}

// DefaultPath is where a new settings file should be created: the file name
// under the first search root. The directory is created if needed.
func (l *Locator) DefaultPath() (string, error) {
	if filepath.IsAbs(l.FileName) {
		return filepath.Clean(l.FileName), nil
	}
	root := xdg.ConfigHome
	if len(l.SearchDirs) > 0 {
		root = l.SearchDirs[0]
	}
	dir := filepath.Join(root, l.DirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return filepath.Join(dir, l.FileName), nil
}
