package config

import (
	"path/filepath"

	"github.com/omaciel/uplink/pkg/versions"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks -source=interface.go Provider

// Provider defines the configuration operations the CLI depends on
type Provider interface {
	GetConfig() (*Config, error)
	ConfigFilePath() (string, error)
	DefaultConfigFilePath() (string, error)
}

// DefaultProvider implements Provider using the XDG search path and the
// process cache
type DefaultProvider struct{}

// NewDefaultProvider creates a new default config provider
func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// GetConfig returns a copy of the cached config
func (*DefaultProvider) GetConfig() (*Config, error) {
	return Get()
}

// ConfigFilePath locates the settings file
func (*DefaultProvider) ConfigFilePath() (string, error) {
	return NewConfig(nil, versions.Version{}, nil).ConfigFilePath()
}

// DefaultConfigFilePath returns where a new settings file should be written
func (*DefaultProvider) DefaultConfigFilePath() (string, error) {
	return NewConfig(nil, versions.Version{}, nil).DefaultConfigFilePath()
}

// PathProvider implements Provider using a specific settings file. It
// bypasses the cache.
type PathProvider struct {
	config *Config
}

// NewPathProvider creates a new config provider with a specific path
func NewPathProvider(configPath string) *PathProvider {
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}
	cfg := &Config{}
	cfg.getLocator().FileName = configPath
	return &PathProvider{config: cfg}
}

// GetConfig reads and returns the config from the specific path
func (p *PathProvider) GetConfig() (*Config, error) {
	return p.config.Read()
}

// ConfigFilePath returns the specific path if it exists
func (p *PathProvider) ConfigFilePath() (string, error) {
	return p.config.ConfigFilePath()
}

// DefaultConfigFilePath returns the specific path
func (p *PathProvider) DefaultConfigFilePath() (string, error) {
	return p.config.DefaultConfigFilePath()
}
