package config

import (
	"sync"

	"github.com/omaciel/uplink/pkg/versions"
)

// cached is the process-wide configuration slot, filled by Get.
var cached *Config

var lock = &sync.RWMutex{}

// readConfig loads the configuration on a cache miss. Tests replace it.
var readConfig = func() (*Config, error) {
	return NewConfig(nil, versions.Version{}, nil).Read()
}

// Get returns the process configuration, reading the settings file on
// first use. Callers receive a deep copy and may modify it freely. A failed
// read is returned and not cached.
func Get() (*Config, error) {
	lock.RLock()
	if cached != nil {
		defer lock.RUnlock()
		return cached.Clone(), nil
	}
	lock.RUnlock()

	lock.Lock()
	defer lock.Unlock()
	if cached == nil {
		cfg, err := readConfig()
		if err != nil {
			return nil, err
		}
		cached = cfg
	}
	return cached.Clone(), nil
}

// Set replaces the cached configuration with a copy of cfg. A nil cfg
// empties the cache.
func Set(cfg *Config) {
	lock.Lock()
	defer lock.Unlock()
	if cfg == nil {
		cached = nil
		return
	}
	cached = cfg.Clone()
}

// Reset empties the cache so the next Get reads the settings file again.
func Reset() {
	Set(nil)
}
