package config

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/omaciel/uplink/pkg/versions"
)

// representationFormat is bumped whenever the String layout changes.
const representationFormat = 1

type representation struct {
	Format      int          `json:"format"`
	PulpAuth    []string     `json:"pulp_auth"`
	PulpVersion string       `json:"pulp_version"`
	Systems     []PulpSystem `json:"systems"`
}

func (c *Config) representation() representation {
	systems := make([]PulpSystem, len(c.Systems))
	for i, system := range c.Systems {
		systems[i] = system.Clone()
	}
	SortSystems(systems)
	auth := c.PulpAuth
	if auth == nil {
		auth = []string{}
	}
	return representation{
		Format:      representationFormat,
		PulpAuth:    auth,
		PulpVersion: c.PulpVersion.String(),
		Systems:     systems,
	}
}

// String renders c as canonical JSON with systems sorted, so the output does
// not depend on their order. ParseRepresentation turns it back into a Config.
func (c *Config) String() string {
	data, err := json.Marshal(c.representation())
	if err != nil {
		return fmt.Sprintf("config(unrepresentable: %v)", err)
	}
	return string(data)
}

// ParseRepresentation rebuilds a Config from the output of String.
func ParseRepresentation(s string) (*Config, error) {
	var rep representation
	if err := json.Unmarshal([]byte(s), &rep); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedRepresentation, err)
	}
	if rep.Format != representationFormat {
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedRepresentation, rep.Format)
	}

	var version versions.Version
	if rep.PulpVersion != "" {
		parsed, err := versions.Parse(rep.PulpVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedRepresentation, err)
		}
		version = parsed
	}
	return NewConfig(rep.PulpAuth, version, rep.Systems), nil
}

// Equal reports whether c and other describe the same deployment. Systems
// are compared as sets; file locations are ignored.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	if !slices.Equal(c.PulpAuth, other.PulpAuth) || !c.PulpVersion.Equal(other.PulpVersion) {
		return false
	}
	mine, theirs := uniqueSystems(c.Systems), uniqueSystems(other.Systems)
	if len(mine) != len(theirs) {
		return false
	}
	for _, system := range mine {
		if !slices.ContainsFunc(theirs, system.Equal) {
			return false
		}
	}
	return true
}
