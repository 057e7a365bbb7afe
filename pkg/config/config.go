// Package config contains the uplink settings model: locating the settings
// file, validating it, converting the legacy format and answering questions
// about the systems under test.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/stacklok/toolhive-core/env"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"

	"github.com/omaciel/uplink/pkg/versions"
)

// Config holds the information about a Pulp deployment and its systems.
type Config struct {
	// PulpAuth is the username and password for the Pulp API
	PulpAuth []string
	// PulpVersion is the version of the deployment under test
	PulpVersion versions.Version
	// Systems is the set of hosts in the deployment
	Systems []PulpSystem

	locator *Locator
}

// settingsFile is the decoded shape of a valid settings file.
type settingsFile struct {
	Pulp struct {
		Auth    []string `json:"auth"`
		Version string   `json:"version"`
	} `json:"pulp"`
	Systems []PulpSystem `json:"systems"`
}

// NewConfig creates a config from explicit values. Systems equal to an
// earlier one are dropped.
func NewConfig(pulpAuth []string, pulpVersion versions.Version, systems []PulpSystem) *Config {
	return NewConfigWithEnv(&env.OSReader{}, pulpAuth, pulpVersion, systems)
}

// NewConfigWithEnv is NewConfig with an injected environment reader, which
// is consulted for UPLINK_CONFIG_FILE.
func NewConfigWithEnv(envReader env.Reader, pulpAuth []string, pulpVersion versions.Version, systems []PulpSystem) *Config {
	return &Config{
		PulpAuth:    pulpAuth,
		PulpVersion: pulpVersion,
		Systems:     uniqueSystems(systems),
		locator:     NewLocator(envReader),
	}
}

// ConfigFileName is the settings file name this config reads.
func (c *Config) ConfigFileName() string {
	return c.getLocator().FileName
}

// ConfigDirName is the directory searched under each XDG config root.
func (c *Config) ConfigDirName() string {
	return c.getLocator().DirName
}

// getLocator returns the locator, creating one from the process
// environment for a zero Config.
func (c *Config) getLocator() *Locator {
	if c.locator == nil {
		c.locator = NewLocator(&env.OSReader{})
	}
	return c.locator
}

// ConfigFilePath returns the path of the existing settings file, or a
// *FileNotFoundError.
func (c *Config) ConfigFilePath() (string, error) {
	return c.getLocator().Locate()
}

// DefaultConfigFilePath returns where a new settings file should be written.
func (c *Config) DefaultConfigFilePath() (string, error) {
	return c.getLocator().DefaultPath()
}

// Read locates, parses and validates the settings file and returns a new
// Config. The receiver is not modified.
func (c *Config) Read() (*Config, error) {
	path, err := c.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return c.ReadFile(path)
}

// ReadFile is Read for an explicit settings file path.
func (c *Config) ReadFile(path string) (*Config, error) {
	record, data, err := loadRecord(path)
	if err != nil {
		return nil, err
	}

	if IsLegacy(record) {
		suggested, convErr := ConvertLegacy(record)
		return nil, &LegacyFormatError{Path: path, Suggested: suggested, Err: convErr}
	}
	if err := Validate(record); err != nil {
		return nil, err
	}

	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, err)
	}
	version, err := versions.Parse(file.Pulp.Version)
	if err != nil {
		return nil, err
	}

	cfg := c.Clone()
	cfg.PulpAuth = file.Pulp.Auth
	cfg.PulpVersion = version
	cfg.Systems = uniqueSystems(file.Systems)
	return cfg, nil
}

// ParseSettings decodes settings file content into a generic record.
// Comments and trailing commas are accepted.
func ParseSettings(data []byte) (map[string]any, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return decodeRecord(std)
}

func decodeRecord(std []byte) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal(std, &record); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if record == nil {
		return nil, errors.New("failed to parse settings: top level value must be an object")
	}
	return record, nil
}

// readStandardized reads path once and returns its content as standard JSON.
func readStandardized(path string) ([]byte, error) {
	// #nosec G304: path comes from the locator or the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read settings file %s: %w", path, err)
	}
	data, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return data, nil
}

// loadRecord returns the record at path and its standard JSON bytes.
func loadRecord(path string) (map[string]any, []byte, error) {
	data, err := readStandardized(path)
	if err != nil {
		return nil, nil, err
	}
	record, err := decodeRecord(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return record, data, nil
}

// ReadSection returns the raw JSON of a top-level section of the located
// settings file, or a *SectionNotFoundError.
func (c *Config) ReadSection(name string) (json.RawMessage, error) {
	path, err := c.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return ReadSectionFile(path, name)
}

// ReadSectionFile is ReadSection for an explicit settings file path.
func ReadSectionFile(path, name string) (json.RawMessage, error) {
	data, err := readStandardized(path)
	if err != nil {
		return nil, err
	}
	result := gjson.GetBytes(data, gjson.Escape(name))
	if !result.Exists() {
		return nil, &SectionNotFoundError{Path: path, Section: name}
	}
	return json.RawMessage(result.Raw), nil
}

// GetSystems returns the systems fulfilling role, in storage order.
func (c *Config) GetSystems(role string) ([]PulpSystem, error) {
	if !IsKnownRole(role) {
		return nil, fmt.Errorf("%w: %q (valid roles: %v)", ErrUnknownRole, role, Roles)
	}
	var systems []PulpSystem
	for _, system := range c.Systems {
		if system.HasRole(role) {
			systems = append(systems, system)
		}
	}
	return systems, nil
}

func (c *Config) firstSystem(role string) (PulpSystem, error) {
	systems, err := c.GetSystems(role)
	if err != nil {
		return PulpSystem{}, err
	}
	if len(systems) == 0 {
		return PulpSystem{}, fmt.Errorf("%w: %q", ErrNoSystemForRole, role)
	}
	return systems[0], nil
}

// RequestKwargs are the values an HTTP client needs to talk to the Pulp API.
type RequestKwargs struct {
	// Auth is a copy of the configured username and password
	Auth   [2]string
	Verify TLSVerify
}

// GetRequestsKwargs returns request settings for the first system with the
// api role.
func (c *Config) GetRequestsKwargs() (RequestKwargs, error) {
	system, err := c.firstSystem(RoleAPI)
	if err != nil {
		return RequestKwargs{}, err
	}
	return c.RequestsKwargsFor(system), nil
}

// RequestsKwargsFor returns request settings for system. Verification
// defaults to enabled when the api role does not set it.
func (c *Config) RequestsKwargsFor(system PulpSystem) RequestKwargs {
	var kwargs RequestKwargs
	copy(kwargs.Auth[:], c.PulpAuth)
	kwargs.Verify = TLSVerify{Enabled: true}
	if api, ok := system.API(); ok {
		kwargs.Verify = api.Verify
	}
	return kwargs
}

// BaseURL returns the API base URL of the first system with the api role,
// such as "https://pulp.example.com/".
func (c *Config) BaseURL() (string, error) {
	system, err := c.firstSystem(RoleAPI)
	if err != nil {
		return "", err
	}
	return BaseURLFor(system), nil
}

// BaseURLFor returns the API base URL of system. The scheme defaults to https.
func BaseURLFor(system PulpSystem) string {
	scheme := "https"
	if api, ok := system.API(); ok && api.Scheme != "" {
		scheme = api.Scheme
	}
	return fmt.Sprintf("%s://%s/", scheme, system.Hostname)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	if c.PulpAuth != nil {
		out.PulpAuth = append([]string(nil), c.PulpAuth...)
	}
	if c.Systems != nil {
		out.Systems = make([]PulpSystem, len(c.Systems))
		for i, system := range c.Systems {
			out.Systems[i] = system.Clone()
		}
	}
	if c.locator != nil {
		locator := *c.locator
		locator.SearchDirs = append([]string(nil), c.locator.SearchDirs...)
		out.locator = &locator
	}
	return &out
}
