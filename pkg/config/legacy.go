package config

import (
	"encoding/json"
	"fmt"
	"net/url"

	"dario.cat/mergo"
)

// legacyPulp is the "pulp" section of the deprecated flat settings format.
type legacyPulp struct {
	BaseURL      string   `json:"base_url"`
	Auth         []string `json:"auth"`
	Verify       any      `json:"verify"`
	Version      string   `json:"version"`
	CLITransport string   `json:"cli_transport"`
}

// legacyDefaults mirror the answers `uplink settings create` assumes.
// Verify is defaulted separately since it holds either a bool or a path.
func legacyDefaults() legacyPulp {
	return legacyPulp{
		Auth:         []string{"admin", "admin"},
		CLITransport: TransportSSH,
	}
}

// IsLegacy reports whether record has the legacy flat shape: a "pulp"
// section and no "systems".
func IsLegacy(record map[string]any) bool {
	_, hasSystems := record["systems"]
	_, hasPulp := record["pulp"]
	return !hasSystems && hasPulp
}

// ConvertLegacy maps a legacy settings record to the current format. The
// result describes a single system holding every known role. Nothing is
// written; callers decide whether to persist or show the result.
func ConvertLegacy(old map[string]any) (map[string]any, error) {
	pulp, err := decodeLegacyPulp(old["pulp"])
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(&pulp, legacyDefaults()); err != nil {
		return nil, fmt.Errorf("failed to apply legacy defaults: %w", err)
	}
	if pulp.Verify == nil || pulp.Verify == "" {
		pulp.Verify = false
	}

	baseURL, err := url.Parse(pulp.BaseURL)
	if err != nil || baseURL.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrLegacyBaseURL, pulp.BaseURL)
	}
	scheme := baseURL.Scheme
	if scheme == "" {
		scheme = "https"
	}

	auth := make([]any, len(pulp.Auth))
	for i, item := range pulp.Auth {
		auth[i] = item
	}
	pulpSection := map[string]any{"auth": auth}
	if pulp.Version != "" {
		pulpSection["version"] = pulp.Version
	}

	return map[string]any{
		"pulp": pulpSection,
		"systems": []any{
			map[string]any{
				"hostname": baseURL.Hostname(),
				"roles": map[string]any{
					RoleAMQPBroker: map[string]any{"service": ServiceQpidd},
					RoleAPI: map[string]any{
						"scheme": scheme,
						"verify": pulp.Verify,
					},
					RoleMongod:              map[string]any{},
					RolePulpCelerybeat:      map[string]any{},
					RolePulpCLI:             map[string]any{},
					RolePulpResourceManager: map[string]any{},
					RolePulpWorkers:         map[string]any{},
					RoleShell:               map[string]any{"transport": pulp.CLITransport},
					RoleSquid:               map[string]any{},
				},
			},
		},
	}, nil
}

func decodeLegacyPulp(section any) (legacyPulp, error) {
	var pulp legacyPulp
	if section == nil {
		return pulp, nil
	}
	data, err := json.Marshal(section)
	if err != nil {
		return pulp, fmt.Errorf("failed to encode legacy pulp section: %w", err)
	}
	if err := json.Unmarshal(data, &pulp); err != nil {
		return pulp, fmt.Errorf("failed to decode legacy pulp section: %w", err)
	}
	return pulp, nil
}
