package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRoles(api, shell map[string]any) map[string]any {
	return map[string]any{
		RoleAMQPBroker:          map[string]any{"service": ServiceQpidd},
		RoleAPI:                 api,
		RoleMongod:              map[string]any{},
		RolePulpCelerybeat:      map[string]any{},
		RolePulpCLI:             map[string]any{},
		RolePulpResourceManager: map[string]any{},
		RolePulpWorkers:         map[string]any{},
		RoleShell:               shell,
		RoleSquid:               map[string]any{},
	}
}

func TestConvertLegacy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		old  map[string]any
		want map[string]any
	}{
		{
			name: "every field set",
			old: map[string]any{"pulp": map[string]any{
				"base_url":      "https://pulp.example.com",
				"auth":          []any{"alice", "hackme"},
				"verify":        "/etc/pki/ca.pem",
				"version":       "2.8",
				"cli_transport": "local",
			}},
			want: map[string]any{
				"pulp": map[string]any{"auth": []any{"alice", "hackme"}, "version": "2.8"},
				"systems": []any{map[string]any{
					"hostname": "pulp.example.com",
					"roles": allRoles(
						map[string]any{"scheme": "https", "verify": "/etc/pki/ca.pem"},
						map[string]any{"transport": "local"},
					),
				}},
			},
		},
		{
			name: "defaults",
			old:  map[string]any{"pulp": map[string]any{"base_url": "http://pulp.example.com:8080/pulp"}},
			want: map[string]any{
				"pulp": map[string]any{"auth": []any{"admin", "admin"}},
				"systems": []any{map[string]any{
					"hostname": "pulp.example.com",
					"roles": allRoles(
						map[string]any{"scheme": "http", "verify": false},
						map[string]any{"transport": "ssh"},
					),
				}},
			},
		},
		{
			name: "explicit verification",
			old: map[string]any{"pulp": map[string]any{
				"base_url": "https://pulp.example.com/",
				"verify":   true,
				"auth":     []any{},
			}},
			want: map[string]any{
				"pulp": map[string]any{"auth": []any{"admin", "admin"}},
				"systems": []any{map[string]any{
					"hostname": "pulp.example.com",
					"roles": allRoles(
						map[string]any{"scheme": "https", "verify": true},
						map[string]any{"transport": "ssh"},
					),
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ConvertLegacy(tt.old)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ConvertLegacy() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertLegacyResultIsValid(t *testing.T) {
	t.Parallel()

	converted, err := ConvertLegacy(fixtureRecord(t, "legacy.json"))
	require.NoError(t, err)
	assert.NoError(t, Validate(converted))
	assert.False(t, IsLegacy(converted))
}

func TestConvertLegacyBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []any{nil, "", "not a url", "https://"} {
		pulp := map[string]any{}
		if baseURL != nil {
			pulp["base_url"] = baseURL
		}
		_, err := ConvertLegacy(map[string]any{"pulp": pulp})
		assert.ErrorIs(t, err, ErrLegacyBaseURL, "base_url %v", baseURL)
	}
}

func TestIsLegacy(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLegacy(fixtureRecord(t, "legacy.json")))
	assert.False(t, IsLegacy(fixtureRecord(t, "settings.json")))
	assert.False(t, IsLegacy(map[string]any{}))
	assert.False(t, IsLegacy(map[string]any{"systems": []any{}}))
}
