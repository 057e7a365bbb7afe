package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationCase struct {
	name   string
	mutate func(record map[string]any)
	want   []string
	// crossRecord marks violations only the role coverage check catches
	crossRecord bool
}

func pulpSection(record map[string]any) map[string]any {
	return record["pulp"].(map[string]any)
}

func systemAt(record map[string]any, i int) map[string]any {
	return record["systems"].([]any)[i].(map[string]any)
}

func rolesAt(record map[string]any, i int) map[string]any {
	return systemAt(record, i)["roles"].(map[string]any)
}

func validationCases() []validationCase {
	return []validationCase{
		{
			name: "empty auth and hostname",
			mutate: func(record map[string]any) {
				pulpSection(record)["auth"] = []any{}
				systemAt(record, 0)["hostname"] = ""
			},
			want: []string{
				"Failed to validate config['pulp']['auth'] because [] is too short.",
				"Failed to validate config['systems'][0]['hostname'] because '' is not a 'hostname'.",
			},
		},
		{
			name:   "missing pulp section",
			mutate: func(record map[string]any) { delete(record, "pulp") },
			want:   []string{"Failed to validate config because 'pulp' is a required property."},
		},
		{
			name:   "missing auth",
			mutate: func(record map[string]any) { delete(pulpSection(record), "auth") },
			want:   []string{"Failed to validate config['pulp'] because 'auth' is a required property."},
		},
		{
			name:   "too many credentials",
			mutate: func(record map[string]any) { pulpSection(record)["auth"] = []any{"a", "b", "c"} },
			want:   []string{"Failed to validate config['pulp']['auth'] because ['a', 'b', 'c'] is too long."},
		},
		{
			name:   "empty password",
			mutate: func(record map[string]any) { pulpSection(record)["auth"] = []any{"admin", ""} },
			want:   []string{"Failed to validate config['pulp']['auth'][1] because '' is too short."},
		},
		{
			name:   "malformed version",
			mutate: func(record map[string]any) { pulpSection(record)["version"] = "2.x" },
			want:   []string{"Failed to validate config['pulp']['version'] because '2.x' is not a 'version'."},
		},
		{
			name:   "legacy key in pulp section",
			mutate: func(record map[string]any) { pulpSection(record)["base_url"] = "https://pulp.example.com" },
			want:   []string{"Failed to validate config['pulp'] because additional properties are not allowed ('base_url' was unexpected)."},
		},
		{
			name:   "no systems",
			mutate: func(record map[string]any) { record["systems"] = []any{} },
			want:   []string{"Failed to validate config['systems'] because [] is too short."},
		},
		{
			name:   "hostname is not a string",
			mutate: func(record map[string]any) { systemAt(record, 0)["hostname"] = 5 },
			want:   []string{"Failed to validate config['systems'][0]['hostname'] because 5 is not of type 'string'."},
		},
		{
			name:   "unknown role",
			mutate: func(record map[string]any) { rolesAt(record, 0)["web"] = map[string]any{} },
			want:   []string{"Failed to validate config['systems'][0]['roles'] because additional properties are not allowed ('web' was unexpected)."},
		},
		{
			name: "unsupported scheme",
			mutate: func(record map[string]any) {
				rolesAt(record, 1)["api"].(map[string]any)["scheme"] = "ftp"
			},
			want: []string{"Failed to validate config['systems'][1]['roles']['api']['scheme'] because 'ftp' is not one of ['http', 'https']."},
		},
		{
			name: "verify of the wrong type",
			mutate: func(record map[string]any) {
				rolesAt(record, 0)["api"].(map[string]any)["verify"] = 1
			},
			want: []string{"Failed to validate config['systems'][0]['roles']['api']['verify'] because 1 is not of type 'boolean', 'string'."},
		},
		{
			name: "unsupported broker",
			mutate: func(record map[string]any) {
				rolesAt(record, 0)["amqp broker"] = map[string]any{"service": "kafka"}
			},
			want: []string{"Failed to validate config['systems'][0]['roles']['amqp broker']['service'] because 'kafka' is not one of ['qpidd', 'rabbitmq']."},
		},
		{
			name: "required roles missing",
			mutate: func(record map[string]any) {
				for i := range record["systems"].([]any) {
					delete(rolesAt(record, i), RoleAPI)
					delete(rolesAt(record, i), RolePulpWorkers)
				}
			},
			want:        []string{"The following roles are missing: api, pulp workers"},
			crossRecord: true,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid settings", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Validate(fixtureRecord(t, "settings.json")))
	})

	for _, tt := range validationCases() {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			record := fixtureRecord(t, "settings.json")
			tt.mutate(record)

			err := Validate(record)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigValidation)
			messages, ok := IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, messages)
		})
	}
}

func TestValidateGoValues(t *testing.T) {
	t.Parallel()

	record := map[string]any{
		"pulp": map[string]any{"auth": []string{"admin", "admin"}, "version": "2.12"},
		"systems": []any{
			map[string]any{
				"hostname": "pulp.example.com",
				"roles": map[string]RoleOptions{
					RoleAMQPBroker:          {"service": ServiceQpidd},
					RoleAPI:                 {"scheme": "https"},
					RoleMongod:              {},
					RolePulpCelerybeat:      {},
					RolePulpResourceManager: {},
					RolePulpWorkers:         {},
					RoleShell:               {},
				},
			},
		},
	}
	assert.NoError(t, Validate(record))
}

func TestValidateDoesNotModifyRecord(t *testing.T) {
	t.Parallel()

	record := fixtureRecord(t, "settings.json")
	pulpSection(record)["auth"] = []any{}
	before := fixtureRecord(t, "settings.json")
	pulpSection(before)["auth"] = []any{}

	require.Error(t, Validate(record))
	if diff := cmp.Diff(before, record); diff != "" {
		t.Errorf("record changed (-before +after):\n%s", diff)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Messages: []string{"first", "second"}}
	assert.Equal(t, "Configuration file is not valid:\n\nfirst\nsecond", err.Error())
}
