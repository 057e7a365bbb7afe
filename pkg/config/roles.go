package config

import (
	"maps"
	"slices"
	"strings"
)

// Role names a function a system performs in a Pulp deployment.
const (
	RoleAMQPBroker          = "amqp broker"
	RoleAPI                 = "api"
	RoleMongod              = "mongod"
	RolePulpCelerybeat      = "pulp celerybeat"
	RolePulpCLI             = "pulp cli"
	RolePulpResourceManager = "pulp resource manager"
	RolePulpWorkers         = "pulp workers"
	RoleShell               = "shell"
	RoleSquid               = "squid"
)

// AMQP broker services.
const (
	ServiceQpidd    = "qpidd"
	ServiceRabbitMQ = "rabbitmq"
)

// Shell transports.
const (
	TransportLocal = "local"
	TransportSSH   = "ssh"
)

// RequiredRoles must be covered by the union of all systems' roles.
var RequiredRoles = []string{
	RoleAMQPBroker,
	RoleAPI,
	RoleMongod,
	RolePulpCelerybeat,
	RolePulpResourceManager,
	RolePulpWorkers,
	RoleShell,
}

// OptionalRoles may be present on a deployment or not.
var OptionalRoles = []string{
	RolePulpCLI,
	RoleSquid,
}

// Roles is every role a system may declare, sorted.
var Roles = sortedUnion(RequiredRoles, OptionalRoles)

// AMQPServices are the services an "amqp broker" role can name.
var AMQPServices = []string{ServiceQpidd, ServiceRabbitMQ}

// IsKnownRole reports whether role is one of Roles.
func IsKnownRole(role string) bool {
	return slices.Contains(Roles, role)
}

// RoleOptions is the free-form options record of a role, such as
// {"scheme": "https", "verify": true} for "api". Unknown options are kept.
type RoleOptions map[string]any

// Clone returns a deep copy of o.
func (o RoleOptions) Clone() RoleOptions {
	if o == nil {
		return nil
	}
	return RoleOptions(cloneValue(map[string]any(o)).(map[string]any))
}

// TLSVerify is the "verify" option of the api role: either a toggle or a
// path to a CA bundle, which implies verification.
type TLSVerify struct {
	Enabled  bool
	CABundle string
}

// Value returns the option as stored in a settings file.
func (v TLSVerify) Value() any {
	if v.CABundle != "" {
		return v.CABundle
	}
	return v.Enabled
}

func tlsVerifyFrom(raw any, fallback bool) TLSVerify {
	switch val := raw.(type) {
	case bool:
		return TLSVerify{Enabled: val}
	case string:
		if val == "" {
			return TLSVerify{Enabled: fallback}
		}
		return TLSVerify{Enabled: true, CABundle: val}
	default:
		return TLSVerify{Enabled: fallback}
	}
}

// APIOptions is the typed view of the "api" role.
type APIOptions struct {
	// Scheme is "http" or "https"; empty means https
	Scheme string
	Verify TLSVerify
}

// AMQPBrokerOptions is the typed view of the "amqp broker" role.
type AMQPBrokerOptions struct {
	// Service is "qpidd" or "rabbitmq"
	Service string
}

// ShellOptions is the typed view of the "shell" role.
type ShellOptions struct {
	// Transport is "local" or "ssh"
	Transport string
}

// ServicesForRoles returns the sorted service names to manage for a
// selection of roles. "api" is served by httpd, "amqp broker" by the
// service it names (when it is a known AMQP service), and "shell" and
// "pulp cli" run no service. Every other role, recognised or not, maps to
// its name with spaces replaced by underscores.
func ServicesForRoles(roles map[string]RoleOptions) []string {
	seen := make(map[string]struct{}, len(roles))
	for role, opts := range roles {
		switch role {
		case RoleAPI:
			seen["httpd"] = struct{}{}
		case RoleAMQPBroker:
			if service, ok := opts["service"].(string); ok && slices.Contains(AMQPServices, service) {
				seen[service] = struct{}{}
			}
		case RoleShell, RolePulpCLI:
			continue
		default:
			seen[strings.ReplaceAll(role, " ", "_")] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

func sortedUnion(sets ...[]string) []string {
	var out []string
	for _, set := range sets {
		for _, s := range set {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	slices.Sort(out)
	return out
}
