package config

import (
	"encoding/json"
	"slices"
	"strings"
)

// PulpSystem is one host of a Pulp deployment and the roles it fulfils.
// Treat values as immutable; use Clone before changing Roles.
type PulpSystem struct {
	Hostname string                 `json:"hostname"`
	Roles    map[string]RoleOptions `json:"roles"`
}

// HasRole reports whether the system declares role.
func (s PulpSystem) HasRole(role string) bool {
	_, ok := s.Roles[role]
	return ok
}

// RoleNames returns the declared roles, sorted.
func (s PulpSystem) RoleNames() []string {
	names := make([]string, 0, len(s.Roles))
	for name := range s.Roles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// API returns the typed api options, or false when the role is absent.
func (s PulpSystem) API() (APIOptions, bool) {
	opts, ok := s.Roles[RoleAPI]
	if !ok {
		return APIOptions{}, false
	}
	scheme, _ := opts["scheme"].(string)
	return APIOptions{
		Scheme: scheme,
		Verify: tlsVerifyFrom(opts["verify"], true),
	}, true
}

// AMQPBroker returns the typed amqp broker options, or false when the role is absent.
func (s PulpSystem) AMQPBroker() (AMQPBrokerOptions, bool) {
	opts, ok := s.Roles[RoleAMQPBroker]
	if !ok {
		return AMQPBrokerOptions{}, false
	}
	service, _ := opts["service"].(string)
	return AMQPBrokerOptions{Service: service}, true
}

// Shell returns the typed shell options, or false when the role is absent.
func (s PulpSystem) Shell() (ShellOptions, bool) {
	opts, ok := s.Roles[RoleShell]
	if !ok {
		return ShellOptions{}, false
	}
	transport, _ := opts["transport"].(string)
	return ShellOptions{Transport: transport}, true
}

// Clone returns a deep copy of s.
func (s PulpSystem) Clone() PulpSystem {
	out := PulpSystem{Hostname: s.Hostname}
	if s.Roles != nil {
		out.Roles = make(map[string]RoleOptions, len(s.Roles))
		for name, opts := range s.Roles {
			out.Roles[name] = opts.Clone()
		}
	}
	return out
}

// Equal reports whether both systems have the same hostname and roles.
func (s PulpSystem) Equal(other PulpSystem) bool {
	return s.Hostname == other.Hostname && s.rolesKey() == other.rolesKey()
}

// Less orders systems by hostname, then by their roles.
func (s PulpSystem) Less(other PulpSystem) bool {
	if s.Hostname != other.Hostname {
		return s.Hostname < other.Hostname
	}
	return s.rolesKey() < other.rolesKey()
}

// rolesKey is the canonical JSON of the roles; encoding/json sorts map keys.
// A nil and an empty roles map are the same key.
func (s PulpSystem) rolesKey() string {
	if len(s.Roles) == 0 {
		return "{}"
	}
	data, err := json.Marshal(s.Roles)
	if err != nil {
		// Values come from JSON documents or literals; fall back to names only.
		return strings.Join(s.RoleNames(), ",")
	}
	return string(data)
}

// SortSystems sorts systems in place using PulpSystem.Less.
func SortSystems(systems []PulpSystem) {
	slices.SortFunc(systems, func(a, b PulpSystem) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
}

// uniqueSystems drops systems equal to an earlier one, keeping order.
func uniqueSystems(systems []PulpSystem) []PulpSystem {
	out := make([]PulpSystem, 0, len(systems))
	for _, system := range systems {
		if !slices.ContainsFunc(out, system.Equal) {
			out = append(out, system)
		}
	}
	return out
}

// cloneValue deep copies a decoded JSON value.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case RoleOptions:
		out := make(RoleOptions, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	default:
		return val
	}
}
