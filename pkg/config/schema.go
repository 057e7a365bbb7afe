package config

import (
	"maps"
	"slices"
)

// JSON type names used by the settings schema.
const (
	typeObject  = "object"
	typeArray   = "array"
	typeString  = "string"
	typeBoolean = "boolean"
	typeNumber  = "number"
	typeNull    = "null"
)

// Value formats understood by the validator.
const (
	formatHostname = "hostname"
	formatVersion  = "version"
)

// versionPattern is the JSON Schema rendering of formatVersion.
const versionPattern = `^[0-9]+(\.[0-9]+)*$`

// schemaNode is one constraint set of the settings schema. The schema is
// plain data; validateNode walks it against a decoded record.
type schemaNode struct {
	types      []string
	required   []string
	properties map[string]*schemaNode
	// closed rejects properties that are not listed in properties
	closed    bool
	items     *schemaNode
	minItems  *int
	maxItems  *int
	minLength *int
	enum      []string
	format    string
}

func intPtr(i int) *int {
	return &i
}

func objectNode() *schemaNode {
	return &schemaNode{types: []string{typeObject}}
}

// roleNodes holds the option constraints of each known role. Roles are not
// closed: options beyond the listed ones are preserved.
func roleNodes() map[string]*schemaNode {
	nodes := map[string]*schemaNode{
		RoleAMQPBroker: {
			types:    []string{typeObject},
			required: []string{"service"},
			properties: map[string]*schemaNode{
				"service": {types: []string{typeString}, enum: slices.Clone(AMQPServices)},
			},
		},
		RoleAPI: {
			types:    []string{typeObject},
			required: []string{"scheme"},
			properties: map[string]*schemaNode{
				"scheme": {types: []string{typeString}, enum: []string{"http", "https"}},
				"verify": {types: []string{typeBoolean, typeString}},
			},
		},
		RoleShell: {
			types: []string{typeObject},
			properties: map[string]*schemaNode{
				"transport": {types: []string{typeString}, enum: []string{TransportLocal, TransportSSH}},
			},
		},
	}
	for _, role := range Roles {
		if _, ok := nodes[role]; !ok {
			nodes[role] = objectNode()
		}
	}
	return nodes
}

// settingsSchema is the structure of the current settings format.
var settingsSchema = &schemaNode{
	types:    []string{typeObject},
	required: []string{"pulp", "systems"},
	properties: map[string]*schemaNode{
		"pulp": {
			types:    []string{typeObject},
			required: []string{"auth", "version"},
			closed:   true,
			properties: map[string]*schemaNode{
				"auth": {
					types:    []string{typeArray},
					minItems: intPtr(2),
					maxItems: intPtr(2),
					items:    &schemaNode{types: []string{typeString}, minLength: intPtr(1)},
				},
				"version": {
					types:     []string{typeString},
					minLength: intPtr(1),
					format:    formatVersion,
				},
			},
		},
		"systems": {
			types:    []string{typeArray},
			minItems: intPtr(1),
			items: &schemaNode{
				types:    []string{typeObject},
				required: []string{"hostname", "roles"},
				closed:   true,
				properties: map[string]*schemaNode{
					"hostname": {types: []string{typeString}, format: formatHostname},
					"roles": {
						types:      []string{typeObject},
						closed:     true,
						properties: roleNodes(),
					},
				},
			},
		},
	},
}

// JSONSchema renders the settings rules as a draft-07 JSON Schema document,
// for editors and external tooling.
func JSONSchema() map[string]any {
	doc := settingsSchema.jsonSchema()
	doc["$schema"] = "http://json-schema.org/draft-07/schema#"
	doc["title"] = "uplink settings"
	return doc
}

func (n *schemaNode) jsonSchema() map[string]any {
	out := map[string]any{}
	if len(n.types) == 1 {
		out["type"] = n.types[0]
	} else if len(n.types) > 1 {
		out["type"] = stringsToAny(n.types)
	}
	if len(n.required) > 0 {
		out["required"] = stringsToAny(n.required)
	}
	if len(n.properties) > 0 {
		props := make(map[string]any, len(n.properties))
		for _, name := range slices.Sorted(maps.Keys(n.properties)) {
			props[name] = n.properties[name].jsonSchema()
		}
		out["properties"] = props
	}
	if n.closed {
		out["additionalProperties"] = false
	}
	if n.items != nil {
		out["items"] = n.items.jsonSchema()
	}
	if n.minItems != nil {
		out["minItems"] = *n.minItems
	}
	if n.maxItems != nil {
		out["maxItems"] = *n.maxItems
	}
	if n.minLength != nil {
		out["minLength"] = *n.minLength
	}
	if len(n.enum) > 0 {
		out["enum"] = stringsToAny(n.enum)
	}
	switch n.format {
	case "":
	case formatVersion:
		out["pattern"] = versionPattern
	default:
		out["format"] = n.format
	}
	return out
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
