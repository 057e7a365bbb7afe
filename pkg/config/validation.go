package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/omaciel/uplink/pkg/validation"
	"github.com/omaciel/uplink/pkg/versions"
)

// Validate checks a settings record, as decoded from JSON, against the
// settings schema and then checks that the systems together cover
// RequiredRoles. Every violation is collected; the result is nil or a
// *ValidationError. The record is not modified.
func Validate(record map[string]any) error {
	normalized, err := normalizeRecord(record)
	if err != nil {
		return &ValidationError{Messages: []string{
			fmt.Sprintf("Failed to validate config because it cannot be represented as JSON: %v.", err),
		}}
	}

	var messages []string
	validateNode(settingsSchema, normalized, nil, &messages)
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}

	if missing := missingRequiredRoles(normalized); len(missing) > 0 {
		return &ValidationError{Messages: []string{
			"The following roles are missing: " + strings.Join(missing, ", "),
		}}
	}
	return nil
}

// normalizeRecord turns Go literals ([]string, RoleOptions, ...) into the
// shapes encoding/json decodes to, so the walker sees a single set of types.
func normalizeRecord(record map[string]any) (any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// missingRequiredRoles assumes a structurally valid record.
func missingRequiredRoles(record any) []string {
	present := map[string]struct{}{}
	systems, _ := record.(map[string]any)["systems"].([]any)
	for _, system := range systems {
		roles, _ := system.(map[string]any)["roles"].(map[string]any)
		for role := range roles {
			present[role] = struct{}{}
		}
	}

	var missing []string
	for _, role := range RequiredRoles {
		if _, ok := present[role]; !ok {
			missing = append(missing, role)
		}
	}
	slices.Sort(missing)
	return missing
}

// validateNode appends one message per violation of n found in value.
// path holds map keys (string) and array indexes (int).
func validateNode(n *schemaNode, value any, path []any, messages *[]string) {
	fail := func(reason string) {
		*messages = append(*messages, fmt.Sprintf("Failed to validate config%s because %s.", formatPath(path), reason))
	}

	if len(n.types) > 0 && !slices.Contains(n.types, jsonType(value)) {
		quoted := make([]string, len(n.types))
		for i, t := range n.types {
			quoted[i] = "'" + t + "'"
		}
		fail(fmt.Sprintf("%s is not of type %s", describe(value), strings.Join(quoted, ", ")))
		return
	}

	switch val := value.(type) {
	case map[string]any:
		for _, name := range n.required {
			if _, ok := val[name]; !ok {
				fail(fmt.Sprintf("'%s' is a required property", name))
			}
		}
		keys := slices.Sorted(maps.Keys(val))
		if n.closed {
			var unexpected []string
			for _, key := range keys {
				if _, ok := n.properties[key]; !ok {
					unexpected = append(unexpected, "'"+key+"'")
				}
			}
			if len(unexpected) > 0 {
				verb := "was"
				if len(unexpected) > 1 {
					verb = "were"
				}
				fail(fmt.Sprintf("additional properties are not allowed (%s %s unexpected)",
					strings.Join(unexpected, ", "), verb))
			}
		}
		for _, key := range keys {
			if child, ok := n.properties[key]; ok {
				validateNode(child, val[key], appendPath(path, key), messages)
			}
		}
	case []any:
		if n.minItems != nil && len(val) < *n.minItems {
			fail(describe(val) + " is too short")
		}
		if n.maxItems != nil && len(val) > *n.maxItems {
			fail(describe(val) + " is too long")
		}
		if n.items != nil {
			for i, item := range val {
				validateNode(n.items, item, appendPath(path, i), messages)
			}
		}
	case string:
		switch {
		case n.minLength != nil && len(val) < *n.minLength:
			fail(describe(val) + " is too short")
		case len(n.enum) > 0 && !slices.Contains(n.enum, val):
			fail(fmt.Sprintf("%s is not one of %s", describe(val), describe(stringsToAny(n.enum))))
		case n.format != "" && !checkFormat(n.format, val):
			fail(fmt.Sprintf("%s is not a '%s'", describe(val), n.format))
		}
	}
}

func checkFormat(format, value string) bool {
	switch format {
	case formatHostname:
		return validation.ValidateHostname(value) == nil
	case formatVersion:
		_, err := versions.Parse(value)
		return err == nil
	default:
		return true
	}
}

// appendPath never shares the backing array between siblings.
func appendPath(path []any, elem any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

func formatPath(path []any) string {
	var b strings.Builder
	for _, elem := range path {
		switch e := elem.(type) {
		case int:
			b.WriteString("[" + strconv.Itoa(e) + "]")
		default:
			b.WriteString("['" + fmt.Sprint(e) + "']")
		}
	}
	return b.String()
}

func jsonType(value any) string {
	switch value.(type) {
	case map[string]any:
		return typeObject
	case []any:
		return typeArray
	case string:
		return typeString
	case bool:
		return typeBoolean
	case nil:
		return typeNull
	default:
		return typeNumber
	}
}

// describe renders a decoded JSON value for a validation message.
func describe(value any) string {
	switch val := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", `\'`) + "'"
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = describe(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := slices.Sorted(maps.Keys(val))
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = describe(key) + ": " + describe(val[key])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(val)
	}
}
