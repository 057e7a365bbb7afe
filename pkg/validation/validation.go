// Package validation provides functions for validating values found in
// uplink settings files.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxHostnameLength is the RFC 1035 limit for a fully qualified name.
const maxHostnameLength = 253

var validate = validator.New()

// ValidateHostname validates that name is an RFC 1123 host name such as
// "pulp.example.com", at most 253 bytes long. The check is lax: dotted IPv4
// literals and labels ending in a hyphen pass, while ports, URLs and
// whitespace are rejected.
func ValidateHostname(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("hostname cannot be empty")
	}
	if len(name) > maxHostnameLength {
		return fmt.Errorf("hostname exceeds maximum length of %d bytes", maxHostnameLength)
	}
	if err := validate.Var(name, "hostname_rfc1123"); err != nil {
		return fmt.Errorf("invalid hostname %q", name)
	}
	return nil
}
