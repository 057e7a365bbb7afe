// Package versions provides the comparable product version used by the
// uplink configuration and the build information of the uplink binary.
package versions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a version string cannot be parsed.
var ErrInvalidVersion = errors.New("invalid version")

// ParseError describes why a version string was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidVersion.
func (*ParseError) Unwrap() error {
	return ErrInvalidVersion
}

// Version is a dot-separated numeric version such as "2.12.1".
// Values are immutable; the zero Version means "unset".
type Version struct {
	raw        string
	components []uint64
}

// Parse parses a dot-separated sequence of non-negative integers.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, &ParseError{Input: s, Reason: "empty string"}
	}
	parts := strings.Split(s, ".")
	components := make([]uint64, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			return Version{}, &ParseError{Input: s, Reason: fmt.Sprintf("component %d is empty", i)}
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, &ParseError{Input: s, Reason: fmt.Sprintf("component %q is not a number", part)}
		}
		components = append(components, n)
	}
	return Version{raw: s, components: components}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never set.
func (v Version) IsZero() bool {
	return len(v.components) == 0
}

// String returns the version as it was written.
func (v Version) String() string {
	return v.raw
}

// Components returns a copy of the numeric components.
func (v Version) Components() []uint64 {
	out := make([]uint64, len(v.components))
	copy(out, v.components)
	return out
}

// Compare returns -1, 0 or 1. The shorter version is padded with zeros,
// so "2.12" and "2.12.0" compare equal.
func Compare(a, b Version) int {
	n := len(a.components)
	if len(b.components) > n {
		n = len(b.components)
	}
	for i := 0; i < n; i++ {
		var x, y uint64
		if i < len(a.components) {
			x = a.components[i]
		}
		if i < len(b.components) {
			y = b.components[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// GreaterOrEqual reports whether v is at least other.
func (v Version) GreaterOrEqual(other Version) bool {
	return Compare(v, other) >= 0
}

// MarshalJSON encodes the version as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// UnmarshalJSON decodes a JSON string into a version.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("version must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
