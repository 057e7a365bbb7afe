package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigFileNotFound is returned when no settings file exists in any search root
	ErrConfigFileNotFound = errors.New("configuration file not found")

	// ErrConfigValidation is returned when a settings record fails validation
	ErrConfigValidation = errors.New("configuration is not valid")

	// ErrConfigSectionNotFound is returned when a top-level section is absent from the settings file
	ErrConfigSectionNotFound = errors.New("configuration section not found")

	// ErrLegacyFormat is returned when the settings file uses the deprecated flat format
	ErrLegacyFormat = errors.New("configuration file uses the legacy format")

	// ErrLegacyBaseURL is returned when a legacy record has no usable pulp.base_url
	ErrLegacyBaseURL = errors.New("legacy configuration has no valid pulp.base_url")

	// ErrUnknownRole is returned when a role name is not one of Roles
	ErrUnknownRole = errors.New("unknown role")

	// ErrNoSystemForRole is returned when no system fulfils a role an operation needs
	ErrNoSystemForRole = errors.New("no system fulfils the role")
)

// FileNotFoundError lists every path searched for the settings file.
type FileNotFoundError struct {
	// FileName is the settings file name that was searched for
	FileName string
	// Searched holds the candidate paths in search order
	Searched []string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("uplink is unable to find a configuration file. The following (XDG compliant) paths have been searched: %s",
		strings.Join(e.Searched, ", "))
}

// Is makes errors.Is(err, ErrConfigFileNotFound) true.
func (*FileNotFoundError) Is(target error) bool {
	return target == ErrConfigFileNotFound
}

// ValidationError carries every message produced while validating a record.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "Configuration file is not valid:\n\n" + strings.Join(e.Messages, "\n")
}

// Is makes errors.Is(err, ErrConfigValidation) true.
func (*ValidationError) Is(target error) bool {
	return target == ErrConfigValidation
}

// SectionNotFoundError is returned by ReadSection for an absent section.
type SectionNotFoundError struct {
	Path    string
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found in configuration file %s", e.Section, e.Path)
}

// Is makes errors.Is(err, ErrConfigSectionNotFound) true.
func (*SectionNotFoundError) Is(target error) bool {
	return target == ErrConfigSectionNotFound
}

// LegacyFormatError reports a settings file in the legacy flat format.
// Suggested holds the equivalent record in the current format, for the
// caller to present; nothing is written back.
type LegacyFormatError struct {
	Path      string
	Suggested map[string]any
	// Err is set when the legacy record could not be converted
	Err error
}

func (e *LegacyFormatError) Error() string {
	msg := fmt.Sprintf("the settings file at %s appears to be following the old configuration file format", e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrLegacyFormat) true.
func (*LegacyFormatError) Is(target error) bool {
	return target == ErrLegacyFormat
}

// Unwrap returns the conversion error, if any.
func (e *LegacyFormatError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries validation messages and returns them.
func IsValidationError(err error) ([]string, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Messages, true
	}
	return nil, false
}

// ErrUnsupportedRepresentation is returned by ParseRepresentation for input
// it cannot rebuild a Config from
var ErrUnsupportedRepresentation = errors.New("unsupported config representation")
