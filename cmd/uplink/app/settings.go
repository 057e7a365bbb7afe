package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/omaciel/uplink/cmd/uplink/app/ui"
	"github.com/omaciel/uplink/pkg/config"
	"github.com/omaciel/uplink/pkg/logger"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

//nolint:staticcheck // Printed verbatim to users as a full sentence
var errSettingsNotFound = errors.New("there is no settings file. Use `uplink settings create` to create one.")

func newSettingsCmd(provider func() config.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the settings file",
		Long: `The settings command provides subcommands to create, inspect and validate the
settings file describing the Pulp deployment under test.

The file is looked up as uplink/settings.json under $XDG_CONFIG_HOME and then
under each of $XDG_CONFIG_DIRS. Set UPLINK_CONFIG_FILE to use another file
name, or pass --config to use a specific file.`,
	}

	cmd.AddCommand(newSettingsCreateCmd(provider))
	cmd.AddCommand(newSettingsShowCmd(provider))
	cmd.AddCommand(newSettingsValidateCmd(provider))
	cmd.AddCommand(newSettingsPathCmd(provider))
	cmd.AddCommand(newSettingsSystemsCmd(provider))
	cmd.AddCommand(newSettingsSchemaCmd())

	return cmd
}

func newSettingsShowCmd(provider func() config.Provider) *cobra.Command {
	var format, section string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return settingsShowCmdFunc(cmd.OutOrStdout(), provider(), format, section)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format (json or yaml)")
	cmd.Flags().StringVar(&section, "section", "", "Show only this top-level section, such as pulp or systems")

	return cmd
}

func newSettingsValidateCmd(provider func() config.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the settings file",
		Long: `Validate the settings file. Nothing is printed when the file is valid.
A file in the legacy format is reported together with its equivalent in the
current format.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return settingsValidateCmdFunc(provider())
		},
	}
}

func newSettingsPathCmd(provider func() config.Provider) *cobra.Command {
	var showDefault bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the path of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				path string
				err  error
			)
			if showDefault {
				path, err = provider().DefaultConfigFilePath()
			} else {
				path, err = locateSettings(provider())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDefault, "default", false, "Print where a new settings file would be created")

	return cmd
}

func newSettingsSystemsCmd(provider func() config.Provider) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "systems",
		Short: "List the systems in the settings file",
		Long: `List the systems in the settings file with their roles and the services
those roles run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return settingsSystemsCmdFunc(cmd.OutOrStdout(), provider(), role)
		},
	}

	cmd.Flags().StringVar(&role, "role", "",
		fmt.Sprintf("Only list systems with this role (valid roles: %s)", strings.Join(config.Roles, ", ")))

	return cmd
}

func newSettingsSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), config.JSONSchema())
		},
	}
}

// locateSettings maps a missing settings file to errSettingsNotFound.
func locateSettings(provider config.Provider) (string, error) {
	path, err := provider.ConfigFilePath()
	if errors.Is(err, config.ErrConfigFileNotFound) {
		logger.Debugf("%v", err)
		return "", errSettingsNotFound
	}
	if err != nil {
		return "", err
	}
	logger.Debugw("located settings file", "path", path)
	return path, nil
}

func readSettingsRecord(path string) (map[string]any, error) {
	// #nosec G304: path is the located settings file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return config.ParseSettings(data)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func settingsShowCmdFunc(w io.Writer, provider config.Provider, format, section string) error {
	if format != formatJSON && format != formatYAML {
		return fmt.Errorf("invalid format %q (valid formats: %s, %s)", format, formatJSON, formatYAML)
	}

	path, err := locateSettings(provider)
	if err != nil {
		return err
	}

	var content any
	if section != "" {
		raw, err := config.ReadSectionFile(path, section)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &content); err != nil {
			return fmt.Errorf("failed to decode section %q: %w", section, err)
		}
	} else {
		record, err := readSettingsRecord(path)
		if err != nil {
			return err
		}
		content = record
	}

	fmt.Fprintf(w, "Showing settings file %s\n\n", path)
	if format == formatYAML {
		data, err := yaml.Marshal(content)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	}
	return writeJSON(w, content)
}

func settingsValidateCmdFunc(provider config.Provider) error {
	path, err := locateSettings(provider)
	if err != nil {
		return err
	}
	record, err := readSettingsRecord(path)
	if err != nil {
		return err
	}

	if config.IsLegacy(record) {
		suggested, err := config.ConvertLegacy(record)
		if err != nil {
			return fmt.Errorf("the settings file at %s appears to be following the old configuration file format "+
				"and cannot be converted: %w", path, err)
		}
		data, err := json.MarshalIndent(suggested, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return fmt.Errorf("the settings file at %s appears to be following the old configuration file format, "+
			"please update it like below:\n%s", path, data)
	}

	if err := config.Validate(record); err != nil {
		if messages, ok := config.IsValidationError(err); ok {
			return fmt.Errorf("invalid settings file %s\n%s", path, strings.Join(messages, "\n"))
		}
		return err
	}
	logger.Debugf("settings file %s is valid", path)
	return nil
}

func settingsSystemsCmdFunc(w io.Writer, provider config.Provider, role string) error {
	cfg, err := provider.GetConfig()
	if errors.Is(err, config.ErrConfigFileNotFound) {
		return errSettingsNotFound
	}
	if err != nil {
		return err
	}

	systems := cfg.Systems
	if role != "" {
		systems, err = cfg.GetSystems(role)
		if err != nil {
			return err
		}
	}
	return ui.RenderSystemsTable(w, systems)
}
