// Package app provides the entry point for the uplink command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omaciel/uplink/pkg/config"
	"github.com/omaciel/uplink/pkg/logger"
)

// providerFactory returns the configuration provider for a --config value,
// which is empty when the flag is unset.
type providerFactory func(configPath string) config.Provider

func defaultProviderFactory(configPath string) config.Provider {
	if configPath != "" {
		return config.NewPathProvider(configPath)
	}
	return config.NewDefaultProvider()
}

// NewRootCmd creates a new root command for the uplink CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := newRootCmd(defaultProviderFactory)
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}
	return rootCmd
}

func newRootCmd(newProvider providerFactory) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:               "uplink",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Uplink facilitates functional testing of Pulp",
		Long: `Uplink facilitates functional testing of Pulp.

It manages the settings file describing the Pulp deployment under test: its
credentials, its version and the systems that fulfil each role.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Flags are parsed now, so --debug can take effect
			logger.Initialize()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the settings file (default: search the XDG config directories)")

	provider := func() config.Provider {
		return newProvider(configPath)
	}
	rootCmd.AddCommand(newSettingsCmd(provider))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
