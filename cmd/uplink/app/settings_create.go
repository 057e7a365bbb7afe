package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/omaciel/uplink/pkg/config"
	"github.com/omaciel/uplink/pkg/fileutils"
	"github.com/omaciel/uplink/pkg/logger"
	"github.com/omaciel/uplink/pkg/validation"
	"github.com/omaciel/uplink/pkg/versions"
)

const sshConfigHint = `Make sure to have the following lines on your ~/.ssh/config file:

  Host %s
      StrictHostKeyChecking no
      User %s
      UserKnownHostsFile /dev/null
      ControlMaster auto
      ControlPersist 10m
      ControlPath ~/.ssh/controlmasters/%%C
`

func newSettingsCreateCmd(provider func() config.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a settings file",
		Long: `Create a settings file describing a single system that fulfils every role.
Answers are read from standard input. An existing settings file is only
overwritten after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return settingsCreateCmdFunc(cmd.InOrStdin(), cmd.OutOrStdout(), provider())
		},
	}
}

func settingsCreateCmdFunc(in io.Reader, out io.Writer, provider config.Provider) error {
	p := newPrompter(in, out)

	path, err := provider.ConfigFilePath()
	switch {
	case err == nil:
		fmt.Fprintln(out, "Settings file already exist, continuing will override it.")
		proceed, err := p.confirm("Do you want to continue?", false)
		if err != nil {
			return err
		}
		if !proceed {
			return errAborted
		}
	case errors.Is(err, config.ErrConfigFileNotFound):
		path, err = provider.DefaultConfigFilePath()
		if err != nil {
			return err
		}
	default:
		return err
	}

	record, err := promptSettings(p)
	if err != nil {
		return err
	}
	if err := config.Validate(record); err != nil {
		return fmt.Errorf("refusing to write an invalid settings file: %w", err)
	}

	fmt.Fprintf(out, "Creating the settings file at %s...\n", path)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := fileutils.AtomicWriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	logger.Debugw("settings file written", "path", path)

	fmt.Fprintln(out, "Settings file created, run `uplink settings show` to show its contents.")
	return nil
}

func checkVersion(s string) error {
	_, err := versions.Parse(s)
	return err
}

// promptSettings asks for a single system holding every role.
func promptSettings(p *prompter) (map[string]any, error) {
	username, err := p.ask("Pulp admin username", "admin")
	if err != nil {
		return nil, err
	}
	password, err := p.secret("Pulp admin password", "admin")
	if err != nil {
		return nil, err
	}
	version, err := p.require("Pulp version", checkVersion)
	if err != nil {
		return nil, err
	}
	hostname, err := p.require("System hostname", validation.ValidateHostname)
	if err != nil {
		return nil, err
	}

	useHTTP, err := p.confirm("Is Pulp published using HTTP?", false)
	if err != nil {
		return nil, err
	}
	scheme := "https"
	if useHTTP {
		scheme = "http"
	}

	var verify any = false
	if scheme == "https" {
		verifyHTTPS, err := p.confirm("Verify HTTPS?", false)
		if err != nil {
			return nil, err
		}
		if verifyHTTPS {
			caBundle, err := p.ask("SSL certificate path", "")
			if err != nil {
				return nil, err
			}
			verify = config.TLSVerify{Enabled: true, CABundle: caBundle}.Value()
		}
	}

	useQpid, err := p.confirm("Is Pulp's message broker Qpid?", true)
	if err != nil {
		return nil, err
	}
	broker := config.ServiceRabbitMQ
	if useQpid {
		broker = config.ServiceQpidd
	}

	local, err := p.confirm("Are you running uplink on the Pulp system?", false)
	if err != nil {
		return nil, err
	}
	transport := config.TransportLocal
	if !local {
		transport = config.TransportSSH
		fmt.Fprintln(p.out, "Uplink will be configured to access the Pulp system using SSH, "+
			"so some additional information will be required.")
		sshUser, err := p.ask("SSH username to use", "root")
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(p.out, sshConfigHint, hostname, sshUser)
	}

	return map[string]any{
		"pulp": map[string]any{
			"auth":    []any{username, password},
			"version": version,
		},
		"systems": []any{
			map[string]any{
				"hostname": hostname,
				"roles": map[string]any{
					config.RoleAMQPBroker: map[string]any{"service": broker},
					config.RoleAPI: map[string]any{
						"scheme": scheme,
						"verify": verify,
					},
					config.RoleMongod:              map[string]any{},
					config.RolePulpCelerybeat:      map[string]any{},
					config.RolePulpCLI:             map[string]any{},
					config.RolePulpResourceManager: map[string]any{},
					config.RolePulpWorkers:         map[string]any{},
					config.RoleShell:               map[string]any{"transport": transport},
					config.RoleSquid:               map[string]any{},
				},
			},
		},
	}, nil
}
