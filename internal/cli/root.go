// Package cli implements recordctl, the staff client for the record shop API.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recordshop/internal/client"
	"recordshop/internal/model"
	"recordshop/internal/policy"
)

const (
	defaultAPIURL = "http://localhost:8080"
	appDirName    = "recordctl"
)

// FileConfig is the optional yaml config file.
type FileConfig struct {
	APIURL     string `yaml:"api_url"`
	SessionDir string `yaml:"session_dir"`
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	APIURL     string
	SessionDir string
}

// NewRootCommand creates the root command for recordctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "recordctl",
		Short:         "recordctl - record shop inventory client",
		Long:          "Log in as shop staff, browse and edit the record inventory, and export it to spreadsheet or PDF.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "path to the yaml config file")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", defaultAPIURL, "base URL of the record shop API")
	cmd.PersistentFlags().StringVar(&opts.SessionDir, "session-dir", defaultSessionDir(), "directory holding "+client.SessionFileName)

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewFormatsCommand(opts))
	cmd.AddCommand(NewGenresCommand(opts))

	return cmd
}

// resolve applies the config file under any flag the user did not set.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if o.ConfigPath == "" {
		return nil
	}
	data, err := os.ReadFile(o.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", o.ConfigPath, err)
	}
	flags := cmd.Flags()
	if fc.APIURL != "" && !flags.Changed("api-url") {
		o.APIURL = fc.APIURL
	}
	if fc.SessionDir != "" && !flags.Changed("session-dir") {
		o.SessionDir = fc.SessionDir
	}
	return nil
}

func (o *RootOptions) sessions() *client.SessionStore {
	return client.NewSessionStore(o.SessionDir)
}

func (o *RootOptions) client(token string) *client.Client {
	return client.New(o.APIURL, client.WithToken(token))
}

// requireSession loads the stored session and checks the role may do action.
func (o *RootOptions) requireSession(action policy.Action) (*client.Session, *client.Client, error) {
	session, err := o.sessions().Load()
	if err != nil {
		if errors.Is(err, client.ErrNotLoggedIn) {
			return nil, nil, errors.New("not logged in: run `recordctl login` first")
		}
		return nil, nil, err
	}
	if !policy.Allowed(session.Role, action) {
		return nil, nil, fmt.Errorf("your role (%s) does not allow %s", roleLabel(session.Role), action)
	}
	return session, o.client(session.Token), nil
}

func roleLabel(role model.Role) string {
	return fmt.Sprintf("%s, %s", role, policy.AssignmentTitle(role))
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, "config.yaml")
}

func defaultSessionDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, appDirName)
}
