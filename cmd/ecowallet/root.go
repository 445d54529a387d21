package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/ecowallet-client/internal/app"
	"github.com/heartmarshall/ecowallet-client/internal/config"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// cli carries the state shared by every command of one invocation.
type cli struct {
	configPath string
	role       string
	verbose    bool

	app *app.App
}

// execute runs root and closes whatever the invocation opened, including on
// command failure.
func execute(ctx context.Context, root *cobra.Command, c *cli) error {
	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if cerr := c.app.Close(); cerr != nil && err == nil {
			err = cerr
		}
		c.app = nil
	}
	return err
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:           "ecowallet",
		Short:         "Terminal client for the ecowallet recycling, wallet and insurance platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["standalone"] == "true" {
				return nil
			}
			return c.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&c.role, "role", "", `acting role: "user" or "agent" (default: the role with a stored session)`)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newVersionCmd(),
		c.newStatusCmd(),
		c.newLoginCmd(),
		c.newRegisterCmd(),
		c.newLogoutCmd(),
		c.newProfileCmd(),
		c.newWalletCmd(),
		c.newInsuranceCmd(),
		c.newInboxCmd(),
	)
	return root, c
}

func (c *cli) open(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}

	logger := app.NewLoggerTo(cmd.ErrOrStderr(), cfg.Log)
	slog.SetDefault(logger)

	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

// flagRole returns the --role flag, defaulting to user.
func (c *cli) flagRole() domain.Role {
	if c.role == "" {
		return domain.RoleUser
	}
	return domain.ParseRole(c.role)
}

// actingRole returns the --role flag, or the role with a persisted token
// (agent first), or user.
func (c *cli) actingRole(ctx context.Context) domain.Role {
	if c.role != "" {
		return domain.ParseRole(c.role)
	}
	for _, r := range domain.Roles() {
		if _, err := c.app.Session.Persisted(ctx, r); err == nil {
			return r
		}
	}
	return domain.RoleUser
}

// check turns dispatcher errors into CLI errors. A forced logout clears the
// stored session before reporting.
func (c *cli) check(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrForcedLogout) {
		if lerr := c.app.Session.Logout(ctx); lerr != nil {
			return fmt.Errorf("session ended by backend; local logout failed: %w", lerr)
		}
		return errors.New("session ended by backend; logged out")
	}
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return fmt.Errorf("%w: run `ecowallet login` first", err)
	}
	return err
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

func printStatus(w io.Writer, status domain.Status) error {
	_, err := fmt.Fprintln(w, "status:", status)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the client version",
		Annotations: map[string]string{"standalone": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
			return err
		},
	}
}
