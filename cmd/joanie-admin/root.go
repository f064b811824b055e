// joanie-admin is the terminal companion to the Joanie back office:
// it lists and browses the admin resources through the same API the
// SPA uses, and can serve a mock API for local development.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openfun/joanie-sub003/internal/app"
	"github.com/openfun/joanie-sub003/internal/config"
	"github.com/openfun/joanie-sub003/internal/logging"
)

const version = "0.3.0"

// rootFlags are shared by every subcommand talking to the API.
type rootFlags struct {
	apiURL  string
	token   string
	locale  string
	profile string
	verbose bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "joanie-admin",
		Short:         "Back-office client for the Joanie e-commerce API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "API root URL (defaults to JOANIE_API_URL)")
	cmd.PersistentFlags().StringVar(&flags.token, "token", "", "bearer token (defaults to JOANIE_API_TOKEN)")
	cmd.PersistentFlags().StringVar(&flags.locale, "locale", "", "response language, en or fr")
	cmd.PersistentFlags().StringVar(&flags.profile, "config", "", "path to a YAML profile")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newListCommand(flags),
		newBrowseCommand(flags),
		newMockAPICommand(flags),
		newVersionCommand(),
	)
	return cmd
}

// loadConfig resolves the effective configuration: profile and env
// first, command-line flags on top.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.profile != "" {
		os.Setenv("JOANIE_PROFILE", flags.profile)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.apiURL != "" {
		cfg.BaseURL = flags.apiURL
	}
	if flags.token != "" {
		cfg.Token = flags.token
	}
	if flags.locale != "" {
		cfg.Language = flags.locale
	}
	return cfg, nil
}

// buildContainer assembles the logger and the app container for
// commands that talk to the API.
func buildContainer(flags *rootFlags) (*app.Container, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if flags.verbose {
		logger, err = logging.New(cfg.LogLevel, true)
		if err != nil {
			return nil, err
		}
	}

	container, err := app.NewContainer(app.Options{Config: cfg, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	return container, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "joanie-admin", version)
		},
	}
}
