// ABOUTME: Root Cobra command and global state for the inkwell CLI.
// ABOUTME: Loads config and builds the logger, API client, and session before each command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/config"
	"github.com/2389-research/inkwell/internal/logging"
	"github.com/2389-research/inkwell/internal/session"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var globalConfig *config.Config
var globalLogger *logrus.Logger
var globalClient *api.Client
var globalSession *session.Session
var closeLog func() error

var apiURLFlag string

var rootCmd = &cobra.Command{
	Use:     "inkwell",
	Short:   "Terminal client for the inkwell blog",
	Version: version,
	Long: `
██╗███╗   ██╗██╗  ██╗██╗    ██╗███████╗██╗     ██╗
██║████╗  ██║██║ ██╔╝██║    ██║██╔════╝██║     ██║
██║██╔██╗ ██║█████╔╝ ██║ █╗ ██║█████╗  ██║     ██║
██║██║╚██╗██║██╔═██╗ ██║███╗██║██╔══╝  ██║     ██║
██║██║ ╚████║██║  ██╗╚███╔███╔╝███████╗███████╗███████╗
╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ ╚══╝╚══╝ ╚══════╝╚══════╝╚══════╝

Read, write, and moderate a blog from your terminal.
Run 'inkwell browse' for the interactive feed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if apiURLFlag != "" {
			cfg.API.URL = apiURLFlag
		}
		globalConfig = cfg

		globalLogger, closeLog = openLog(cfg)

		timeout, err := cfg.GetTimeout()
		if err != nil {
			return err
		}

		globalSession = session.FromConfig(cfg)
		globalClient = api.NewClient(cfg.GetAPIURL(),
			api.WithToken(globalSession.Token),
			api.WithLogger(globalLogger),
			api.WithTimeout(timeout),
		)
		globalLogger.WithFields(logrus.Fields{
			"command": cmd.CommandPath(),
			"api":     cfg.GetAPIURL(),
		}).Debug("command started")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLog != nil {
			_ = closeLog()
			closeLog = nil
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "API base URL (overrides config and INKWELL_API_URL)")
}

// openLog opens the configured log file. Logging never blocks a command:
// on failure it warns once and discards.
func openLog(cfg *config.Config) (*logrus.Logger, func() error) {
	path, err := cfg.GetLogPath()
	if err == nil {
		var logger *logrus.Logger
		var closeFn func() error
		logger, closeFn, err = logging.New(cfg.Log.Level, path)
		if err == nil {
			return logger, closeFn
		}
	}
	fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	return logging.Discard(), func() error { return nil }
}

// commandContext is cancelled on Ctrl+C or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// saveSession writes the current session into the config file.
func saveSession() error {
	globalSession.Store(globalConfig)
	if err := globalConfig.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func requireLogin() error {
	if !globalSession.LoggedIn() {
		return fmt.Errorf("not logged in - run 'inkwell auth login' first")
	}
	return nil
}

// apiError turns an API failure into a CLI error, preferring the server's message.
func apiError(err error, fallback string) error {
	globalLogger.WithError(err).Warn(fallback)
	if api.MessageOr(err, "") != "" {
		return err
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
