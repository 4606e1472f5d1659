// ABOUTME: Root Cobra command and global flags for snapgram CLI.
// ABOUTME: Sets up lifecycle hooks for config, logger, storage port, and service initialization.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/config"
	"github.com/2389-research/snapgram/internal/logging"
	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/social"
	"github.com/2389-research/snapgram/internal/storage"
)

var globalConfig *config.Config
var globalLogger *zap.Logger
var globalPort storage.Port
var globalServices *social.Services

// Flags
var (
	flagEphemeral bool
	flagDBPath    string
)

var rootCmd = &cobra.Command{
	Use:   "snapgram",
	Short: "Local-first photo sharing from your terminal",
	Long: `
███████╗███╗   ██╗ █████╗ ██████╗  ██████╗ ██████╗  █████╗ ███╗   ███╗
██╔════╝████╗  ██║██╔══██╗██╔══██╗██╔════╝ ██╔══██╗██╔══██╗████╗ ████║
███████╗██╔██╗ ██║███████║██████╔╝██║  ███╗██████╔╝███████║██╔████╔██║
╚════██║██║╚██╗██║██╔══██║██╔═══╝ ██║   ██║██╔══██╗██╔══██║██║╚██╔╝██║
███████║██║ ╚████║██║  ██║██║     ╚██████╔╝██║  ██║██║  ██║██║ ╚═╝ ██║
╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝      ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝

Posts, stories, follows, and notes for humans and agents.
Everything lives in one local SQLite file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDBPath != "" {
			cfg.Storage.Path = flagDBPath
		}
		globalConfig = cfg

		logger, err := logging.New(cfg.LogLevel(), cfg.Log.JSON)
		if err != nil {
			return err
		}
		globalLogger = logger

		port, err := openPort(cfg)
		if err != nil {
			return err
		}
		globalPort = port

		globalServices = social.New(port, logger)
		if err := globalServices.Initialize(social.DefaultSeed()); err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalPort != nil {
			_ = globalPort.Close()
			globalPort = nil
		}
		if globalLogger != nil {
			_ = globalLogger.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Use an in-memory store that is discarded on exit")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (overrides config)")
}

func openPort(cfg *config.Config) (storage.Port, error) {
	if flagEphemeral {
		return storage.NewMemoryPort(), nil
	}
	path, err := cfg.GetDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	port, err := storage.NewSQLitePort(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return port, nil
}

// requireUser resolves the session user with a CLI-friendly error.
func requireUser() (*models.User, error) {
	user, err := globalServices.CurrentUser()
	if err != nil {
		return nil, explain(err)
	}
	return user, nil
}

// explain rewrites service sentinels into messages that tell the user what to do next.
func explain(err error) error {
	var corrupt *social.CorruptError
	switch {
	case errors.Is(err, social.ErrNoSession):
		return fmt.Errorf("not logged in - run 'snapgram login <name>' first")
	case errors.As(err, &corrupt):
		return fmt.Errorf("stored %s is unreadable (%v) - run 'snapgram init --reset %s' to replace it with its default",
			corrupt.Key, corrupt.Err, corrupt.Key)
	case errors.Is(err, social.ErrCorrupt):
		return fmt.Errorf("stored data is unreadable (%v) - run 'snapgram init' to restore defaults", err)
	default:
		return err
	}
}
