/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/config"
	"github.com/ssargent/pkcore/pkg/di"
	"github.com/ssargent/pkcore/pkg/logging"
	"github.com/ssargent/pkcore/pkg/personal"
	"github.com/ssargent/pkcore/pkg/storage"
	"github.com/ssargent/pkcore/pkg/transfer"
)

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

type appKey struct{}

// app is the configuration every subcommand runs with
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	tables personal.Provider
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pkcore",
	Short: "pkcore - Pokémon record toolkit",
	Long: `pkcore reads, converts and banks Pokémon records from generations 3 to 8
and Let's Go Pikachu/Eevee, and inspects the save files that hold them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.config/pkcore/config.yaml)")
	rootCmd.PersistentFlags().String("bank-dir", "", "Bank directory (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("personal", "", "YAML personal table file replacing the built-in data")
}

// loadApp reads the config file when present, applies flag overrides and
// installs replacement personal tables
func loadApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v, _ := cmd.Flags().GetString("bank-dir"); v != "" {
		cfg.BankDir = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Logging.Format = v
	}
	if v, _ := cmd.Flags().GetString("personal"); v != "" {
		cfg.Tables.PersonalPath = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	var tables personal.Provider = personal.Default()
	if cfg.Tables.PersonalPath != "" {
		ds, err := personal.LoadYAML(cfg.Tables.PersonalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load personal tables: %w", err)
		}
		tables = ds
		logger.Debug("personal tables loaded", "path", cfg.Tables.PersonalPath, "entries", ds.Len())
	}
	codec.UsePersonal(tables)

	return &app{cfg: cfg, logger: logger, tables: tables}, nil
}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return a, nil
}

func (a *app) converter() *transfer.Converter {
	return transfer.NewConverter(a.tables,
		transfer.WithLogger(a.logger),
		transfer.WithWorkers(a.cfg.Transfer.Workers),
	)
}

// openBank opens the configured bank through the container
func (a *app) openBank() (*storage.Bank, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}
	if err := os.MkdirAll(a.cfg.BankDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create bank dir: %w", err)
	}
	return container.GetBankOpener()(a.cfg.BankDir, a.logger)
}
