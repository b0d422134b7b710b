/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file and record bank",
	Long: `Create the pkcore configuration file with a generated API key and the
directory of the record bank.

Examples:
  pkcore init
  pkcore init --bank-dir ./mybank --config ./pkcore.yaml --print-key`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		bankDir, _ := cmd.Flags().GetString("bank-dir")
		force, _ := cmd.Flags().GetBool("force")
		printKey, _ := cmd.Flags().GetBool("print-key")

		cfg, created, err := initialize(configPath, bankDir, force)
		if err != nil {
			return err
		}
		if !created {
			cmd.Printf("Configuration already exists at %s. Use --force to regenerate it.\n", resolvedConfigPath(configPath))
			return nil
		}

		cmd.Printf("Configuration written to %s\n", resolvedConfigPath(configPath))
		cmd.Printf("Bank directory: %s\n", cfg.BankDir)
		if printKey {
			cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		}
		cmd.Printf("\nStart the API with:\n  pkcore serve\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")
}

func resolvedConfigPath(configPath string) string {
	if configPath == "" {
		return config.GetDefaultConfigPath()
	}
	return configPath
}

// initialize bootstraps the configuration unless one exists and force is
// unset. It reports whether a new configuration was written.
func initialize(configPath, bankDir string, force bool) (*config.Config, bool, error) {
	configPath = resolvedConfigPath(configPath)
	if config.ConfigExists(configPath) && !force {
		cfg, err := config.LoadConfig(configPath)
		return cfg, false, err
	}

	cfg, err := config.BootstrapConfig(configPath, bankDir)
	if err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(cfg.BankDir, 0750); err != nil {
		return nil, false, fmt.Errorf("failed to create bank dir: %w", err)
	}
	return cfg, true, nil
}
