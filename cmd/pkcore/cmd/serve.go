/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/api"
	"github.com/ssargent/pkcore/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Serve the record bank over HTTP. Requests under /api/v1 need the API key
from the configuration in the X-API-Key header; /metrics is open.

Examples:
  pkcore serve
  pkcore serve --port 9000 --bind 0.0.0.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			a.cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			a.cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if key := a.cfg.Security.APIKey; key == "" || key == "auto" {
			return errors.New("no API key configured, run 'pkcore init' first")
		}
		if container == nil {
			return errors.New("dependency container not initialized")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			deps := api.Deps{
				Converter: a.converter(),
				Tables:    a.tables,
				Logger:    a.logger,
			}
			cfg := api.ServerConfig{
				Port:          a.cfg.Port,
				Bind:          a.cfg.Bind,
				APIKey:        a.cfg.Security.APIKey,
				MaxUploadSize: int64(a.cfg.Security.MaxUploadSize),
			}
			return container.GetServerFactory().CreateServerStarter().StartServer(ctx, bank, deps, cfg)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
}
