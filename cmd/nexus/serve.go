package main

import (
	"github.com/IamHari01/NEXUS-TALENT/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start an HTTP server exposing the career analysis endpoint, health check, and metrics.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	srv := server.New(server.Config{Port: a.cfg.Port}, a.engine, a.database, a.logger)
	return srv.Start()
}
