package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"Inshpho/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the HTTP API server",
	Long:    `Start the HTTP API server and block until SIGINT or SIGTERM, then drain in-flight requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg)
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
