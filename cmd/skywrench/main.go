package main

import (
	"os"

	"github.com/spf13/cobra"

	"skywrench/internal/interfaces/cli/migrate"
	"skywrench/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skywrench",
		Short: "SkyWrench - UAV service center management",
		Long:  `SkyWrench runs the UAV service center: the incident workflow API, spare parts inventory, preventive maintenance scheduling, and the supporting background jobs.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
