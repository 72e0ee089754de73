// Package main runs the project tracker API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// envFile is loaded into the environment before configuration is read
	envFile string
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Project tracker REST API",
	Long: `api serves the project tracker REST API.

Running it without a subcommand is the same as "api serve".`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
