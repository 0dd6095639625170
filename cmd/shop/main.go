// Command shop runs the e-commerce API and its maintenance tasks.
//
//	shop serve              start the HTTP server
//	shop migrate            apply pending migrations
//	shop migrate:rollback   revert the last batch
//	shop migrate:status     list migrations
//	shop seed               insert demo users and catalogue
//	shop route:list         print the route table
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/kashvi-shop/database/migrations"
)

var (
	configPath string
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:           "shop",
	Short:         "E-commerce API server and tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/app.json", "JSON config file (optional)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "dotenv file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
