package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/database/seeders"
	"github.com/shashiranjanraj/kashvi-shop/pkg/database"
	"github.com/shashiranjanraj/kashvi-shop/pkg/migration"
)

// withDB loads config, connects, runs fn and closes the connection.
func withDB(fn func(db *gorm.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flush := setupLogger(context.Background(), cfg)
	defer flush()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck
	return fn(db)
}

// shop migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			_, err := migration.New(db, cmd.OutOrStdout()).Run()
			return err
		})
	},
}

// shop migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			_, err := migration.New(db, cmd.OutOrStdout()).Rollback()
			return err
		})
	},
}

// shop migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			return migration.New(db, cmd.OutOrStdout()).Status()
		})
	},
}

// shop seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users and catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(db, cmd.OutOrStdout())
		})
	},
}
