package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kashvi-shop/app/routes"
	"github.com/shashiranjanraj/kashvi-shop/config"
	"github.com/shashiranjanraj/kashvi-shop/internal/kernel"
	"github.com/shashiranjanraj/kashvi-shop/internal/server"
	"github.com/shashiranjanraj/kashvi-shop/pkg/database"
)

// shop serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		flush := setupLogger(ctx, cfg)
		defer flush()

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		store, closeCache, err := openCache(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer closeCache()

		handler := kernel.NewHandler(routes.Deps{
			DB:           db,
			Cache:        store,
			CacheTTL:     cfg.Redis.TTL,
			OrderTimeout: cfg.Orders.TxTimeout,
		}, cfg.HTTP)

		return server.Run(ctx, cfg.App.Addr(), handler)
	},
}

// shop route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := kernel.NewRouter(routes.Deps{}, config.HTTPConfig{})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
