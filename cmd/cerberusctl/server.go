package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cerbhq/cerberus/pkg/config"
	"github.com/cerbhq/cerberus/pkg/db"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/logging"
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/endpoints"
	gormstore "github.com/cerbhq/cerberus/pkg/server/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Cerberus application server",
	Long: `Run the Cerberus application server.

Requires the DATABASE_URL environment variable. The bootstrap endpoint is
only usable when CERBERUS_BOOTSTRAP_TOKEN is set to a real value.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
			os.Exit(1)
		}

		if host, _ := cmd.Flags().GetString("bind-address"); host != "" {
			cfg.BindAddress = host
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to build logger:", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			logger.Info("running database migrations")
			if err := runMigrations(); err != nil {
				logger.Fatal("migration failed", zap.Error(err))
			}
		}

		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL, LogLevel: cfg.LogLevel})
		if err != nil {
			logger.Fatal("unable to connect to database", zap.Error(err))
		}

		stores := server.Stores{
			Tenants:  gormstore.NewTenantStore(database),
			Projects: gormstore.NewProjectStore(database),
			Animas:   gormstore.NewAnimaStore(database),
			ApiKeys:  gormstore.NewApiKeyStore(database),
			Health:   gormstore.NewHealthStore(database),
		}

		keyService := keys.NewService(stores.ApiKeys, stores.Tenants, stores.Projects, logger)
		defer keyService.Close()

		if !cfg.BootstrapConfigured() {
			logger.Warn("bootstrap token is unset or still the placeholder; the bootstrap endpoint will refuse all requests")
		}

		s := server.NewServer(stores, keyService, database, logger, *cfg)
		endpoints.RegisterAll(s)

		logger.Info("running server",
			zap.String("address", cfg.BindAddress),
			zap.String("port", cfg.Port),
		)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
