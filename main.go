package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"teslo/internal/config"
	"teslo/internal/database"
	"teslo/internal/seed"
	"teslo/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "teslo",
	Short:         "Teslo shop catalog and account API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// boot loads config and opens the database with a logger for the environment.
func boot() (*config.Config, *gorm.DB, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Sync()
		return nil, nil, nil, err
	}
	return cfg, db, log, nil
}

// teslo serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, log, err := boot()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}

		app, _ := NewApp(cfg, db, log)

		// Graceful shutdown handling
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		serveErr := make(chan error, 1)
		go func() {
			log.Info("starting server", "port", cfg.AppPort, "env", cfg.AppEnv, "db_driver", cfg.DBDriver)
			serveErr <- app.Listen(cfg.AppPort)
		}()

		select {
		case err := <-serveErr:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}

		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("error during fiber shutdown", "error", err)
		}
		log.Info("server gracefully stopped")
		return nil
	},
}

// teslo migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, log, err := boot()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}

// teslo seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the catalog with the seed products owned by the seed admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, log, err := boot()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		svc := newServices(cfg, db, log)
		n, err := seed.New(svc.users, svc.auth, svc.products, log).Run(context.Background(), seed.Admin{
			Email:    cfg.SeedAdminEmail,
			Password: cfg.SeedAdminPassword,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products\n", n)
		return nil
	},
}
