package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/JustJay7/lawdesk/internal/cache"
	"github.com/JustJay7/lawdesk/internal/config"
	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/lock"
	"github.com/JustJay7/lawdesk/internal/scheduler"
	"github.com/JustJay7/lawdesk/internal/seed"
	"github.com/JustJay7/lawdesk/internal/server"
	"github.com/JustJay7/lawdesk/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app holds the wired runtime shared by every command.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *gorm.DB
	clients *entity.Clients
	sync    *deadline.Synchronizer
	lock    *lock.FileLock
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	clients, err := entity.NewClients(db)
	if err != nil {
		return nil, err
	}

	fileLock, err := lock.New(cfg.LockPath)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		db:      db,
		clients: clients,
		sync:    deadline.NewSynchronizer(clients.Deadlines, clients.Schedules, clients.SyncLogs, log),
		lock:    fileLock,
	}, nil
}

func (a *app) scheduler() *scheduler.Scheduler {
	return scheduler.New(a.cfg.Location, a.sync, a.lock, a.log)
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("Failed to close database", "error", err)
	}
	a.log.Sync()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lawdesk",
		Short:         "Law firm case, schedule and payroll service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate()
			},
		},
		newReconcileCmd(),
		newSeedCmd(),
	)
	return root
}

func runServe() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	cacheService := cache.NewCache(a.cfg.CacheSize, a.cfg.CacheTTL)
	srv := server.New(a.cfg, a.db, a.clients, a.sync, cacheService, a.scheduler(), a.log)

	a.log.Info("Starting lawdesk",
		"host", a.cfg.Host,
		"port", a.cfg.Port,
		"database", a.cfg.DatabasePath,
		"reconcile", a.cfg.ReconcileEnabled,
	)

	return srv.Run()
}

func runMigrate() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err := database.Migrate(a.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.log.Info("Database migrations completed successfully")
	return nil
}

func newReconcileCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Repair deadline calendar mirrors once and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			var report deadline.Report
			err = a.lock.Do(cmd.Context(), wait, func(ctx context.Context) error {
				r, rerr := a.sync.Reconcile(ctx)
				report = r
				return rerr
			})
			if err != nil {
				return fmt.Errorf("reconcile failed: %w", err)
			}
			return printJSON(cmd, report)
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 10*time.Second, "How long to wait for a running pass to finish")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load YAML fixtures; existing records are skipped",
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			res, err := seed.NewSeeder(a.clients, a.sync, a.log).Apply(cmd.Context(), fx)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			return printJSON(cmd, res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "Fixture file to load")
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
