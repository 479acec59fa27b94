// Command song-board serves the song request listing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justestif/go-song-board/internal/cache"
	"github.com/justestif/go-song-board/internal/config"
	"github.com/justestif/go-song-board/internal/db"
	"github.com/justestif/go-song-board/internal/health"
	"github.com/justestif/go-song-board/internal/resilience"
	"github.com/justestif/go-song-board/internal/songs"
	"github.com/justestif/go-song-board/internal/web"
)

var (
	envFile string
	addr    string

	rootCmd = &cobra.Command{
		Use:           "song-board",
		Short:         "Serve the song request listing",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment (default .env)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SONGBOARD_ADDR)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	classifier := resilience.NewMessageClassifier()
	sup := resilience.NewSupervisor(logger.WithPrefix("supervisor"), classifier)
	retrier := resilience.NewRetrier(
		resilience.WithDelay(cfg.RetryDelay),
		resilience.WithClassifier(classifier),
		resilience.WithLogger(logger.WithPrefix("retry")),
	)
	catalog := songs.WithRetry(database.Catalog(), retrier)

	var store cache.Store = cache.NewMemoryStore()
	if cfg.CacheBackend == config.BackendPostgres {
		store = cache.NewPostgresStore(database)
	}
	codec, err := cache.NewCodec(cfg.CacheCompression)
	if err != nil {
		return fmt.Errorf("creating cache codec: %w", err)
	}

	svc := songs.NewService(catalog, store, codec,
		songs.WithLogger(logger.WithPrefix("songs")),
		songs.WithLocation(loc),
		songs.WithPublicDefaults(songs.PublicDefaults(cfg.PublicDefaultLimit)),
	)

	monitor := health.NewMonitor(database,
		health.WithInterval(cfg.HealthInterval),
		health.WithLogger(logger.WithPrefix("health")),
		health.WithGuard(sup.Guard),
	)
	sup.Go("health-monitor", func() error {
		return monitor.Run(ctx)
	})

	server, err := web.NewServer(web.ServerConfig{
		Addr:       cfg.Addr,
		Songs:      svc,
		Health:     monitor,
		Supervisor: sup,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Info("song board ready",
		"cache", cfg.CacheBackend,
		"compression", cfg.CacheCompression,
		"health_interval", cfg.HealthInterval,
	)

	err = server.Run(ctx)
	monitor.Stop()
	sup.Wait()
	return err
}
