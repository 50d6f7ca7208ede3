package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/citynights/server/internal/api"
	"github.com/citynights/server/internal/auth"
	"github.com/citynights/server/internal/config"
	"github.com/citynights/server/internal/domain/cityconfig"
	"github.com/citynights/server/internal/domain/users"
	"github.com/citynights/server/internal/domain/venues"
	"github.com/citynights/server/internal/metrics"
	"github.com/citynights/server/internal/storage/postgres"
	"github.com/citynights/server/internal/telemetry"
)

var (
	serverHost     string
	serverPort     int
	skipMigrations bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CityNights HTTP server",
	Long: `Start the CityNights HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables
- Apply pending database migrations (unless --skip-migrations)
- Load the city configuration tables
- Bootstrap the admin user if ADMIN_* env vars are set
- Handle graceful shutdown on SIGINT/SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not run database migrations on startup")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting citynights server")

	metrics.Init(Version, GitCommit, BuildDate)

	shutdownTracing, err := telemetry.InitTracing(context.Background(), cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	if !skipMigrations {
		if err := postgres.MigrateUp(cfg.Database.URL, postgres.DefaultMigrationsPath); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
		logger.Info().Msg("migrations applied")
	}

	cities, err := cityconfig.LoadFile(cfg.CityData.Path)
	if err != nil {
		return fmt.Errorf("city config failed: %w", err)
	}
	logger.Info().Int("cities", cities.Cities()).Str("path", cfg.CityData.Path).Msg("city config loaded")

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewPool(poolCtx, cfg.Database)
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return fmt.Errorf("repository init failed: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)
	venueService := venues.NewService(repo.Venues(), venues.NewCodec(cities))
	userService := users.NewService(repo.Users(), jwtManager)

	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = userService.Bootstrap(bootstrapCtx, cfg.AdminBootstrap.Username, cfg.AdminBootstrap.Password)
	bootstrapCancel()
	if err != nil {
		logger.Error().Err(err).Msg("admin bootstrap failed")
	} else if cfg.AdminBootstrap.Username != "" {
		logger.Info().Str("username", cfg.AdminBootstrap.Username).Msg("admin user ensured")
	}

	router := api.NewRouter(cfg, logger, api.Deps{
		Pool:      pool,
		Venues:    venueService,
		Users:     userService,
		JWT:       jwtManager,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return runUntilSignalled(server, logger)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

// runUntilSignalled serves until SIGINT/SIGTERM, then drains in-flight
// requests with a bounded shutdown.
func runUntilSignalled(server *http.Server, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
