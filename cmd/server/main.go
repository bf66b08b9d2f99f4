// Package main - punto de entrada del servidor del libro de clases.
//
// El sistema registra la asistencia diaria de un curso: una lista de
// alumnos, un registro inmutable por fecha y un reporte mensual de
// porcentajes de asistencia.
//
// La arquitectura sigue Clean Architecture y DDD:
// - Domain: reglas de negocio puras (roster, attendance)
// - Application: casos de uso (Commands/Queries)
// - Infrastructure: Redis, PostgreSQL, archivos, event bus
// - Interface: API HTTP
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aula-hub/libro-de-clases/config"
	"github.com/aula-hub/libro-de-clases/internal/application/command"
	"github.com/aula-hub/libro-de-clases/internal/application/query"
	"github.com/aula-hub/libro-de-clases/internal/domain/attendance"
	"github.com/aula-hub/libro-de-clases/internal/domain/roster"
	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/messaging"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/persistence/memory"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/persistence/postgres"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/persistence/redis"
	"github.com/aula-hub/libro-de-clases/internal/infrastructure/rosterfile"
	httpserver "github.com/aula-hub/libro-de-clases/internal/interface/http"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
	"github.com/aula-hub/libro-de-clases/pkg/retry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURACIÓN
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.Observability.AddCaller,
	})
	log.Info("starting libro de clases",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("timezone", cfg.App.Timezone),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	bus := messaging.NewEventBus(log)
	bus.SubscribeAll(func(ctx context.Context, event shared.Event) {
		log.Debug("domain event",
			logger.String("event_type", string(event.EventType())),
			logger.String("event_id", event.EventID()),
		)
	})

	// ─────────────────────────────────────────────────────────────────────────
	// 4. CARGA DEL ROSTER
	// ─────────────────────────────────────────────────────────────────────────
	var src roster.Source
	var dbConn *postgres.Connection

	switch cfg.Roster.Source {
	case config.RosterSourcePostgres:
		log.Info("connecting to database...")
		dbConn, err = postgres.NewConnection(ctx, postgres.Config{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			ConnectTimeout:  cfg.Database.ConnectTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			dbConn.Close()
		}()
		src = postgres.NewRosterSource(dbConn)
	default:
		src = rosterfile.NewSource(cfg.Roster.FilePath)
	}

	rosterStore, err := retry.DoWithData(ctx, func(ctx context.Context) (*roster.Store, error) {
		st, err := roster.Load(ctx, src)
		if err != nil && shared.IsSourceUnavailable(err) {
			return nil, retry.Retryable(err)
		}
		return st, err
	}, retry.RosterSourceOptions()...)
	usedFallback := false
	if err != nil {
		if !shared.IsSourceUnavailable(err) || !cfg.Roster.UseFallback {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		log.Warn("roster source unavailable, using built-in fallback roster", logger.Err(err))
		rosterStore, err = roster.NewStore(roster.Fallback())
		if err != nil {
			return fmt.Errorf("failed to build fallback roster: %w", err)
		}
		usedFallback = true
	}
	bus.Publish(ctx, shared.NewRosterLoadedEvent(rosterStore.Count(), usedFallback))
	log.Info("roster loaded",
		logger.RosterSize(rosterStore.Count()),
		logger.Bool("fallback", usedFallback),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ALMACENAMIENTO DE REGISTROS (Redis o memoria)
	// ─────────────────────────────────────────────────────────────────────────
	var repo attendance.Repository
	var storageHealth httpserver.HealthChecker

	if cfg.Redis.Disabled {
		log.Warn("redis disabled, attendance records are kept in memory and lost on exit")
		repo = memory.NewRecordStore()
	} else {
		log.Info("connecting to Redis...")
		redisClient, err := retry.DoWithData(ctx, func(ctx context.Context) (*redis.Client, error) {
			c, err := redis.NewClient(redis.Config{
				Host:         cfg.Redis.Host,
				Port:         cfg.Redis.Port,
				Password:     cfg.Redis.Password,
				DB:           cfg.Redis.DB,
				PoolSize:     cfg.Redis.PoolSize,
				MinIdleConns: cfg.Redis.MinIdleConns,
				DialTimeout:  cfg.Redis.DialTimeout,
				ReadTimeout:  cfg.Redis.ReadTimeout,
				WriteTimeout: cfg.Redis.WriteTimeout,
			})
			if err != nil {
				return nil, retry.Retryable(err)
			}
			return c, nil
		}, retry.StorageOptions()...)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing Redis connection...")
			_ = redisClient.Close()
		}()
		repo = redis.NewRecordStore(redisClient)
		storageHealth = redisClient
		log.Info("Redis connection established")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. CAPA DE APLICACIÓN (Commands y Queries)
	// ─────────────────────────────────────────────────────────────────────────
	saveAttendance := command.NewSaveAttendanceHandler(repo, rosterStore, bus, log)
	getDailyRecord := query.NewGetDailyRecordHandler(repo, bus, log)
	monthlyReport := query.NewMonthlyReportHandler(repo, rosterStore, bus, log)
	systemInfo := query.NewSystemInfoHandler(repo, rosterStore, cfg.App.Version)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. SERVIDOR HTTP
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.AdminUser = cfg.Admin.User
	httpConfig.AdminPasswordHash = cfg.Admin.PasswordHash

	server := httpserver.NewServer(httpConfig, httpserver.Dependencies{
		SaveAttendance: saveAttendance,
		GetDailyRecord: getDailyRecord,
		MonthlyReport:  monthlyReport,
		SystemInfo:     systemInfo,
		Roster:         rosterStore,
		Logger:         log,
		Storage:        storageHealth,
	})

	errCh := server.StartAsync()
	log.Info("libro de clases is running", logger.String("http_address", server.Address()))

	// ─────────────────────────────────────────────────────────────────────────
	// 8. APAGADO ORDENADO
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("http server error", logger.Err(err))
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}
