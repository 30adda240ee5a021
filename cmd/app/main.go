package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodorder/cmd"
	httpin "foodorder/internal/adapters/in/http"
	inrabbit "foodorder/internal/adapters/in/rabbitmq"
	"foodorder/internal/adapters/out/memory"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/catalogrepo"
	"foodorder/internal/adapters/out/rabbitmq"
	"foodorder/internal/adapters/out/realtime"
	"foodorder/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envFile := flag.String("env", ".env", "path to the env file, ignored when missing")
	flag.Parse()

	config, err := cmd.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := newLogger(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, config cmd.Config, logger *slog.Logger) error {
	hub, err := realtime.NewHub(realtime.Config{
		PingInterval: config.WSPingInterval,
		PongWait:     config.WSPongWait,
		SendBuffer:   config.WSSendBuffer,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create live hub: %w", err)
	}

	uows, catalog, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var publisher ports.EventPublisher = hub
	var consumer *inrabbit.Consumer
	if config.RabbitMQURL != "" {
		conn, err := amqp.Dial(config.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer closeQuietly(conn, logger)

		publisher, consumer, err = bridge(conn, config.RabbitMQExchange, hub, logger)
		if err != nil {
			return err
		}
	}

	root, err := cmd.NewCompositionRoot(config, logger, uows, catalog, publisher)
	if err != nil {
		return err
	}

	identity, err := httpin.NewIdentity(config.JWTSecret)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	httpin.NewServer(root.CreateHTTPHandlers(), identity, hub, logger).Register(e)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		logger.Info("http server listening", "addr", addr, "store", config.Store)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if consumer != nil {
		g.Go(func() error { return consumer.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		jobManager.StopAll()
		return errors.Join(hub.Shutdown(shutdownCtx), e.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// openStore returns the unit of work factory and catalog of the configured store
// together with a function releasing it.
func openStore(ctx context.Context, config cmd.Config, logger *slog.Logger) (ports.UnitOfWorkFactory, ports.Catalog, func(), error) {
	switch config.Store {
	case cmd.StoreMemory:
		catalog := memory.NewCatalog()
		if err := seedCatalog(ctx, config.CatalogFile, cmd.MemoryCatalogWriter{Catalog: catalog}); err != nil {
			return nil, nil, nil, err
		}
		logger.Warn("using the in-memory store, data is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore()), catalog, func() {}, nil

	default:
		db, err := postgres.Open(ctx, config.DSN(), config.DBConnectTimeout, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, err
		}
		release := func() { closeQuietly(sqlDB, logger) }

		catalog := catalogrepo.NewGormCatalog(db)
		if err = seedCatalog(ctx, config.CatalogFile, catalog); err != nil {
			release()
			return nil, nil, nil, err
		}
		return postgres.NewGormUnitOfWorkFactory(db), catalog, release, nil
	}
}

func seedCatalog(ctx context.Context, path string, w cmd.CatalogWriter) error {
	if path == "" {
		return nil
	}
	seed, err := cmd.LoadCatalogSeed(path)
	if err != nil {
		return err
	}
	return seed.Apply(ctx, w)
}

// bridge wires the cross-instance live channel: handlers publish to the exchange
// and the consumer feeds every instance's hub.
func bridge(conn *amqp.Connection, exchange string, hub *realtime.Hub, logger *slog.Logger) (ports.EventPublisher, *inrabbit.Consumer, error) {
	pubCh, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open publish channel: %w", err)
	}
	if err = rabbitmq.DeclareExchange(pubCh, exchange); err != nil {
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	publisher, err := rabbitmq.NewPublisher(pubCh, exchange, hub, logger)
	if err != nil {
		return nil, nil, err
	}

	consumeCh, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open consume channel: %w", err)
	}
	consumer, err := inrabbit.NewConsumer(consumeCh, exchange, hub, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, consumer, nil
}

func closeQuietly(c io.Closer, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", "error", err)
	}
}
