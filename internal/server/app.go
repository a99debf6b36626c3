// Package server wires storage, authentication, invalidation and image
// storage into the action services and runs the gRPC and HTTP transports
// until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/config"
	"github.com/maaz2022/ourtracker/internal/server/httpapi"
	"github.com/maaz2022/ourtracker/internal/server/images"
	"github.com/maaz2022/ourtracker/internal/server/invalidation"
	"github.com/maaz2022/ourtracker/internal/server/repositories/repomanager"
	"github.com/maaz2022/ourtracker/internal/server/services"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	gs "github.com/maaz2022/ourtracker/internal/server/grpc"
)

const mqttClientID = "ourtracker-server"

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	mqtt     mqtt.Client
	provider *auth.Provider
	actions  services.Actions
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	notifier, err := app.newNotifier()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := app.newImageStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.provider = auth.NewProvider(db, rm, c)
	app.actions = services.Actions{
		Auth:        services.NewAuthService(db, rm, app.provider, logger),
		Inventories: services.NewInventoryService(db, rm, store, notifier, logger),
		Users:       services.NewUserService(db, rm, notifier, logger),
		TrackOrders: services.NewTrackOrderService(db, rm, notifier, logger),
	}

	return app, nil
}

func (app *App) newNotifier() (invalidation.Notifier, error) {
	n := invalidation.Multi{invalidation.NewLog(app.logger)}
	if app.config.MQTTBroker == "" {
		return n, nil
	}

	client, err := invalidation.DialMQTT(app.config.MQTTBroker, mqttClientID)
	if err != nil {
		return nil, fmt.Errorf("mqtt init error: %w", err)
	}
	app.mqtt = client
	return append(n, invalidation.NewMQTT(client, app.config.MQTTTopic)), nil
}

func (app *App) newImageStore(ctx context.Context) (images.Store, error) {
	switch app.config.ImageStorage {
	case config.ImageStorageS3:
		s, err := images.NewS3(ctx, app.config)
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return s, nil
	case config.ImageStorageInline, "":
		return images.Inline{}, nil
	default:
		return nil, fmt.Errorf("unknown image storage %q", app.config.ImageStorage)
	}
}

// Close releases the broker connection and the database pool.
func (app *App) Close() {
	if app.mqtt != nil {
		app.mqtt.Disconnect(250)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "err", err)
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.actions, app.provider)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.actions, app.provider, app.config.AccessTokenValidityDuration)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports until a signal arrives or one of them fails.
func (app *App) Run(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
}
