package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/porterhub/shipment-service/internal/app"
	"github.com/porterhub/shipment-service/internal/config"
	"github.com/porterhub/shipment-service/internal/handler"
	"github.com/porterhub/shipment-service/internal/notifier"
	"github.com/porterhub/shipment-service/internal/postgres"
	"github.com/porterhub/shipment-service/internal/repo"
	"github.com/porterhub/shipment-service/internal/service"
	"github.com/porterhub/shipment-service/pkg/cache"
	"github.com/porterhub/shipment-service/pkg/trm"

	_ "github.com/porterhub/shipment-service/docs"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title           Shipment Lifecycle API
// @version         1.0
// @description     Shipment lifecycle tracking for the delivery platform
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	shipmentRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	shipmentCache := newCache(conf)

	statusNotifier := notifier.NewKafkaNotifier(conf.Kafka)
	defer statusNotifier.Close()

	shipmentService := service.NewShipmentService(
		logger, txManager,
		shipmentRepo, shipmentRepo, shipmentRepo,
		shipmentCache, statusNotifier,
	)

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, shipmentService)
	httpHandler := handler.NewHTTPHandler(logger, shipmentService)
	handler.RegisterMetrics()

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(shipmentCache, cacheWarmUpAdapter{svc: shipmentService, count: conf.Cache.Capacity})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

// startableCache is what both cache backends provide: the service-facing
// byte cache plus one-time startup (janitor or connectivity check).
type startableCache interface {
	service.Cache
	Start(ctx context.Context) error
}

func newCache(conf config.Config) startableCache {
	if conf.Cache.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		return cache.NewRedisCache(client, "shipment:", conf.Cache.TTL)
	}
	return cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
