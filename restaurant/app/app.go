package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/restaurant-service/pkg/kafka"
	"github.com/Astemirdum/restaurant-service/pkg/logger"
	"github.com/Astemirdum/restaurant-service/pkg/validate"
	"github.com/Astemirdum/restaurant-service/restaurant/config"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/catalog"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/controller"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/events"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/handler"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/repository"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/server"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/service"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "restaurant")
	defer log.Sync() //nolint:errcheck

	provider := catalog.NewProvider(newCatalogSource(cfg.Catalog), log)

	var (
		kv        storage.KV
		closeKV   func() error
		startCtx  = context.Background()
		g, gctx   = errgroup.WithContext(startCtx)
		startTime = time.Now()
	)
	g.Go(func() error {
		// a missing catalog degrades browsing only; Get retries lazily
		if _, err := provider.Get(gctx); err != nil {
			log.Warn("catalog not loaded at startup", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		kv, closeKV, err = storage.Open(gctx, cfg, log)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("storage init %v", err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.Error("storage close", zap.Error(err))
		}
	}()
	log.Info("startup complete",
		zap.String("storage", cfg.Storage.Driver),
		zap.Duration("took", time.Since(startTime)))

	publisher, closePublisher, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return fmt.Errorf("kafka producer %v", err)
	}
	defer closePublisher()

	repo := repository.NewRepository(kv, log)
	svc := service.NewService(repo, provider, publisher, log)

	sessions := controller.NewSessions(svc, validate.NewCustomValidator(), cfg.Session.IdleTTL, log)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx)

	h := handler.New(svc, sessions, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func newCatalogSource(cfg config.Catalog) catalog.Source {
	if cfg.URL != "" {
		return catalog.NewHTTPSource(cfg.URL)
	}
	return catalog.NewFileSource(cfg.Path)
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (events.Publisher, func(), error) {
	if !cfg.Enabled() {
		log.Info("kafka not configured, reservation events disabled")
		return events.Nop{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, nil, err
	}
	p := events.NewKafkaPublisher(producer, kafka.ReservationTopic, log)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Error("kafka producer close", zap.Error(err))
		}
	}, nil
}
