package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mgo.v2"

	"github.com/intervention-engine/strokerisk/assessments"
	"github.com/intervention-engine/strokerisk/internal/config"
	"github.com/intervention-engine/strokerisk/internal/logger"
	"github.com/intervention-engine/strokerisk/server"
	"github.com/intervention-engine/strokerisk/service"
	"github.com/intervention-engine/strokerisk/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "strokerisk")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	checks, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("Can't connect to the database", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	rs := service.NewReferenceRiskService(checks, cfg.HTTP.BaseURL, log)
	rs.RegisterPlugin(assessments.NewStrokeScorePlugin())
	rs.RegisterPlugin(assessments.NewCirculatoryPlugin())

	e := server.NewEcho(log, cfg.HTTP.CORSAllowOrigins)
	server.RegisterRoutes(e, checks, rs, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.StoreDriver))
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

// openStore connects to the configured store and returns it with a function that releases it
func openStore(cfg *config.Config, log *zap.Logger) (store.CheckStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), func() {}, nil

	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := store.OpenPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(db, log)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return pg, func() { db.Close() }, nil

	default:
		session, err := mgo.DialWithTimeout(cfg.Mongo.Host, 10*time.Second)
		if err != nil {
			return nil, nil, err
		}
		ms := store.NewMongoStore(session.DB(cfg.Mongo.Database), log)
		if err := ms.EnsureIndexes(); err != nil {
			session.Close()
			return nil, nil, err
		}
		return ms, session.Close, nil
	}
}
