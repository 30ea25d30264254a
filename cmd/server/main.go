package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/blackdiamond/coaltrack/internal/alerts"
	"github.com/blackdiamond/coaltrack/internal/config"
	"github.com/blackdiamond/coaltrack/internal/handlers"
	"github.com/blackdiamond/coaltrack/internal/ingest"
	"github.com/blackdiamond/coaltrack/internal/middleware"
	"github.com/blackdiamond/coaltrack/internal/realtime"
	"github.com/blackdiamond/coaltrack/internal/seed"
	"github.com/blackdiamond/coaltrack/internal/simulator"
	"github.com/blackdiamond/coaltrack/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st store.Store
	if cfg.MongoURI == "" {
		log.Warn("MONGO_URI not set, using in-memory store; state will not survive a restart")
		st = store.NewMemory()
	} else {
		mongoStore, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		st = mongoStore
		log.WithField("db", cfg.MongoDB).Info("Connected to MongoDB")
	}
	defer st.Close(context.Background())

	if err := seed.EnsureSampleData(ctx, st); err != nil {
		log.WithError(err).Fatal("Failed to seed sample data")
	}

	hub := realtime.NewHub()
	manager := alerts.NewManager(st)
	actions := realtime.NewActions(st, manager, hub)
	dispatcher := realtime.NewDispatcher(hub, actions)

	sim := simulator.New(st, manager, actions, simulator.Config{
		Interval:         cfg.SimTick,
		LowFuelThreshold: cfg.LowFuelThreshold,
		AlertProbability: cfg.FuelAlertProbability,
		Policy:           cfg.FuelAlertPolicy,
	})
	go sim.Run(ctx)

	if cfg.MQTTBrokerURL != "" {
		bridge := ingest.NewBridge(actions)
		if err := bridge.Start(cfg.MQTTBrokerURL, cfg.MQTTTopic); err != nil {
			log.WithError(err).Fatal("Failed to start MQTT telemetry bridge")
		}
		defer bridge.Stop()
	}

	mux := http.NewServeMux()
	handlers.NewVehicleHandler(st, actions).Register(mux)
	handlers.NewShipmentHandler(st, actions).Register(mux)
	handlers.NewLocationHandler(st).Register(mux)
	handlers.NewAlertHandler(manager).Register(mux)
	mux.HandleFunc("/ws", realtime.ServeWS(hub, dispatcher))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: middleware.Logging(mux),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP shutdown failed")
		}
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("Coal transport platform listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("HTTP server failed")
	}
}
