package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/eldercare-telemetry/pkg/cache"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	"liyu1981.xyz/eldercare-telemetry/pkg/db"
	iotGrpc "liyu1981.xyz/eldercare-telemetry/pkg/grpc"
	iotHttp "liyu1981.xyz/eldercare-telemetry/pkg/http"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot"
	"liyu1981.xyz/eldercare-telemetry/pkg/mqtt"
	"liyu1981.xyz/eldercare-telemetry/pkg/snapshot"
)

const (
	shutdownTimeout = 10 * time.Second
	limiterIdle     = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := common.GetLogger()
	defer common.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbInstance, err := db.FromConfig(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer dbInstance.Close()

	iotCore := iot.New(dbInstance)

	opts := iot.ServiceOpts{}
	snapshotCache := cache.FromConfig(cfg.Redis)
	if snapshotCache != nil {
		if err := snapshotCache.Ping(ctx); err != nil {
			log.Fatalf("Failed to reach redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer snapshotCache.Close()
		opts.Cache = snapshotCache
		logger.Info("Snapshot cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	seed := time.Now().UnixNano()
	if cfg.Snapshot.Seed != nil {
		seed = *cfg.Snapshot.Seed
	}
	opts.Rebuilder = snapshot.NewEngine(iotCore.Store, cfg.Snapshot, snapshot.NewRand(seed), snapshotCache)

	var limiterStore *iot.RateLimiterStore
	if cfg.LimiterEnabled() {
		limiterStore = iot.NewRateLimiterStore(rate.Limit(cfg.IngestRate), cfg.IngestBurst)
		opts.LimiterStore = limiterStore
		logger.Info("Ingest rate limiting enabled",
			zap.Float64("default_rate", cfg.IngestRate), zap.Int("default_burst", cfg.IngestBurst))
		go sweepLimiters(ctx, limiterStore)
	}
	iotCore.WithServices(opts)

	if addr := cfg.GrpcAddr(); addr != "" {
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}
		go func() {
			if err := iotGrpc.NewIngestServer(iotCore, limiterStore).Serve(ctx, listener); err != nil {
				logger.Error("grpc server failed to serve", zap.Error(err))
				stop()
			}
		}()
	}

	if cfg.MQTT.Enabled() {
		bridge := mqtt.NewBridge(cfg.MQTT, iotCore.Ingestors())
		if err := bridge.Start(); err != nil {
			log.Fatalf("Failed to start MQTT bridge: %v", err)
		}
		defer bridge.Stop()
	}

	rs := iotHttp.NewRestfulServer(iotCore, limiterStore, cfg.RequestTimeout)
	httpServer := &http.Server{Addr: cfg.HTTPAddr(), Handler: rs.Server}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server on: " + cfg.HTTPAddr())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed to serve", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func sweepLimiters(ctx context.Context, store *iot.RateLimiterStore) {
	ticker := time.NewTicker(limiterIdle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(limiterIdle); n > 0 {
				common.GetLogger().Debug("Swept idle limiters", zap.Int("removed", n))
			}
		}
	}
}
