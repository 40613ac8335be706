package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oladokun-o/Micro-Feed/internal/config"
	httpmiddleware "github.com/oladokun-o/Micro-Feed/internal/delivery/http/middleware"
	middleware "github.com/oladokun-o/Micro-Feed/internal/exception"
	tracelog "github.com/oladokun-o/Micro-Feed/internal/middleware"
	"github.com/oladokun-o/Micro-Feed/internal/observability"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC
	// Flush zap buffered log first then cancel the context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fiber := config.NewFiber()
	zap := config.NewZap()
	koanf := config.NewKoanf(zap)
	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)

	observabilityConfig := config.LoadObservabilityConfig(koanf, zap)
	shutdownTracer, err := observability.Init(context.Background(), observabilityConfig, zap)
	if err != nil {
		zap.Fatal("failed to initialize tracing", zapLog.Error(err))
	}

	// Custom recovery middleware to handle panics with JSON response
	fiber.Use(middleware.Recovery(zap))

	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	fiber.Use(otelfiber.Middleware())
	fiber.Use(tracelog.TraceLoggerMiddleware(zap))
	fiber.Use(httpmiddleware.SetupCORS())
	fiber.Use(httpmiddleware.SetupRateLimiter(zap))
	fiber.Use("/api/auth", httpmiddleware.SetupAuthRateLimiter(zap))

	config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	err = fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush pending spans", zapLog.Error(err))
	}

	postgresql.Close()
	_ = rds.Close()

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
