package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/api/handlers"
	"github.com/linesmerrill/fir-document-api/api/scheduler"
	"github.com/linesmerrill/fir-document-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()
	defer func() { _ = zap.L().Sync() }()

	if err := a.Initialize(); err != nil {
		zap.S().Fatalw("failed to initialize app", "error", err)
	}
	defer a.Close()

	metrics := api.GetMetrics()
	defer metrics.Stop()

	rateLimiter := api.NewRateLimiter(a.Config.RateLimit.Requests, a.Config.RateLimit.Window)
	if err := rateLimiter.TrustProxies(a.Config.RateLimit.TrustedProxies); err != nil {
		zap.S().Fatalw("invalid TRUSTED_PROXIES", "error", err)
	}

	housekeeping := scheduler.NewScheduler(rateLimiter, metrics, 10*time.Minute)
	housekeeping.Start()
	defer housekeeping.Stop()

	handler := api.Chain(a.Router,
		metrics.Middleware,
		rateLimiter.Middleware(),
		api.TimeoutMiddleware(a.Config.RequestTimeout),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", a.Config.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.Config.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.S().Infow("fir-document-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseUrl,
			"environment", a.Config.Environment,
			"agency", a.Config.Agency.Name,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zap.S().Infow("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorw("server forced to shutdown", "error", err)
		return
	}
	zap.S().Info("server stopped gracefully")
}
