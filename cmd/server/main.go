package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/app"
	"github.com/shrimpsizemoose/examdesk/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	mux := http.NewServeMux()
	handlers.Register(mux, service)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    service.Config.Server.Port,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.StartRefresher(); err != nil {
		logger.Error.Fatalf("Failed to start refresher: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info.Printf("Starting examdesk server on %s", service.Config.Server.Port)
		logger.Debug.Println("Requiring headers:")
		for _, h := range service.Config.API.RequiredHeaders {
			logger.Debug.Printf("  %s: %s", h.Name, h.Value)
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error.Printf("Examdesk server failed: %v", err)
	}
	logger.Info.Println("Examdesk server stopped")
}
