package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/app"
	"github.com/shrimpsizemoose/examdesk/internal/bot"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	cfg := bot.Config{
		Token:    service.Config.Bot.Token,
		AdminIDs: service.Config.Bot.Admins,
		Debug:    service.Config.Bot.Debug,
	}
	api, err := bot.NewAPI(cfg)
	if err != nil {
		logger.Error.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.StartRefresher(); err != nil {
		logger.Error.Fatalf("Failed to start refresher: %v", err)
	}

	b := bot.New(service.Access, api, cfg.AdminIDs)
	logger.Info.Printf("Bot %s initialized successfully", api.Self.UserName)
	if err := b.Start(ctx, api); err != nil {
		logger.Error.Fatalf("Bot error: %v", err)
	}
}
