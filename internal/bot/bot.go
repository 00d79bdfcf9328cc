package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// Desk is the part of the access layer the bot talks to.
type Desk interface {
	FilterExams(ctx context.Context, status, search string) models.ExamsResponse
	FindRecord(ctx context.Context, value string, bySerial bool) models.FindResponse
	FetchStatistics(ctx context.Context, startDate, endDate string) models.DashboardResponse
	SetPrimaryURL(ctx context.Context, url string) error
	TestConnection(ctx context.Context) models.ConnectionResult
}

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	desk   Desk
	api    Sender
	admins map[int64]bool
}

func New(desk Desk, api Sender, adminIDs []int64) *Bot {
	admins := make(map[int64]bool)
	for _, id := range adminIDs {
		admins[id] = true
	}

	return &Bot{
		desk:   desk,
		api:    api,
		admins: admins,
	}
}

func NewAPI(config Config) (*tgbotapi.BotAPI, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = config.Debug
	return api, nil
}

// Start polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context, api *tgbotapi.BotAPI) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go b.handleMessage(ctx, update.Message)

		case <-ctx.Done():
			logger.Info.Println("Shutting down bot...")
			return nil
		}
	}
}
