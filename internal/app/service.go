package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/access"
	"github.com/shrimpsizemoose/examdesk/internal/refresh"
	"github.com/shrimpsizemoose/examdesk/internal/remote"
	"github.com/shrimpsizemoose/examdesk/internal/script"
	"github.com/shrimpsizemoose/examdesk/internal/settings"
	"github.com/shrimpsizemoose/examdesk/internal/sheets"
	"github.com/shrimpsizemoose/examdesk/internal/store"
)

// Service owns everything the surfaces share: config, the access layer and
// the resources behind it.
type Service struct {
	Config    *Config
	Access    *access.Layer
	Settings  settings.Store
	Journal   store.JournalStore
	Refresher *refresh.Refresher
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewServiceFromConfig(context.Background(), config)
}

func NewServiceFromConfig(ctx context.Context, config *Config) (*Service, error) {
	s := &Service{Config: config}

	st, err := settings.New(config.Settings.RedisURL, config.Settings.Key, config.Primary.WebAppURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init settings: %w", err)
	}
	s.Settings = st

	var journal access.Journal
	if config.Database.DSN != "" {
		js, err := NewStore(store.DBConfig{DSN: config.Database.DSN, MigrationsDir: config.Database.MigrationsDir})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to init store: %w", err)
		}
		s.Journal = js
		journal = js
	} else {
		logger.Info.Println("No database configured, write journal disabled")
	}

	var secondary access.RowSource
	if config.Sheets.SpreadsheetID != "" {
		reader, err := sheets.NewReader(ctx, config.Sheets.SpreadsheetID, config.Sheets.APIKey)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to init sheets reader: %w", err)
		}
		secondary = reader
	} else {
		logger.Info.Println("No spreadsheet configured, Sheets API fallback disabled")
	}

	rc := remote.New(
		remote.WithHTTPClient(&http.Client{Timeout: time.Duration(config.Retry.TimeoutSeconds) * time.Second}),
		remote.WithBaseDelay(config.BaseDelay()),
	)
	primary := script.NewClient(rc, config.MaxRetries())

	s.Access = access.New(access.Config{
		MainSheet:      config.Sheets.MainSheet,
		OfficerSheet:   config.Sheets.OfficerSheet,
		Layout:         config.Sheets.Layout,
		Placeholder:    config.Primary.Placeholder,
		PlaceholderURL: access.PlaceholderURLFor(config.Primary.Placeholder),
	}, primary, secondary, s.Settings, journal)

	return s, nil
}

// StartRefresher runs the background refresh when it is enabled in config.
func (s *Service) StartRefresher() error {
	if !s.Config.Refresh.Enabled {
		logger.Info.Println("Background refresh disabled")
		return nil
	}
	r := refresh.NewRefresher(s.Access, s.Config.RefreshInterval())
	if err := r.Start(); err != nil {
		return err
	}
	s.Refresher = r
	return nil
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func (s *Service) Close() error {
	var errs []error

	if s.Refresher != nil {
		s.Refresher.Stop()
	}
	if s.Journal != nil {
		if err := s.Journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.Settings != nil {
		if err := s.Settings.Close(); err != nil {
			errs = append(errs, fmt.Errorf("settings: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
