package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/access"
	"github.com/shrimpsizemoose/examdesk/internal/remote"
	"github.com/shrimpsizemoose/examdesk/internal/sheets"
)

const (
	EnvWebAppURL    = "EXAMDESK_WEB_APP_URL"
	EnvSheetsAPIKey = "EXAMDESK_SHEETS_API_KEY"
	EnvBotToken     = "EXAMDESK_BOT_TOKEN"
	EnvDatabaseDSN  = "EXAMDESK_DATABASE_DSN"

	defaultSettingsKey = "examdesk:settings"

	DefaultMainSheet    = "בחינות"
	DefaultOfficerSheet = "DATA"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type Config struct {
	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	API struct {
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"api"`

	Primary struct {
		WebAppURL   string `toml:"web_app_url"`
		Placeholder string `toml:"placeholder"`
	} `toml:"primary"`

	Sheets struct {
		SpreadsheetID string        `toml:"spreadsheet_id"`
		APIKey        string        `toml:"api_key"`
		MainSheet     string        `toml:"main_sheet"`
		OfficerSheet  string        `toml:"officer_sheet"`
		Layout        sheets.Layout `toml:"layout"`
	} `toml:"sheets"`

	Retry struct {
		MaxRetries     *int `toml:"max_retries"`
		BaseDelayMS    int  `toml:"base_delay_ms"`
		TimeoutSeconds int  `toml:"timeout_seconds"`
	} `toml:"retry"`

	Refresh struct {
		Enabled         bool `toml:"enabled"`
		IntervalSeconds int  `toml:"interval_seconds"`
	} `toml:"refresh"`

	Settings struct {
		RedisURL string `toml:"redis_url"`
		Key      string `toml:"key"`
	} `toml:"settings"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Bot struct {
		Token  string  `toml:"token"`
		Admins []int64 `toml:"admins"`
		Debug  bool    `toml:"debug"`
	} `toml:"bot"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	config.Sheets.Layout = sheets.DefaultLayout
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}
	config.applyEnv()
	config.applyDefaults()

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}
	if config.Sheets.SpreadsheetID != "" && config.Sheets.APIKey == "" {
		return nil, fmt.Errorf("sheets.api_key (or %s) is required when spreadsheet_id is set", EnvSheetsAPIKey)
	}

	logger.Debug.Printf("Loaded retry config: max_retries=%d base_delay=%s", config.MaxRetries(), config.BaseDelay())

	return &config, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvWebAppURL, &c.Primary.WebAppURL},
		{EnvSheetsAPIKey, &c.Sheets.APIKey},
		{EnvBotToken, &c.Bot.Token},
		{EnvDatabaseDSN, &c.Database.DSN},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Primary.Placeholder == "" {
		c.Primary.Placeholder = access.DefaultPlaceholder
	}
	if c.Primary.WebAppURL == "" {
		c.Primary.WebAppURL = access.PlaceholderURLFor(c.Primary.Placeholder)
	}
	if c.Sheets.MainSheet == "" {
		c.Sheets.MainSheet = DefaultMainSheet
	}
	if c.Sheets.OfficerSheet == "" {
		c.Sheets.OfficerSheet = DefaultOfficerSheet
	}
	if c.Retry.MaxRetries == nil {
		retries := remote.DefaultMaxRetries
		c.Retry.MaxRetries = &retries
	}
	if c.Retry.BaseDelayMS <= 0 {
		c.Retry.BaseDelayMS = 1000
	}
	if c.Retry.TimeoutSeconds <= 0 {
		c.Retry.TimeoutSeconds = 30
	}
	if c.Refresh.IntervalSeconds <= 0 {
		c.Refresh.IntervalSeconds = 30
	}
	if c.Settings.Key == "" {
		c.Settings.Key = defaultSettingsKey
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "./migrations"
	}
}

func (c *Config) MaxRetries() int {
	if c.Retry.MaxRetries == nil {
		return remote.DefaultMaxRetries
	}
	return *c.Retry.MaxRetries
}

func (c *Config) BaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelayMS) * time.Millisecond
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalSeconds) * time.Second
}

func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Bot.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
