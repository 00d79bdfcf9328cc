// Package access is the single entry point for exam data. Reads try the
// Apps Script endpoint first, then the Sheets API, then local computation.
// Writes need the script endpoint and are never retried.
package access

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/metrics"
	"github.com/shrimpsizemoose/examdesk/internal/models"
	"github.com/shrimpsizemoose/examdesk/internal/sheets"
)

const (
	DefaultPlaceholder    = "YOUR_SCRIPT_ID"
	DefaultPlaceholderURL = scriptURLPrefix + DefaultPlaceholder + scriptURLSuffix

	scriptURLPrefix = "https://script.google.com/macros/s/"
	scriptURLSuffix = "/exec"

	tierPrimary   = "primary"
	tierSecondary = "secondary"
	tierLocal     = "local"
	tierCache     = "cache"
	tierNone      = "none"
)

var ErrConfigurationRequired = errors.New("script endpoint is not configured, set the web app URL first")

// Primary is the Apps Script web app.
type Primary interface {
	AllExams(ctx context.Context, endpoint string) (*models.ExamsResponse, error)
	Officers(ctx context.Context, endpoint string) (*models.OfficersResponse, error)
	FindExam(ctx context.Context, endpoint, value string, bySerial bool) (*models.FindResponse, error)
	Dashboard(ctx context.Context, endpoint, startDate, endDate string) (*models.DashboardResponse, error)
	ExamsByDateRange(ctx context.Context, endpoint, startDate, endDate string) (*models.ExamsResponse, error)
	AddExam(ctx context.Context, endpoint string, exam models.NewExam) (*models.CreateResponse, error)
	CloseExam(ctx context.Context, endpoint string, data models.CloseData) (*models.CloseResponse, error)
	SendTestEmail(ctx context.Context, endpoint, email string) (*models.ActionResponse, error)
}

// RowSource is read-only tabular access to the spreadsheet.
type RowSource interface {
	Rows(ctx context.Context, sheet string) ([][]interface{}, error)
}

type Settings interface {
	PrimaryURL(ctx context.Context) (string, error)
	SetPrimaryURL(ctx context.Context, url string) error
}

type Journal interface {
	Record(entry *models.JournalEntry) error
}

type Config struct {
	MainSheet      string
	OfficerSheet   string
	Layout         sheets.Layout
	Placeholder    string
	PlaceholderURL string
}

type Layer struct {
	cfg       Config
	primary   Primary
	secondary RowSource
	settings  Settings
	journal   Journal

	mu    sync.RWMutex
	cache []models.ExamRecord
	warm  bool
}

// New builds a layer. secondary and journal may be nil.
func New(cfg Config, primary Primary, secondary RowSource, settings Settings, journal Journal) *Layer {
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.PlaceholderURL == "" {
		cfg.PlaceholderURL = PlaceholderURLFor(cfg.Placeholder)
	}
	return &Layer{
		cfg:       cfg,
		primary:   primary,
		secondary: secondary,
		settings:  settings,
		journal:   journal,
		cache:     []models.ExamRecord{},
	}
}

// PlaceholderURLFor is the web app URL for a script id that was never filled in.
func PlaceholderURLFor(placeholder string) string {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return scriptURLPrefix + placeholder + scriptURLSuffix
}

// endpoint returns the current script URL and whether it is usable.
func (l *Layer) endpoint(ctx context.Context) (string, bool) {
	url, err := l.settings.PrimaryURL(ctx)
	if err != nil {
		logger.Error.Printf("Failed to read script endpoint from settings: %v", err)
		return "", false
	}
	return url, l.isConfigured(url)
}

func (l *Layer) isConfigured(url string) bool {
	return url != "" && !strings.Contains(url, l.cfg.Placeholder)
}

func (l *Layer) setCache(records []models.ExamRecord) {
	l.mu.Lock()
	l.cache = records
	l.warm = true
	l.mu.Unlock()
	metrics.CachedRecords.Set(float64(len(records)))
}

// CachedRecords returns a copy of the last successfully fetched set and
// whether it is still fresh. A write or an endpoint change makes it stale
// until the next fetch.
func (l *Layer) CachedRecords() ([]models.ExamRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.ExamRecord, len(l.cache))
	copy(out, l.cache)
	return out, l.warm
}

func (l *Layer) invalidateCache() {
	l.mu.Lock()
	l.warm = false
	l.mu.Unlock()
}

func resolved(operation, tier string) {
	metrics.TierResolutionsTotal.WithLabelValues(operation, tier).Inc()
}

func failure(code, msg string) models.Envelope {
	return models.Envelope{Success: false, Error: msg, Code: code}
}

func ok() models.Envelope {
	return models.Envelope{Success: true}
}
