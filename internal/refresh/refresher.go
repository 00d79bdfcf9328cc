// Package refresh keeps the exam cache and dashboard numbers warm in the
// background, like the browser dashboard polling every 30 seconds.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

const DefaultInterval = 30 * time.Second

type Source interface {
	FetchAllRecords(ctx context.Context) models.ExamsResponse
	FetchStatistics(ctx context.Context, startDate, endDate string) models.DashboardResponse
}

// Snapshot is the outcome of the latest run.
type Snapshot struct {
	Records   int                  `json:"records"`
	Dashboard models.DashboardData `json:"dashboardData"`
	RecordsOK bool                 `json:"recordsOk"`
	At        time.Time            `json:"at"`
}

type Refresher struct {
	source    Source
	interval  time.Duration
	timeout   time.Duration
	scheduler *gocron.Scheduler

	mu   sync.RWMutex
	last Snapshot
}

func NewRefresher(source Source, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		source:    source,
		interval:  interval,
		timeout:   interval * 2,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the refresh job; the first run happens right away.
func (r *Refresher) Start() error {
	_, err := r.scheduler.Every(r.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.Refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	r.scheduler.StartAsync()
	logger.Info.Printf("Refreshing exams every %s", r.interval)
	return nil
}

func (r *Refresher) Stop() {
	r.scheduler.Stop()
}

// Refresh fetches the records and the unbounded dashboard once.
func (r *Refresher) Refresh(ctx context.Context) Snapshot {
	exams := r.source.FetchAllRecords(ctx)
	if !exams.Success {
		logger.Error.Printf("Background refresh could not load exams: %s", exams.Error)
	}
	dashboard := r.source.FetchStatistics(ctx, "", "")

	snap := Snapshot{
		Records:   len(exams.Exams),
		Dashboard: dashboard.DashboardData,
		RecordsOK: exams.Success,
		At:        time.Now().UTC(),
	}
	logger.Debug.Printf("Refreshed: %d exams, %d open, %d closed", snap.Records, snap.Dashboard.OpenExams, snap.Dashboard.ClosedExams)

	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()
	return snap
}

// Last is the most recent snapshot. At is zero until the first run finishes.
func (r *Refresher) Last() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}
