// Package scheduler runs fetch, enrichment and report jobs periodically and on demand
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner runs a named job
type Runner interface {
	Run(ctx context.Context, name JobName) JobSummary
}

// Params holds scheduler intervals, zero report interval disables scheduled reports
type Params struct {
	FetchInterval  time.Duration
	EnrichInterval time.Duration
	ReportInterval time.Duration
}

// Scheduler manages periodic fetching, enrichment and report delivery
type Scheduler struct {
	runner Runner
	params Params
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// fetchJobs, enrichJobs and reportJobs are run in this order on every tick of their worker
var (
	fetchJobs  = []JobName{JobFetchSteam, JobFetchYouTube}
	enrichJobs = []JobName{JobTranslate, JobAnalyzeReviews, JobAnalyzeVideos}
	reportJobs = []JobName{JobSteamReport, JobYouTubeReport}
)

// NewScheduler creates a new scheduler instance
func NewScheduler(runner Runner, params Params) *Scheduler {
	if params.FetchInterval == 0 {
		params.FetchInterval = time.Hour
	}
	if params.EnrichInterval == 0 {
		params.EnrichInterval = 15 * time.Minute
	}
	return &Scheduler{runner: runner, params: params}
}

// Start begins the scheduler. Fetch and enrichment run immediately and then on their tickers,
// reports only on ticks so a restart doesn't send a report again.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(2)
	go s.worker(ctx, s.params.FetchInterval, true, fetchJobs)
	go s.worker(ctx, s.params.EnrichInterval, true, enrichJobs)

	if s.params.ReportInterval > 0 {
		s.wg.Add(1)
		go s.worker(ctx, s.params.ReportInterval, false, reportJobs)
	}

	lgr.Printf("[INFO] scheduler started with fetch interval %v, enrich interval %v, report interval %v",
		s.params.FetchInterval, s.params.EnrichInterval, s.params.ReportInterval)
}

// Stop gracefully stops the scheduler, waiting for in-flight jobs
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context, interval time.Duration, immediate bool, jobs []JobName) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if immediate {
		s.runJobs(ctx, jobs)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJobs(ctx, jobs)
		}
	}
}

func (s *Scheduler) runJobs(ctx context.Context, jobs []JobName) {
	for _, name := range jobs {
		if ctx.Err() != nil {
			return
		}
		s.runner.Run(ctx, name)
	}
}
