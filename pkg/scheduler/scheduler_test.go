package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/reviewscope/reviewscope/pkg/scheduler"
	"github.com/reviewscope/reviewscope/pkg/scheduler/mocks"
)

type jobLog struct {
	mu   sync.Mutex
	runs map[scheduler.JobName]int
}

func (l *jobLog) runner() *mocks.RunnerMock {
	return &mocks.RunnerMock{RunFunc: func(_ context.Context, name scheduler.JobName) scheduler.JobSummary {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.runs[name]++
		return scheduler.JobSummary{Job: name}
	}}
}

func (l *jobLog) count(name scheduler.JobName) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runs[name]
}

func TestScheduler_StartStop(t *testing.T) {
	log := &jobLog{runs: map[scheduler.JobName]int{}}
	s := scheduler.NewScheduler(log.runner(), scheduler.Params{FetchInterval: time.Hour, EnrichInterval: 10 * time.Millisecond})
	s.Start(context.Background())

	// fetch runs immediately on start, enrichment keeps ticking
	assert.Eventually(t, func() bool {
		return log.count(scheduler.JobFetchSteam) == 1 && log.count(scheduler.JobAnalyzeVideos) >= 2
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, log.count(scheduler.JobFetchYouTube))
	assert.Equal(t, 0, log.count(scheduler.JobSteamReport), "reports are disabled without interval")
	translated := log.count(scheduler.JobTranslate)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, translated, log.count(scheduler.JobTranslate), "no runs after stop")
}

func TestScheduler_Reports(t *testing.T) {
	log := &jobLog{runs: map[scheduler.JobName]int{}}
	s := scheduler.NewScheduler(log.runner(), scheduler.Params{FetchInterval: time.Hour, EnrichInterval: time.Hour,
		ReportInterval: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	assert.Eventually(t, func() bool {
		return log.count(scheduler.JobSteamReport) >= 1 && log.count(scheduler.JobYouTubeReport) >= 1
	}, time.Second, 5*time.Millisecond)

	cancel() // parent cancellation stops workers too
	s.Stop()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := scheduler.NewScheduler(&mocks.RunnerMock{}, scheduler.Params{})
	s.Stop()
}
