package scheduler_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/enrich"
	"github.com/reviewscope/reviewscope/pkg/ingest"
	"github.com/reviewscope/reviewscope/pkg/scheduler"
	"github.com/reviewscope/reviewscope/pkg/scheduler/mocks"
)

type namedStep string

func (s namedStep) Name() string  { return string(s) }
func (s namedStep) Label() string { return "done" }
func (s namedStep) Pending(context.Context, enrich.Session, int) ([]enrich.Task, error) {
	return nil, nil
}

func TestJobs_Fetch(t *testing.T) {
	steam := &mocks.FetcherMock{RunAllFunc: func(context.Context) (ingest.CycleSummary, error) {
		return ingest.CycleSummary{Processed: 3, Failed: 1, Persisted: 120}, nil
	}}
	youtube := &mocks.FetcherMock{RunAllFunc: func(context.Context) (ingest.CycleSummary, error) {
		return ingest.CycleSummary{}, errors.New("list channels: db is gone")
	}}
	jobs := scheduler.NewJobs(scheduler.Deps{Steam: steam, YouTube: youtube}, "weekly")

	res := jobs.Run(context.Background(), scheduler.JobFetchSteam)
	assert.Equal(t, scheduler.JobFetchSteam, res.Job)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, res.Err)
	_, err := uuid.Parse(res.RunID)
	assert.NoError(t, err, "run id is a uuid")

	res = jobs.Run(context.Background(), scheduler.JobFetchYouTube)
	assert.Equal(t, "list channels: db is gone", res.Err)
	assert.Len(t, youtube.RunAllCalls(), 1)
}

func TestJobs_Drain(t *testing.T) {
	drainer := &mocks.DrainerMock{DrainFunc: func(_ context.Context, step enrich.Step) (enrich.Counts, error) {
		switch step.Name() {
		case "translate":
			return enrich.Counts{Done: 3, Irrelevant: 1, Failed: 2, Skipped: 1}, nil
		default:
			return enrich.Counts{Done: 1}, context.Canceled
		}
	}}
	jobs := scheduler.NewJobs(scheduler.Deps{Drainer: drainer, Translate: namedStep("translate"),
		AnalyzeReviews: namedStep("analyze reviews")}, "")

	res := jobs.Run(context.Background(), scheduler.JobTranslate)
	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Err)

	res = jobs.Run(context.Background(), scheduler.JobAnalyzeReviews)
	assert.Equal(t, 1, res.Succeeded, "partial counts are kept on error")
	assert.Equal(t, context.Canceled.Error(), res.Err)

	res = jobs.Run(context.Background(), scheduler.JobAnalyzeVideos)
	assert.Equal(t, "enrichment is not configured", res.Err)
	assert.Len(t, drainer.DrainCalls(), 2)
}

func TestJobs_PanicAndUnknown(t *testing.T) {
	steam := &mocks.FetcherMock{RunAllFunc: func(context.Context) (ingest.CycleSummary, error) {
		panic("boom")
	}}
	jobs := scheduler.NewJobs(scheduler.Deps{Steam: steam}, "weekly")

	res := jobs.Run(context.Background(), scheduler.JobFetchSteam)
	assert.Equal(t, "panic: boom", res.Err)
	assert.Equal(t, 1, res.Failed)

	res = jobs.Run(context.Background(), scheduler.JobName("defrag"))
	assert.Contains(t, res.Err, "unknown job")
}

func TestJobs_RunAll(t *testing.T) {
	var order []string
	fetcher := func(name string) *mocks.FetcherMock {
		return &mocks.FetcherMock{RunAllFunc: func(context.Context) (ingest.CycleSummary, error) {
			order = append(order, name)
			return ingest.CycleSummary{Processed: 1}, nil
		}}
	}
	jobs := scheduler.NewJobs(scheduler.Deps{Steam: fetcher("steam"), YouTube: fetcher("youtube")}, "weekly")
	res := jobs.RunAll(context.Background(), scheduler.JobFetchSteam, scheduler.JobFetchYouTube)
	require.Len(t, res, 2)
	assert.Equal(t, []string{"steam", "youtube"}, order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, jobs.RunAll(ctx, scheduler.JobFetchSteam))
}

func TestJobs_SteamReport(t *testing.T) {
	games := &mocks.GameListerMock{ListGamesFunc: func(_ context.Context, activeOnly bool) ([]domain.Game, error) {
		assert.True(t, activeOnly)
		return []domain.Game{
			{ID: "g1", Name: "Space Miner", SteamAppID: 10, SlackChannel: "C1"},
			{ID: "g2", Name: "No Steam"},
			{ID: "g3", Name: "Broken", SteamAppID: 30},
		}, nil
	}}
	reports := &mocks.ReportBuilderMock{BuildSteamReportFunc: func(_ context.Context, appID int64, w domain.ReportWindow) ([]byte, error) {
		assert.Equal(t, "weekly", w.Label)
		if appID == 30 {
			return nil, errors.New("db timeout")
		}
		return []byte("xlsx"), nil
	}}
	notifier := &mocks.NotifierMock{UploadFileFunc: func(context.Context, string, []byte, string, string) error { return nil }}
	jobs := scheduler.NewJobs(scheduler.Deps{Reports: reports, Notifier: notifier, Games: games}, "weekly")

	res := jobs.Run(context.Background(), scheduler.JobSteamReport)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Err)

	require.Len(t, notifier.UploadFileCalls(), 1)
	call := notifier.UploadFileCalls()[0]
	assert.Equal(t, "C1", call.Channel)
	assert.Equal(t, []byte("xlsx"), call.Data)
	assert.True(t, strings.HasPrefix(call.Filename, "steam_space_miner_weekly_"), call.Filename)
	assert.Contains(t, call.Caption, "weekly steam report for Space Miner")
}

func TestJobs_YouTubeReport(t *testing.T) {
	games := &mocks.GameListerMock{ListGamesFunc: func(context.Context, bool) ([]domain.Game, error) {
		return []domain.Game{{ID: "g1", Name: "Space Miner"}, {ID: "g2", Name: "Farm Story"}}, nil
	}}
	reports := &mocks.ReportBuilderMock{BuildYouTubeReportFunc: func(_ context.Context, gameID string, w domain.ReportWindow) ([]byte, error) {
		assert.Equal(t, "monthly", w.Label)
		return []byte(gameID), nil
	}}

	t.Run("without notifier", func(t *testing.T) {
		jobs := scheduler.NewJobs(scheduler.Deps{Reports: reports, Games: games}, "monthly")
		res := jobs.Run(context.Background(), scheduler.JobYouTubeReport)
		assert.Equal(t, 2, res.Succeeded)
		assert.Empty(t, res.Err)
	})

	t.Run("upload failure", func(t *testing.T) {
		notifier := &mocks.NotifierMock{UploadFileFunc: func(_ context.Context, _ string, data []byte, _, _ string) error {
			if string(data) == "g2" {
				return errors.New("not_in_channel")
			}
			return nil
		}}
		jobs := scheduler.NewJobs(scheduler.Deps{Reports: reports, Games: games, Notifier: notifier}, "monthly")
		res := jobs.Run(context.Background(), scheduler.JobYouTubeReport)
		assert.Equal(t, 1, res.Succeeded)
		assert.Equal(t, 1, res.Failed)
		assert.Len(t, notifier.UploadFileCalls(), 2)
	})

	t.Run("games failure", func(t *testing.T) {
		failing := &mocks.GameListerMock{ListGamesFunc: func(context.Context, bool) ([]domain.Game, error) {
			return nil, errors.New("no such table")
		}}
		jobs := scheduler.NewJobs(scheduler.Deps{Reports: reports, Games: failing}, "monthly")
		res := jobs.Run(context.Background(), scheduler.JobYouTubeReport)
		assert.Equal(t, "list games: no such table", res.Err)
	})

	t.Run("bad timespan", func(t *testing.T) {
		jobs := scheduler.NewJobs(scheduler.Deps{Reports: reports, Games: games}, "yearly")
		res := jobs.Run(context.Background(), scheduler.JobYouTubeReport)
		assert.Contains(t, res.Err, "unknown timespan")
	})
}

func TestParseJobName(t *testing.T) {
	for _, name := range scheduler.AllJobs {
		j, err := scheduler.ParseJobName(string(name))
		require.NoError(t, err)
		assert.Equal(t, name, j)
	}
	_, err := scheduler.ParseJobName("fetch-everything")
	assert.ErrorIs(t, err, scheduler.ErrUnknownJob)
}

func TestReportFilename(t *testing.T) {
	w := domain.ReportWindow{Start: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), Label: "weekly"}
	assert.Equal(t, "steam_space_miner_2_weekly_2024-05-06.xlsx", scheduler.ReportFilename("steam", "Space Miner 2", w))
	assert.Equal(t, "youtube_report_weekly_2024-05-06.xlsx", scheduler.ReportFilename("youtube", "  ", w))
	assert.Equal(t, "youtube_caf_weekly_2024-05-06.xlsx", scheduler.ReportFilename("youtube", "Café", w))
}
