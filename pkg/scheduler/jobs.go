package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/enrich"
	"github.com/reviewscope/reviewscope/pkg/ingest"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/drainer.go -pkg mocks -skip-ensure -fmt goimports . Drainer
//go:generate moq -out mocks/report_builder.go -pkg mocks -skip-ensure -fmt goimports . ReportBuilder
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/game_lister.go -pkg mocks -skip-ensure -fmt goimports . GameLister

// JobName identifies a job
type JobName string

// jobs available for scheduling and on-demand runs
const (
	JobFetchSteam     JobName = "fetch-steam"
	JobFetchYouTube   JobName = "fetch-youtube"
	JobTranslate      JobName = "translate"
	JobAnalyzeReviews JobName = "analyze-reviews"
	JobAnalyzeVideos  JobName = "analyze-videos"
	JobSteamReport    JobName = "steam-report"
	JobYouTubeReport  JobName = "youtube-report"
)

// AllJobs lists every known job in pipeline order
var AllJobs = []JobName{JobFetchSteam, JobFetchYouTube, JobTranslate, JobAnalyzeReviews, JobAnalyzeVideos,
	JobSteamReport, JobYouTubeReport}

// ErrUnknownJob is returned for a job name not in AllJobs
var ErrUnknownJob = errors.New("unknown job")

// ParseJobName validates a job name
func ParseJobName(s string) (JobName, error) {
	for _, j := range AllJobs {
		if string(j) == s {
			return j, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownJob, s)
}

// Fetcher runs one fetch cycle over all active entities of a source
type Fetcher interface {
	RunAll(ctx context.Context) (ingest.CycleSummary, error)
}

// Drainer processes pending items of an enrichment step until none are left
type Drainer interface {
	Drain(ctx context.Context, step enrich.Step) (enrich.Counts, error)
}

// ReportBuilder renders report workbooks
type ReportBuilder interface {
	BuildSteamReport(ctx context.Context, appID int64, w domain.ReportWindow) ([]byte, error)
	BuildYouTubeReport(ctx context.Context, gameID string, w domain.ReportWindow) ([]byte, error)
}

// Notifier delivers report files
type Notifier interface {
	UploadFile(ctx context.Context, channel string, data []byte, filename, caption string) error
}

// GameLister returns games reports are built for
type GameLister interface {
	ListGames(ctx context.Context, activeOnly bool) ([]domain.Game, error)
}

// JobSummary is the outcome of a single job run
type JobSummary struct {
	Job       JobName       `json:"job"`
	RunID     string        `json:"run_id"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
	Err       string        `json:"error,omitempty"`
}

// String returns a one line summary for logs
func (s JobSummary) String() string {
	res := fmt.Sprintf("job %s [%s] succeeded %d, failed %d, skipped %d in %v",
		s.Job, s.RunID, s.Succeeded, s.Failed, s.Skipped, s.Duration.Round(time.Millisecond))
	if s.Err != "" {
		res += ", error: " + s.Err
	}
	return res
}

// Deps are the components jobs delegate to. Notifier is optional, without it reports aren't delivered.
type Deps struct {
	Steam          Fetcher
	YouTube        Fetcher
	Drainer        Drainer
	Translate      enrich.Step
	AnalyzeReviews enrich.Step
	AnalyzeVideos  enrich.Step
	Reports        ReportBuilder
	Notifier       Notifier
	Games          GameLister
}

// Jobs runs named jobs, each run is isolated, logged and summarized
type Jobs struct {
	Deps
	timespan string
	now      func() time.Time
}

// NewJobs makes jobs, timespan is the window of scheduled reports, weekly or monthly
func NewJobs(deps Deps, timespan string) *Jobs {
	if timespan == "" {
		timespan = "weekly"
	}
	return &Jobs{Deps: deps, timespan: timespan, now: time.Now}
}

// Run executes the named job. It never panics and never returns an error, failures end up in the summary.
func (j *Jobs) Run(ctx context.Context, name JobName) (res JobSummary) {
	res = JobSummary{Job: name, RunID: uuid.NewString()}
	st := time.Now()
	lgr.Printf("[INFO] job %s [%s] started", name, res.RunID)
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Sprintf("panic: %v", r)
			res.Failed++
		}
		res.Duration = time.Since(st)
		if res.Err != "" {
			lgr.Printf("[WARN] %s", res)
			return
		}
		lgr.Printf("[INFO] %s", res)
	}()

	var err error
	switch name {
	case JobFetchSteam:
		err = j.fetch(ctx, j.Steam, &res)
	case JobFetchYouTube:
		err = j.fetch(ctx, j.YouTube, &res)
	case JobTranslate:
		err = j.drain(ctx, j.Translate, &res)
	case JobAnalyzeReviews:
		err = j.drain(ctx, j.AnalyzeReviews, &res)
	case JobAnalyzeVideos:
		err = j.drain(ctx, j.AnalyzeVideos, &res)
	case JobSteamReport:
		err = j.reports(ctx, true, &res)
	case JobYouTubeReport:
		err = j.reports(ctx, false, &res)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownJob, name)
	}
	if err != nil {
		res.Err = err.Error()
	}
	return res
}

// RunAll runs jobs one after another, stopping early only if the context is canceled
func (j *Jobs) RunAll(ctx context.Context, names ...JobName) []JobSummary {
	res := make([]JobSummary, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		res = append(res, j.Run(ctx, name))
	}
	return res
}

func (j *Jobs) fetch(ctx context.Context, f Fetcher, res *JobSummary) error {
	if f == nil {
		return errors.New("fetcher is not configured")
	}
	summary, err := f.RunAll(ctx)
	if err != nil {
		return err
	}
	res.Succeeded = summary.Processed - summary.Failed
	res.Failed = summary.Failed
	return nil
}

func (j *Jobs) drain(ctx context.Context, step enrich.Step, res *JobSummary) error {
	if step == nil || j.Drainer == nil {
		return errors.New("enrichment is not configured")
	}
	counts, err := j.Drainer.Drain(ctx, step)
	res.Succeeded = counts.Done + counts.Irrelevant
	res.Failed = counts.Failed
	res.Skipped = counts.Skipped
	return err
}

// reports builds and delivers the scheduled report of every active game. Games without a steam app
// are skipped for steam reports. A failed game doesn't stop the others.
func (j *Jobs) reports(ctx context.Context, steam bool, res *JobSummary) error {
	if j.Reports == nil || j.Games == nil {
		return errors.New("reports are not configured")
	}
	w, err := domain.ParseWindow(j.now(), j.timespan, 0)
	if err != nil {
		return err
	}
	games, err := j.Games.ListGames(ctx, true)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	for _, g := range games {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if steam && g.SteamAppID == 0 {
			res.Skipped++
			continue
		}
		if err := j.deliver(ctx, g, steam, w); err != nil {
			lgr.Printf("[WARN] report for game %s: %v", g.Name, err)
			res.Failed++
			continue
		}
		res.Succeeded++
	}
	return nil
}

func (j *Jobs) deliver(ctx context.Context, g domain.Game, steam bool, w domain.ReportWindow) error {
	kind := "youtube"
	var (
		data []byte
		err  error
	)
	if steam {
		kind = "steam"
		data, err = j.Reports.BuildSteamReport(ctx, g.SteamAppID, w)
	} else {
		data, err = j.Reports.BuildYouTubeReport(ctx, g.ID, w)
	}
	if err != nil {
		return fmt.Errorf("build %s report: %w", kind, err)
	}
	if j.Notifier == nil {
		lgr.Printf("[INFO] %s report for game %s built, %d bytes, no notifier configured", kind, g.Name, len(data))
		return nil
	}
	filename := ReportFilename(kind, g.Name, w)
	caption := fmt.Sprintf("%s %s report for %s, %s - %s", w.Label, kind, g.Name,
		w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	if err := j.Notifier.UploadFile(ctx, g.SlackChannel, data, filename, caption); err != nil {
		return fmt.Errorf("upload %s report: %w", kind, err)
	}
	return nil
}

// ReportFilename makes a file name like "steam_my_game_weekly_2024-05-06.xlsx"
func ReportFilename(kind, name string, w domain.ReportWindow) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("%s_%s_%s_%s.xlsx", kind, slug, w.Label, w.Start.UTC().Format("2006-01-02"))
}
