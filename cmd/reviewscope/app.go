package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"

	"github.com/reviewscope/reviewscope/pkg/config"
	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/enrich"
	"github.com/reviewscope/reviewscope/pkg/ingest"
	"github.com/reviewscope/reviewscope/pkg/llm"
	"github.com/reviewscope/reviewscope/pkg/notify"
	"github.com/reviewscope/reviewscope/pkg/report"
	"github.com/reviewscope/reviewscope/pkg/repository"
	"github.com/reviewscope/reviewscope/pkg/scheduler"
	"github.com/reviewscope/reviewscope/pkg/source/steam"
	"github.com/reviewscope/reviewscope/pkg/source/supadata"
	"github.com/reviewscope/reviewscope/pkg/source/ytfeed"
	"github.com/reviewscope/reviewscope/pkg/tracker"
	"github.com/reviewscope/reviewscope/server"
)

// app holds wired components shared by all commands
type app struct {
	cfg      *config.Config
	repos    *repository.Repositories
	tracker  *tracker.Tracker
	steam    *ingest.SteamFetcher
	reports  *report.Builder
	notifier *notify.SlackNotifier // nil without slack token
	jobs     *scheduler.Jobs
	redis    redis.UniversalClient // nil without redis cache
	debug    bool
}

// run loads configuration, wires components and executes the command
func run(ctx context.Context, opts Opts, command string) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey, cfg.YouTube.APIKey, cfg.Slack.Token, cfg.Redis.Password)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()
	a.debug = opts.Debug

	switch command {
	case "server":
		return a.serve(ctx)
	case "run":
		return a.schedule(ctx)
	case "fetch-steam":
		return a.fetchSteam(ctx, opts.FetchSteam)
	case "fetch-youtube":
		return a.runJobs(ctx, scheduler.JobFetchYouTube)
	case "translate":
		return a.runJobs(ctx, scheduler.JobTranslate)
	case "analyze":
		return a.runJobs(ctx, scheduler.JobAnalyzeReviews, scheduler.JobAnalyzeVideos)
	case "report":
		return a.report(ctx, opts.Report)
	case "track-app":
		return a.trackApp(ctx, opts.TrackApp)
	case "track-channel":
		return a.trackChannel(ctx, opts.TrackChannel)
	case "reset-position":
		return a.resetPosition(ctx, opts.ResetPosition, time.Now())
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &app{cfg: cfg, repos: repos, tracker: tracker.New(repos.Position)}

	steamClient := steam.NewClient(steam.Params{
		BaseURL:   cfg.Steam.BaseURL,
		Timeout:   cfg.Steam.Timeout,
		PageDelay: cfg.Steam.PageDelay,
	})
	supadataClient := supadata.NewClient(supadata.Params{
		BaseURL:      cfg.YouTube.SupadataURL,
		APIKey:       cfg.YouTube.APIKey,
		Timeout:      cfg.YouTube.Timeout,
		RequestDelay: cfg.YouTube.RequestDelay,
		Attempts:     cfg.YouTube.MaxAttempts,
		RetryDelay:   cfg.YouTube.RetryDelay,
	})
	feed := ytfeed.NewLister(cfg.YouTube.FeedURL, cfg.YouTube.Timeout)

	llmClient := llm.NewClient(cfg.LLM)
	var cache llm.Cache = llm.NewMemoryCache(10000)
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		cache = llm.NewRedisCache(a.redis, cfg.Redis.TTL)
		lgr.Printf("[INFO] translation cache in redis %s", cfg.Redis.Addr)
	}

	a.reports = report.NewBuilder(repos.Review, repos.Video, llm.NewSummarizer(llmClient), report.Params{
		GroupSample:   cfg.Report.GroupSample,
		OverallSample: cfg.Report.OverallSample,
	})
	if cfg.Slack.Token != "" {
		a.notifier = notify.NewSlackNotifier(cfg.Slack.Token, cfg.Slack.Channel, "")
	}

	a.steam = ingest.NewSteamFetcher(steamClient, repos.Review, repos.App, a.tracker, ingest.SteamParams{
		PageSize:    cfg.Steam.PageSize,
		Language:    cfg.Steam.Language,
		MaxLookback: days(cfg.Steam.MaxLookbackDays),
		MaxPages:    cfg.Steam.MaxPages,
		Concurrency: cfg.Schedule.MaxEntities,
	})

	deps := scheduler.Deps{
		Steam: a.steam,
		YouTube: ingest.NewYouTubeFetcher(supadataClient, feed, repos.Channel, ingest.RepositorySessions{Repos: repos},
			a.tracker, ingest.YouTubeParams{
				FetchLimit:  cfg.YouTube.FetchLimit,
				MaxWorkers:  cfg.YouTube.MaxWorkers,
				MaxAge:      days(cfg.YouTube.MaxAgeDays),
				Concurrency: cfg.Schedule.MaxEntities,
			}),
		Drainer: enrich.NewDispatcher(enrich.RepositoryStore{Repos: repos}, enrich.Params{
			Workers:   cfg.Enrichment.MaxWorkers,
			BatchSize: cfg.Enrichment.BatchSize,
		}),
		Translate:      enrich.TranslationStep{Translator: llm.NewTranslator(llmClient, cache)},
		AnalyzeReviews: enrich.ReviewAnalysisStep{Analyzer: llm.NewReviewAnalyzer(llmClient)},
		AnalyzeVideos:  enrich.VideoAnalysisStep{Analyzer: llm.NewVideoAnalyzer(llmClient, cfg.Enrichment.TranscriptLimit)},
		Reports:        a.reports,
		Games:          repos.Game,
	}
	if a.notifier != nil {
		deps.Notifier = a.notifier // keep the interface nil without slack
	}
	a.jobs = scheduler.NewJobs(deps, cfg.Report.Timespan)
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			lgr.Printf("[WARN] failed to close redis: %v", err)
		}
	}
	if err := a.repos.Close(); err != nil {
		lgr.Printf("[WARN] failed to close database: %v", err)
	}
}

// serve runs the http api and the scheduler until the context is canceled
func (a *app) serve(ctx context.Context) error {
	sched, err := a.newScheduler()
	if err != nil {
		return err
	}
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(serverConfig{a.cfg}, server.NewRepositoryAdapter(a.repos), a.reports, a.jobs, revision, a.debug)
	return srv.Run(ctx)
}

// schedule runs the scheduler until the context is canceled
func (a *app) schedule(ctx context.Context) error {
	sched, err := a.newScheduler()
	if err != nil {
		return err
	}
	sched.Start(ctx)
	<-ctx.Done()
	sched.Stop()
	return nil
}

func (a *app) newScheduler() (*scheduler.Scheduler, error) {
	reportInterval, err := a.cfg.ReportInterval()
	if err != nil {
		return nil, err
	}
	return scheduler.NewScheduler(a.jobs, scheduler.Params{
		FetchInterval:  a.cfg.Schedule.FetchInterval,
		EnrichInterval: a.cfg.Schedule.EnrichInterval,
		ReportInterval: reportInterval,
	}), nil
}

// runJobs runs jobs once, any failed job fails the command
func (a *app) runJobs(ctx context.Context, names ...scheduler.JobName) error {
	var errs []error
	for _, res := range a.jobs.RunAll(ctx, names...) {
		fmt.Println(res)
		if res.Err != "" {
			errs = append(errs, fmt.Errorf("%s: %s", res.Job, res.Err))
		}
	}
	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}

// fetchSteam runs the steam job, or a single cycle of one tracked app when --app is set
func (a *app) fetchSteam(ctx context.Context, cmd FetchSteamCmd) error {
	if cmd.App == 0 {
		if cmd.Backfill {
			return errors.New("--backfill requires --app")
		}
		return a.runJobs(ctx, scheduler.JobFetchSteam)
	}
	if _, err := a.repos.App.GetApp(ctx, cmd.App); err != nil {
		return fmt.Errorf("app %d: %w", cmd.App, err)
	}
	var res ingest.CycleResult
	if cmd.Backfill {
		res = a.steam.Backfill(ctx, cmd.App)
	} else {
		res = a.steam.RunApp(ctx, cmd.App)
	}
	fmt.Println(res)
	return res.Err
}

// report builds a single report, saves it to --out and sends it to slack if a channel is set or nothing is saved
func (a *app) report(ctx context.Context, cmd ReportCmd) error {
	if (cmd.App == 0) == (cmd.Game == "") {
		return errors.New("exactly one of --app and --game is required")
	}
	timespan := cmd.Timespan
	if cmd.Days == 0 && timespan == "" {
		timespan = a.cfg.Report.Timespan
	}
	if cmd.Days != 0 && timespan != "" {
		return errors.New("--days and --timespan are mutually exclusive")
	}
	w, err := domain.ParseWindow(time.Now(), timespan, cmd.Days)
	if err != nil {
		return err
	}

	var data []byte
	var kind, name, channel string
	if cmd.App != 0 {
		kind, name = "steam", fmt.Sprintf("app %d", cmd.App)
		data, err = a.reports.BuildSteamReport(ctx, cmd.App, w)
	} else {
		game, gerr := a.findGame(ctx, cmd.Game)
		if gerr != nil {
			return gerr
		}
		kind, name, channel = "youtube", game.Name, game.SlackChannel
		data, err = a.reports.BuildYouTubeReport(ctx, game.ID, w)
	}
	if err != nil {
		return fmt.Errorf("build %s report: %w", kind, err)
	}
	filename := scheduler.ReportFilename(kind, name, w)

	if cmd.Out != "" {
		if err := os.WriteFile(cmd.Out, data, 0o600); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		lgr.Printf("[INFO] %s report saved to %s, %d bytes", kind, cmd.Out, len(data))
	}
	if cmd.Out != "" && cmd.SlackChannel == "" {
		return nil
	}
	if a.notifier == nil {
		return errors.New("slack token is not configured")
	}
	if cmd.SlackChannel != "" {
		channel = cmd.SlackChannel
	}
	caption := fmt.Sprintf("%s %s report for %s", w.Label, kind, name)
	return a.notifier.UploadFile(ctx, channel, data, filename, caption)
}

// findGame looks a game up by id, then by name
func (a *app) findGame(ctx context.Context, idOrName string) (*domain.Game, error) {
	game, err := a.repos.Game.GetGame(ctx, idOrName)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return a.repos.Game.GetGameByName(ctx, idOrName)
}

// trackApp adds a steam app and optionally attaches it to a game
func (a *app) trackApp(ctx context.Context, cmd TrackAppCmd) error {
	created, err := a.repos.App.CreateApp(ctx, &domain.TrackedApp{AppID: cmd.AppID, Name: cmd.Name, Active: true})
	if err != nil {
		return err
	}
	if !created {
		if err := a.repos.App.SetAppActive(ctx, cmd.AppID, true); err != nil {
			return err
		}
	}
	lgr.Printf("[INFO] tracking steam app %d, new: %v", cmd.AppID, created)
	if cmd.Game == "" {
		return nil
	}
	game := &domain.Game{Name: cmd.Game, SteamAppID: cmd.AppID, SlackChannel: cmd.SlackChannel, Active: true}
	if err := a.repos.Game.CreateGame(ctx, game); err != nil {
		return err
	}
	lgr.Printf("[INFO] app %d attached to game %s (%s)", cmd.AppID, game.Name, game.ID)
	return nil
}

// trackChannel adds a youtube channel with its influencer and optionally maps the influencer to a game
func (a *app) trackChannel(ctx context.Context, cmd TrackChannelCmd) error {
	if !strings.HasPrefix(cmd.ChannelID, "UC") {
		return fmt.Errorf("channel id must start with UC, got %q", cmd.ChannelID)
	}
	handle := cmd.Handle
	if handle != "" && !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	inf := &domain.Influencer{Name: cmd.Influencer}
	if inf.Name == "" {
		inf.Name = cmd.Name
	}
	if inf.Name == "" {
		inf.Name = cmd.ChannelID
	}
	if err := a.repos.Game.CreateInfluencer(ctx, inf); err != nil {
		return err
	}
	ch := &domain.Channel{ChannelID: cmd.ChannelID, Handle: handle, Name: cmd.Name, InfluencerID: inf.ID, Active: true}
	created, err := a.repos.Channel.CreateChannel(ctx, ch)
	if err != nil {
		return err
	}
	if !created {
		if err := a.repos.Channel.SetChannelActive(ctx, ch.ChannelID, true); err != nil {
			return err
		}
	}
	lgr.Printf("[INFO] tracking channel %s of %s, new: %v", ch.ChannelID, inf.Name, created)
	if cmd.Game == "" {
		return nil
	}
	game := &domain.Game{Name: cmd.Game, Active: true}
	if err := a.repos.Game.CreateGame(ctx, game); err != nil {
		return err
	}
	return a.repos.Game.MapInfluencer(ctx, game.ID, inf.ID)
}

// resetPosition sets the mark of an app or a channel unconditionally
func (a *app) resetPosition(ctx context.Context, cmd ResetCmd, now time.Time) error {
	var ref domain.EntityRef
	switch {
	case cmd.App != 0 && cmd.Channel == "":
		ref = domain.AppRef(cmd.App)
	case cmd.Channel != "" && cmd.App == 0:
		ref = domain.ChannelRef(cmd.Channel)
	default:
		return errors.New("exactly one of --app and --channel is required")
	}
	pos := cmd.Position
	if cmd.DaysAgo > 0 {
		pos = now.AddDate(0, 0, -cmd.DaysAgo).Unix()
	}
	if pos < 0 {
		return fmt.Errorf("position must not be negative, got %d", pos)
	}
	if err := a.repos.Position.ResetPosition(ctx, ref, pos); err != nil {
		return err
	}
	lgr.Printf("[INFO] position of %s reset to %d", ref, pos)
	return nil
}

// serverConfig provides server settings from the configuration
type serverConfig struct {
	cfg *config.Config
}

// GetServerConfig returns listen address and timeout
func (s serverConfig) GetServerConfig() (listen string, timeout time.Duration) {
	return s.cfg.Server.Listen, s.cfg.Server.Timeout
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
