package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file loaded before config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`

	Server        struct{}        `command:"server" description:"run http api with the scheduler"`
	Run           struct{}        `command:"run" description:"run the scheduler only"`
	FetchSteam    FetchSteamCmd   `command:"fetch-steam" description:"fetch new steam reviews of active apps or one app"`
	FetchYouTube  struct{}        `command:"fetch-youtube" description:"fetch new videos and transcripts of active channels"`
	Translate     struct{}        `command:"translate" description:"translate pending reviews"`
	Analyze       struct{}        `command:"analyze" description:"analyze pending reviews and videos"`
	Report        ReportCmd       `command:"report" description:"build a report, save and/or send it to slack"`
	TrackApp      TrackAppCmd     `command:"track-app" description:"start tracking a steam app"`
	TrackChannel  TrackChannelCmd `command:"track-channel" description:"start tracking a youtube channel"`
	ResetPosition ResetCmd        `command:"reset-position" description:"set the high-water mark of an app or channel"`
}

// FetchSteamCmd fetches reviews of all active apps, or of one app with optional full history
type FetchSteamCmd struct {
	App      int64 `long:"app" description:"steam app id, all active apps if not set"`
	Backfill bool  `long:"backfill" description:"read the whole review history of the app, ignoring mark and lookback"`
}

// ReportCmd builds a report of an app or a game
type ReportCmd struct {
	App          int64  `long:"app" description:"steam app id"`
	Game         string `long:"game" description:"game id or name for youtube report"`
	Timespan     string `long:"timespan" choice:"weekly" choice:"monthly" description:"report window"`
	Days         int    `long:"days" description:"report window of last N days, instead of timespan"`
	SlackChannel string `long:"slack-channel" description:"send to this slack channel"`
	Out          string `long:"out" description:"save report to this file"`
}

// TrackAppCmd adds a steam app
type TrackAppCmd struct {
	AppID        int64  `long:"id" required:"true" description:"steam app id"`
	Name         string `long:"name" description:"app name"`
	Game         string `long:"game" description:"game name to attach the app to"`
	SlackChannel string `long:"slack-channel" description:"slack channel of the game reports"`
}

// TrackChannelCmd adds a youtube channel
type TrackChannelCmd struct {
	ChannelID  string `long:"id" required:"true" description:"youtube channel id, UC..."`
	Handle     string `long:"handle" description:"channel handle, @name"`
	Name       string `long:"name" description:"channel name"`
	Influencer string `long:"influencer" description:"influencer owning the channel, defaults to channel name"`
	Game       string `long:"game" description:"game name the influencer covers"`
}

// ResetCmd sets a high-water mark explicitly, the only way to lower it
type ResetCmd struct {
	App      int64  `long:"app" description:"steam app id"`
	Channel  string `long:"channel" description:"youtube channel id"`
	Position int64  `long:"position" description:"new mark, unix seconds"`
	DaysAgo  int    `long:"days-ago" description:"set mark to N days before now"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting reviewscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, parser.Active.Name)
	cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		lgr.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if secs = nonEmpty(secs); len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

func nonEmpty(vals []string) []string {
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
