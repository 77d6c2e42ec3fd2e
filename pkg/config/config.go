package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=HTTP server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for translation and analysis"`
	Steam      SteamConfig      `yaml:"steam" json:"steam" jsonschema:"description=Steam reviews source"`
	YouTube    YouTubeConfig    `yaml:"youtube" json:"youtube" jsonschema:"description=YouTube transcripts source"`
	Enrichment EnrichmentConfig `yaml:"enrichment" json:"enrichment" jsonschema:"description=Enrichment pipeline settings"`
	Report     ReportConfig     `yaml:"report" json:"report" jsonschema:"description=Report generation settings"`
	Slack      SlackConfig      `yaml:"slack" json:"slack" jsonschema:"description=Slack delivery of reports"`
	Redis      RedisConfig      `yaml:"redis" json:"redis" jsonschema:"description=Optional redis translation cache"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"required,default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"required,default=60s,description=HTTP server timeout"`
}

// DatabaseConfig holds store settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver" json:"driver" jsonschema:"required,enum=sqlite,enum=postgres,default=sqlite,description=Database driver"`
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"required,default=file:reviewscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds intervals of periodic jobs
type ScheduleConfig struct {
	FetchInterval  time.Duration `yaml:"fetch_interval" json:"fetch_interval" jsonschema:"default=1h,description=How often to fetch new reviews and videos"`
	EnrichInterval time.Duration `yaml:"enrich_interval" json:"enrich_interval" jsonschema:"default=15m,description=How often to drain pending translations and analyses"`
	MaxEntities    int           `yaml:"max_entities" json:"max_entities" jsonschema:"default=4,description=Tracked entities fetched in parallel"`
}

// LLMConfig holds openai-compatible client settings
type LLMConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey        string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model         string        `yaml:"model" json:"model" jsonschema:"required,default=gpt-4.1,description=Model name"`
	Temperature   float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens     int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=1000,description=Maximum tokens in response"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxAttempts   int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=3,description=Attempts for transient errors"`
	RetryMinDelay time.Duration `yaml:"retry_min_delay" json:"retry_min_delay" jsonschema:"default=2s,description=Initial retry delay doubled per attempt"`
	RetryMaxDelay time.Duration `yaml:"retry_max_delay" json:"retry_max_delay" jsonschema:"default=10s,description=Retry delay cap"`
}

// SteamConfig holds steam store api settings
type SteamConfig struct {
	BaseURL         string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://store.steampowered.com,description=Steam store base URL"`
	PageSize        int           `yaml:"page_size" json:"page_size" jsonschema:"default=100,minimum=1,maximum=100,description=Reviews per page"`
	PageDelay       time.Duration `yaml:"page_delay" json:"page_delay" jsonschema:"default=1500ms,description=Delay between page requests"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
	Language        string        `yaml:"language" json:"language" jsonschema:"default=all,description=Review language filter"`
	MaxLookbackDays int           `yaml:"max_lookback_days" json:"max_lookback_days" jsonschema:"default=30,description=Never fetch reviews older than this"`
	MaxPages        int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=200,description=Maximum pages per app per cycle"`
}

// YouTubeConfig holds supadata and youtube feed settings
type YouTubeConfig struct {
	SupadataURL  string        `yaml:"supadata_url" json:"supadata_url" jsonschema:"default=https://api.supadata.ai/v1/youtube,description=Supadata API base URL"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=Supadata API key"`
	FeedURL      string        `yaml:"feed_url" json:"feed_url" jsonschema:"default=https://www.youtube.com/feeds/videos.xml,description=YouTube channel RSS endpoint used as fallback lister"`
	FetchLimit   int           `yaml:"fetch_limit" json:"fetch_limit" jsonschema:"default=30,description=Recent videos listed per channel"`
	MaxWorkers   int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=8,description=Videos processed in parallel per channel"`
	RequestDelay time.Duration `yaml:"request_delay" json:"request_delay" jsonschema:"default=1s,description=Minimal interval between supadata requests"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxAttempts  int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=3,description=Attempts for transient errors"`
	RetryDelay   time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=5s,description=Initial retry delay doubled per attempt"`
	MaxAgeDays   int           `yaml:"max_age_days" json:"max_age_days" jsonschema:"default=7,description=Never ingest videos older than this"`
}

// EnrichmentConfig holds dispatcher settings
type EnrichmentConfig struct {
	BatchSize       int `yaml:"batch_size" json:"batch_size" jsonschema:"default=50,minimum=1,description=Pending items pulled per batch"`
	MaxWorkers      int `yaml:"max_workers" json:"max_workers" jsonschema:"default=8,minimum=1,description=Concurrent enrichment tasks"`
	TranscriptLimit int `yaml:"transcript_limit" json:"transcript_limit" jsonschema:"default=20000,description=Transcript characters sent to the llm"`
}

// ReportConfig holds aggregator settings
type ReportConfig struct {
	GroupSample   int    `yaml:"group_sample" json:"group_sample" jsonschema:"default=200,description=Texts per group sent for summarization"`
	OverallSample int    `yaml:"overall_sample" json:"overall_sample" jsonschema:"default=300,description=Texts sent for the overall summary"`
	Timespan      string `yaml:"timespan" json:"timespan" jsonschema:"enum=weekly,enum=monthly,default=weekly,description=Window of scheduled reports"`
	Schedule      string `yaml:"schedule" json:"schedule" jsonschema:"default=168h,description=How often scheduled reports are sent (duration)"`
}

// SlackConfig holds slack delivery settings
type SlackConfig struct {
	Token   string `yaml:"token" json:"token" jsonschema:"description=Slack bot token"`
	Channel string `yaml:"channel" json:"channel" jsonschema:"description=Default channel id for reports"`
}

// RedisConfig holds translation cache settings, cache is disabled if addr is empty
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr" jsonschema:"description=Redis address host:port"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=Redis password"`
	DB       int           `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=720h,description=Cached translation lifetime"`
}

// LoadEnvFile loads variables from a dotenv file, missing file is not an error
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func (cfg *Config) SetDefaults() {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}

	// database
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file:reviewscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.FetchInterval == 0 {
		cfg.Schedule.FetchInterval = time.Hour
	}
	if cfg.Schedule.EnrichInterval == 0 {
		cfg.Schedule.EnrichInterval = 15 * time.Minute
	}
	if cfg.Schedule.MaxEntities == 0 {
		cfg.Schedule.MaxEntities = 4
	}

	// llm
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4.1"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MaxAttempts == 0 {
		cfg.LLM.MaxAttempts = 3
	}
	if cfg.LLM.RetryMinDelay == 0 {
		cfg.LLM.RetryMinDelay = 2 * time.Second
	}
	if cfg.LLM.RetryMaxDelay == 0 {
		cfg.LLM.RetryMaxDelay = 10 * time.Second
	}

	// steam
	if cfg.Steam.BaseURL == "" {
		cfg.Steam.BaseURL = "https://store.steampowered.com"
	}
	if cfg.Steam.PageSize == 0 {
		cfg.Steam.PageSize = 100
	}
	if cfg.Steam.PageDelay == 0 {
		cfg.Steam.PageDelay = 1500 * time.Millisecond
	}
	if cfg.Steam.Timeout == 0 {
		cfg.Steam.Timeout = 15 * time.Second
	}
	if cfg.Steam.Language == "" {
		cfg.Steam.Language = "all"
	}
	if cfg.Steam.MaxLookbackDays == 0 {
		cfg.Steam.MaxLookbackDays = 30
	}
	if cfg.Steam.MaxPages == 0 {
		cfg.Steam.MaxPages = 200
	}

	// youtube
	if cfg.YouTube.SupadataURL == "" {
		cfg.YouTube.SupadataURL = "https://api.supadata.ai/v1/youtube"
	}
	if cfg.YouTube.FeedURL == "" {
		cfg.YouTube.FeedURL = "https://www.youtube.com/feeds/videos.xml"
	}
	if cfg.YouTube.FetchLimit == 0 {
		cfg.YouTube.FetchLimit = 30
	}
	if cfg.YouTube.MaxWorkers == 0 {
		cfg.YouTube.MaxWorkers = 8
	}
	if cfg.YouTube.RequestDelay == 0 {
		cfg.YouTube.RequestDelay = time.Second
	}
	if cfg.YouTube.Timeout == 0 {
		cfg.YouTube.Timeout = 30 * time.Second
	}
	if cfg.YouTube.MaxAttempts == 0 {
		cfg.YouTube.MaxAttempts = 3
	}
	if cfg.YouTube.RetryDelay == 0 {
		cfg.YouTube.RetryDelay = 5 * time.Second
	}
	if cfg.YouTube.MaxAgeDays == 0 {
		cfg.YouTube.MaxAgeDays = 7
	}

	// enrichment
	if cfg.Enrichment.BatchSize == 0 {
		cfg.Enrichment.BatchSize = 50
	}
	if cfg.Enrichment.MaxWorkers == 0 {
		cfg.Enrichment.MaxWorkers = 8
	}
	if cfg.Enrichment.TranscriptLimit == 0 {
		cfg.Enrichment.TranscriptLimit = 20000
	}

	// report
	if cfg.Report.GroupSample == 0 {
		cfg.Report.GroupSample = 200
	}
	if cfg.Report.OverallSample == 0 {
		cfg.Report.OverallSample = 300
	}
	if cfg.Report.Timespan == "" {
		cfg.Report.Timespan = "weekly"
	}
	if cfg.Report.Schedule == "" {
		cfg.Report.Schedule = "168h"
	}

	// redis
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 30 * 24 * time.Hour
	}
}

// ReportInterval returns parsed report schedule
func (cfg *Config) ReportInterval() (time.Duration, error) {
	d, err := time.ParseDuration(cfg.Report.Schedule)
	if err != nil {
		return 0, fmt.Errorf("parse report schedule %q: %w", cfg.Report.Schedule, err)
	}
	return d, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for %s", cfg.Database.Driver)
	}

	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm.max_attempts must be at least 1")
	}

	if cfg.Steam.PageSize < 1 || cfg.Steam.PageSize > 100 {
		return fmt.Errorf("steam.page_size must be between 1 and 100")
	}
	if cfg.Steam.Timeout < time.Second {
		return fmt.Errorf("steam.timeout must be at least 1 second")
	}
	if cfg.YouTube.Timeout < time.Second {
		return fmt.Errorf("youtube.timeout must be at least 1 second")
	}
	if cfg.Enrichment.BatchSize < 1 {
		return fmt.Errorf("enrichment.batch_size must be at least 1")
	}
	if cfg.Enrichment.MaxWorkers < 1 {
		return fmt.Errorf("enrichment.max_workers must be at least 1")
	}
	if cfg.Report.Timespan != "weekly" && cfg.Report.Timespan != "monthly" {
		return fmt.Errorf("report.timespan must be weekly or monthly")
	}
	if _, err := cfg.ReportInterval(); err != nil {
		return err
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}
