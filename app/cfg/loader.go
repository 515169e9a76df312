package cfg

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version == "" {
		return "unknown"
	}
	return Version
}

type rawCfg struct {
	// HTTP server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Upstream scheduling API configuration
	APIBaseURL   string `long:"api-base-url" env:"API_BASE_URL" default:"https://api.vivacrm.ru/end-user/api/v1/iSkq6G" description:"Base URL of the upstream scheduling API"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Slotwatch/1.0" description:"User agent string for HTTP requests"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Per-call timeout for upstream requests in seconds"`
	FetchWorkers int    `long:"fetch-workers" env:"FETCH_WORKERS" default:"4" description:"Number of concurrent upstream fetches during a scan"`

	// Slot pipeline configuration
	VenuesDir      string `long:"venues-dir" env:"VENUES_DIR" default:"./venues" description:"Directory containing venue configuration files"`
	Timezone       string `long:"timezone" env:"TZ" default:"Europe/Moscow" description:"Reference timezone for slot filtering (e.g., Europe/Moscow)"`
	CacheTTL       int    `long:"cache-ttl" env:"CACHE_TTL" default:"300" description:"Report cache time-to-live in seconds"`
	MaxBlockLength int    `long:"max-block-length" env:"MAX_BLOCK_LENGTH" default:"4096" description:"Maximum length of a single report block in characters"`

	// Background processing configuration
	SchedulerInterval int `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		APIBaseURL:        raw.APIBaseURL,
		UserAgent:         raw.UserAgent,
		FetchTimeout:      raw.FetchTimeout,
		FetchWorkers:      raw.FetchWorkers,
		VenuesDir:         raw.VenuesDir,
		Timezone:          raw.Timezone,
		CacheTTL:          raw.CacheTTL,
		MaxBlockLength:    raw.MaxBlockLength,
		SchedulerInterval: raw.SchedulerInterval,
		WorkerCount:       raw.WorkerCount,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
