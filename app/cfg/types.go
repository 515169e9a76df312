package cfg

type Cfg struct {
	// HTTP server configuration
	Port         string
	APIAccessKey string

	// Upstream scheduling API configuration
	APIBaseURL   string
	UserAgent    string
	FetchTimeout int
	FetchWorkers int

	// Slot pipeline configuration
	VenuesDir      string
	Timezone       string
	CacheTTL       int
	MaxBlockLength int

	// Background processing configuration
	SchedulerInterval int
	WorkerCount       int

	// Application metadata
	Debug   bool
	Version string
}
