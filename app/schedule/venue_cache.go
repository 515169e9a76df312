package schedule

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Default admission windows, applied when a venue config omits its own.
// The bounds are deliberately configuration, not pipeline constants.
const (
	defaultWeekdayFrom = "18:30"
	defaultWeekdayTo   = "22:30"
	defaultWeekendFrom = "08:30"
	defaultWeekendTo   = "21:30"
)

type VenueCache struct {
	venuesDir string
	cache     map[string]*VenueConfig
	mu        sync.RWMutex
}

func NewVenueCache(venuesDir string) *VenueCache {
	return &VenueCache{
		venuesDir: venuesDir,
		cache:     make(map[string]*VenueConfig),
	}
}

func (vc *VenueCache) Run() error {
	if _, err := os.Stat(vc.venuesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(vc.venuesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive venue key from filename (remove .yml extension)
		fileName := filepath.Base(file)
		venueKey := fileName[:len(fileName)-4]

		venueConfig, err := vc.LoadConfig(venueKey)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Venue configuration loaded", "venue", venueKey, "enabled", venueConfig.Settings.Enabled)
	}

	return nil
}

func (vc *VenueCache) LoadConfig(venueKey string) (*VenueConfig, error) {
	configFile := vc.getConfigFilePath(venueKey)
	venueConfig, err := vc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	venueConfig.Key = venueKey

	if err := vc.validateConfig(venueConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.cache[venueConfig.Key] = venueConfig

	return venueConfig, nil
}

func (vc *VenueCache) GetConfig(venueKey string) (*VenueConfig, error) {
	vc.mu.RLock()
	defer vc.mu.RUnlock()

	venueConfig, ok := vc.cache[venueKey]
	if !ok {
		return nil, fmt.Errorf("venue config with key '%s' not found", venueKey)
	}
	return venueConfig, nil
}

func (vc *VenueCache) GetConfigs() map[string]*VenueConfig {
	vc.mu.RLock()
	defer vc.mu.RUnlock()

	configsCopy := make(map[string]*VenueConfig, len(vc.cache))
	for k, v := range vc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (vc *VenueCache) GetEnabledConfigs() map[string]*VenueConfig {
	vc.mu.RLock()
	defer vc.mu.RUnlock()

	enabledConfigs := make(map[string]*VenueConfig)
	for k, v := range vc.cache {
		if v.Settings.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (vc *VenueCache) GetConfigCount() int {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return len(vc.cache)
}

func (vc *VenueCache) parseConfig(configFile string) (*VenueConfig, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var venueConfig VenueConfig
	if err := yaml.Unmarshal(data, &venueConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if venueConfig.Windows.Weekday.From == "" {
		venueConfig.Windows.Weekday.From = defaultWeekdayFrom
	}
	if venueConfig.Windows.Weekday.To == "" {
		venueConfig.Windows.Weekday.To = defaultWeekdayTo
	}
	if venueConfig.Windows.Weekend.From == "" {
		venueConfig.Windows.Weekend.From = defaultWeekendFrom
	}
	if venueConfig.Windows.Weekend.To == "" {
		venueConfig.Windows.Weekend.To = defaultWeekendTo
	}

	return &venueConfig, nil
}

func (vc *VenueCache) validateConfig(venueConfig *VenueConfig) error {
	if venueConfig == nil {
		return fmt.Errorf("venueConfig is nil")
	}

	requiredFields := map[string]string{
		"venue key":  venueConfig.Key,
		"venue id":   venueConfig.ID,
		"venue name": venueConfig.Name,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	weekday, err := resolveWindow(venueConfig.Windows.Weekday)
	if err != nil {
		return fmt.Errorf("invalid weekday window: %w", err)
	}
	weekend, err := resolveWindow(venueConfig.Windows.Weekend)
	if err != nil {
		return fmt.Errorf("invalid weekend window: %w", err)
	}

	venueConfig.weekdayWindow = weekday
	venueConfig.weekendWindow = weekend

	return nil
}

func (vc *VenueCache) getConfigFilePath(venueKey string) string {
	return filepath.Join(vc.venuesDir, venueKey+".yml")
}

func resolveWindow(bounds WindowBounds) (AdmissionWindow, error) {
	from, err := parseClock(bounds.From)
	if err != nil {
		return AdmissionWindow{}, err
	}
	to, err := parseClock(bounds.To)
	if err != nil {
		return AdmissionWindow{}, err
	}
	if from >= to {
		return AdmissionWindow{}, fmt.Errorf("window start %q must precede end %q", bounds.From, bounds.To)
	}
	return AdmissionWindow{FromMinutes: from, ToMinutes: to}, nil
}

// parseClock converts an "HH:MM" bound into minutes of day.
func parseClock(value string) (int, error) {
	hours, mins, found := strings.Cut(value, ":")
	if !found {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}

	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", value)
	}

	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", value)
	}

	return h*60 + m, nil
}
