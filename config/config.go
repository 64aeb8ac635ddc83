package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/paineldocafe/panel/internal/clients"
)

// Config holds the panel runtime settings.
type Config struct {
	ListenAddr       string
	QuotesURL        string
	PollInterval     time.Duration
	RefreshInterval  time.Duration
	HistoryDir       string
	HistoryRetention int
	LogFile          string
	UserID           string
	Weather          clients.Location
}

// configYaml mirrors the on-disk file. Duration fields are plain integer
// nanoseconds in yaml, the form the setup wizard writes; strings like "60s"
// are not accepted.
type configYaml struct {
	ListenAddr       string        `yaml:"listen_addr,omitempty"`
	QuotesURL        string        `yaml:"quotes_url,omitempty"`
	PollInterval     time.Duration `yaml:"poll_interval,omitempty"`
	RefreshInterval  time.Duration `yaml:"refresh_interval,omitempty"`
	HistoryDir       string        `yaml:"history_dir,omitempty"`
	HistoryRetention int           `yaml:"history_retention,omitempty"`
	LogFile          string        `yaml:"log_file,omitempty"`
	UserID           string        `yaml:"user_id,omitempty"`
	Weather          struct {
		Location  string  `yaml:"location,omitempty"`
		Latitude  float64 `yaml:"latitude,omitempty"`
		Longitude float64 `yaml:"longitude,omitempty"`
		Timezone  string  `yaml:"timezone,omitempty"`
	} `yaml:"weather,omitempty"`
}

// Get loads the configuration from the yaml file passed via -config, falling
// back to CLI flags for the main knobs.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	listenAddr := flag.String("listen", ":8085", "HTTP listen address")
	quotesURL := flag.String("quotes-url", "", "market quote feed URL (empty for the default public feed)")
	pollInterval := flag.Duration("poll-interval", time.Minute, "quote feed poll interval")
	refreshInterval := flag.Duration("refresh-interval", 5*time.Minute, "analytics refresh interval")
	historyDir := flag.String("history-dir", "./wal/pricehistory", "price history WAL directory")
	userID := flag.String("user", "", "inventory owner user id (empty reads all rows)")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	cfg := Config{
		ListenAddr:      *listenAddr,
		QuotesURL:       *quotesURL,
		PollInterval:    *pollInterval,
		RefreshInterval: *refreshInterval,
		HistoryDir:      *historyDir,
		UserID:          *userID,
		Weather:         clients.DefaultLocation,
	}
	return withDefaults(cfg), nil
}

func getYaml(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	var parsed configYaml
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, errors.Wrap(err, "parse config file")
	}

	cfg := Config{
		ListenAddr:       parsed.ListenAddr,
		QuotesURL:        parsed.QuotesURL,
		PollInterval:     parsed.PollInterval,
		RefreshInterval:  parsed.RefreshInterval,
		HistoryDir:       parsed.HistoryDir,
		HistoryRetention: parsed.HistoryRetention,
		LogFile:          parsed.LogFile,
		UserID:           parsed.UserID,
		Weather: clients.Location{
			Name:      parsed.Weather.Location,
			Latitude:  parsed.Weather.Latitude,
			Longitude: parsed.Weather.Longitude,
			Timezone:  parsed.Weather.Timezone,
		},
	}
	return withDefaults(cfg), nil
}

func withDefaults(cfg Config) Config {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8085"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Minute
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = "./wal/pricehistory"
	}
	if cfg.Weather.Name == "" {
		cfg.Weather = clients.DefaultLocation
	}
	if cfg.Weather.Timezone == "" {
		cfg.Weather.Timezone = clients.DefaultLocation.Timezone
	}
	return cfg
}
