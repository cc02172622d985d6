package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultAPIBaseURL is the backend used when nothing else is configured
	DefaultAPIBaseURL = "http://localhost:8000/api"

	currentVersion = 1
)

// Config represents the application configuration
type Config struct {
	Version        int        `toml:"version"`
	APIBaseURL     string     `toml:"api_base_url"`
	SessionFile    string     `toml:"session_file"`
	LogLevel       string     `toml:"log_level"`
	PollInterval   Duration   `toml:"poll_interval"`
	RequestTimeout Duration   `toml:"request_timeout"`
	UISettings     UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize       int      `toml:"page_size"` // 0 means all rows
	BannerTTL      Duration `toml:"banner_ttl"`
	DefaultSort    string   `toml:"default_sort"`
	VisibleBanners int      `toml:"visible_banners"`
}

// Duration is a time.Duration written as a Go duration string ("10s")
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(b))
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service for path, or for config.toml in
// the user config directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = filepath.Join(Dir(), "config.toml")
	}
	return &configService{filePath: path}
}

// Dir returns the drr configuration directory
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "drr")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the configuration file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        currentVersion,
		APIBaseURL:     DefaultAPIBaseURL,
		SessionFile:    filepath.Join(Dir(), "session.json"),
		LogLevel:       "info",
		PollInterval:   Duration{10 * time.Second},
		RequestTimeout: Duration{30 * time.Second},
		UISettings: UISettings{
			PageSize:       25,
			BannerTTL:      Duration{8 * time.Second},
			DefaultSort:    "renew_date",
			VisibleBanners: 3,
		},
	}
}

// LoadEnvFile loads a .env file into the process environment when present.
// Variables already set in the environment win.
func LoadEnvFile(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return errors.Wrap(godotenv.Load(existing...), "failed to load env file")
}

// ApplyEnv overrides configuration values from DRR_* environment variables
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("DRR_API_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("DRR_SESSION_FILE"); ok && v != "" {
		cfg.SessionFile = v
	}
	if v, ok := os.LookupEnv("DRR_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("DRR_POLL_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = Duration{d}
		}
	}
	if v, ok := os.LookupEnv("DRR_PAGE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.UISettings.PageSize = n
		}
	}
	cfg.normalize()
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = currentVersion
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if c.SessionFile == "" {
		c.SessionFile = def.SessionFile
	}
	if c.PollInterval.Duration <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.RequestTimeout.Duration <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.UISettings.PageSize < 0 {
		c.UISettings.PageSize = def.UISettings.PageSize
	}
	if c.UISettings.VisibleBanners <= 0 {
		c.UISettings.VisibleBanners = def.UISettings.VisibleBanners
	}
}
