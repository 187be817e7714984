package config

import (
	"os"

	"github.com/selectdb/feed_observer/pkg/xerror"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level         string `yaml:"level"`
	Filename      string `yaml:"filename"`
	AlsoToStderr  bool   `yaml:"also_to_stderr"`
	MaxSizeMB     int    `yaml:"max_size_mb"`
	MaxAgeDays    int    `yaml:"max_age_days"`
	MaxBackups    int    `yaml:"max_backups"`
	CompressFiles bool   `yaml:"compress"`
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// StorageConfig selects the snapshot history backend: "memory", "sqlite3" or "mysql".
type StorageConfig struct {
	Type     string `yaml:"type"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type StockConfig struct {
	// Fraction of the previous price, 0.05 means 5%.
	TraderThreshold float64 `yaml:"trader_threshold"`
	// Absolute price change that triggers an email.
	EmailThreshold float64 `yaml:"email_threshold"`
}

type WeatherConfig struct {
	HeatAlert         float64 `yaml:"heat_alert"`
	FreezeAlert       float64 `yaml:"freeze_alert"`
	HighHumidityAlert float64 `yaml:"high_humidity_alert"`
	LowHumidityAlert  float64 `yaml:"low_humidity_alert"`
}

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Storage StorageConfig `yaml:"storage"`
	Stock   StockConfig   `yaml:"stock"`
	Weather WeatherConfig `yaml:"weather"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  1024, // 1GB
			MaxAgeDays: 7,
			MaxBackups: 30,
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			ServiceName: "feed-observer",
		},
		Storage: StorageConfig{
			Type:     "memory",
			Path:     "feed_observer.db",
			Host:     "127.0.0.1",
			Port:     3306,
			User:     "root",
			Database: "feed_observer",
		},
		Stock: StockConfig{
			TraderThreshold: 0.05,
			EmailThreshold:  1.0,
		},
		Weather: WeatherConfig{
			HeatAlert:         35,
			FreezeAlert:       0,
			HighHumidityAlert: 80,
			LowHumidityAlert:  20,
		},
	}
}

// Parse decodes yaml on top of the defaults, so absent keys keep their default value.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, xerror.Wrap(err, xerror.Config, "parse config failed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.Config, "read config %s failed", path)
	}

	return Parse(data)
}

func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory", "sqlite3", "mysql":
	default:
		return xerror.Errorf(xerror.Config, "unknown storage type %q", c.Storage.Type)
	}

	if c.Stock.TraderThreshold < 0 {
		return xerror.Errorf(xerror.Config, "stock.trader_threshold %v is negative", c.Stock.TraderThreshold)
	}
	if c.Stock.EmailThreshold < 0 {
		return xerror.Errorf(xerror.Config, "stock.email_threshold %v is negative", c.Stock.EmailThreshold)
	}
	if c.Weather.LowHumidityAlert > c.Weather.HighHumidityAlert {
		return xerror.Errorf(xerror.Config, "weather.low_humidity_alert %v above high_humidity_alert %v",
			c.Weather.LowHumidityAlert, c.Weather.HighHumidityAlert)
	}
	if c.Weather.FreezeAlert > c.Weather.HeatAlert {
		return xerror.Errorf(xerror.Config, "weather.freeze_alert %v above heat_alert %v",
			c.Weather.FreezeAlert, c.Weather.HeatAlert)
	}

	return nil
}
