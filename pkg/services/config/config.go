package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/services/catalog"
	"github.com/spf13/viper"
)

const EnvPrefix = "REPORT"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Source SourceConfig `mapstructure:"source"`
	Store  StoreConfig  `mapstructure:"store"`
	Build  BuildConfig  `mapstructure:"build"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type SourceConfig struct {
	Timeout time.Duration     `mapstructure:"timeout"`
	URLs    map[string]string `mapstructure:"urls"`
}

type StoreConfig struct {
	DbPath         string `mapstructure:"db_path"`
	KeepPerSession int    `mapstructure:"keep_per_session"`
}

type BuildConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SourceURLs returns the endpoint per dataset. Configured keys are matched
// against dataset names case-insensitively since viper lowercases map keys.
func (c *Config) SourceURLs() map[domain.DatasetName]string {
	urls := catalog.DefaultSourceURLs()
	for key, url := range c.Source.URLs {
		for _, name := range catalog.Datasets() {
			if strings.EqualFold(key, string(name)) && url != "" {
				urls[name] = url
			}
		}
	}
	return urls
}

// LoadConfig reads the optional YAML file at path and applies REPORT_* env
// overrides on top of the defaults. An empty path uses defaults and env only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse report-designer config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("source.timeout", 30*time.Second)
	for name, url := range catalog.DefaultSourceURLs() {
		v.SetDefault("source.urls."+strings.ToLower(string(name)), url)
	}

	v.SetDefault("store.db_path", "report-designer.db")
	v.SetDefault("store.keep_per_session", 20)
	v.SetDefault("build.timeout", 60*time.Second)
	v.SetDefault("log.level", "info")
}

func validate(cfg *Config) error {
	var errs []error
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", cfg.Server.Port))
	}
	if cfg.Source.Timeout <= 0 {
		errs = append(errs, errors.New("source.timeout must be positive"))
	}
	if cfg.Store.DbPath == "" {
		errs = append(errs, errors.New("store.db_path is required"))
	}
	if cfg.Store.KeepPerSession < 0 {
		errs = append(errs, errors.New("store.keep_per_session must not be negative"))
	}
	return errors.Join(errs...)
}
