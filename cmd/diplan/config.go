package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sghaida/typereg/examples/webapp"
)

const envPrefix = "DIPLAN"

type config struct {
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Tracing   tracingConfig `mapstructure:"tracing"`
	App       appConfig     `mapstructure:"app"`
	Cache     cacheConfig   `mapstructure:"cache"`
}

type tracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Exporter is "stdout" or "otlp".
	Exporter     string `mapstructure:"exporter"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type appConfig struct {
	Name string `mapstructure:"name"`
	DSN  string `mapstructure:"dsn"`
}

type cacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.otlp_endpoint", "localhost:4317")
	v.SetDefault("app.name", "diplan")
	v.SetDefault("app.dsn", "mysql://localhost:3306/app")
	v.SetDefault("cache.ttl", webapp.DefaultCacheTTL)
}

// loadConfig reads envFile (a missing file is fine), then cfgFile if set,
// then DIPLAN_* variables, into v.
func loadConfig(v *viper.Viper, cfgFile, envFile string) (config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c config) webapp() webapp.Config {
	return webapp.Config{AppName: c.App.Name, DSN: c.App.DSN, CacheTTL: c.Cache.TTL}
}
