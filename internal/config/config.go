package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	AdminRef AdminRefConfig `mapstructure:"adminref"`
	Push     PushConfig     `mapstructure:"push"`
	API      APIConfig      `mapstructure:"api"`
	Stream   StreamConfig   `mapstructure:"stream"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// PipelineConfig drives the nightly run. Schedule is a six-field cron spec
// evaluated in Timezone; zeroed scoring and alert knobs fall back to the
// package defaults.
type PipelineConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	Schedule          string  `mapstructure:"schedule"`
	Timezone          string  `mapstructure:"timezone"`
	RunOnStart        bool    `mapstructure:"run_on_start"`
	CooldownDays      int     `mapstructure:"cooldown_days"`
	PriceDropPct      float64 `mapstructure:"price_drop_pct"`
	MinSample         int     `mapstructure:"min_sample"`
	EarthRadiusM      float64 `mapstructure:"earth_radius_m"`
	AllowGeolessMatch bool    `mapstructure:"allow_geoless_match"`
}

type AdminRefConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	PageLimit int           `mapstructure:"page_limit"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type PushConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	FCMEndpoint  string        `mapstructure:"fcm_endpoint"`
	FCMServerKey string        `mapstructure:"fcm_server_key"`
	WebhookURL   string        `mapstructure:"webhook_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type APIConfig struct {
	AuthEnabled bool   `mapstructure:"auth_enabled"`
	APIKey      string `mapstructure:"api_key"`
}

type StreamConfig struct {
	Buffer int `mapstructure:"buffer"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("pipeline.enabled", true)
	v.SetDefault("pipeline.schedule", "0 0 3 * * *")
	v.SetDefault("pipeline.timezone", "Europe/Lisbon")
	v.SetDefault("pipeline.run_on_start", false)
	v.SetDefault("pipeline.cooldown_days", 30)
	v.SetDefault("pipeline.price_drop_pct", 5.0)
	v.SetDefault("pipeline.min_sample", 30)
	v.SetDefault("pipeline.earth_radius_m", 6_371_000.0)
	v.SetDefault("pipeline.allow_geoless_match", false)
	v.SetDefault("adminref.enabled", true)
	v.SetDefault("adminref.base_url", "https://public.opendatasoft.com/api/explore/v2.1/catalog/datasets")
	v.SetDefault("adminref.page_limit", 100)
	v.SetDefault("adminref.timeout", "20s")
	v.SetDefault("push.enabled", false)
	v.SetDefault("push.fcm_endpoint", "https://fcm.googleapis.com/fcm/send")
	v.SetDefault("push.fcm_server_key", "")
	v.SetDefault("push.webhook_url", "")
	v.SetDefault("push.timeout", "15s")
	v.SetDefault("api.auth_enabled", false)
	v.SetDefault("api.api_key", "")
	v.SetDefault("stream.buffer", 16)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
