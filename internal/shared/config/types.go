package config

import (
	"fmt"
	"time"
)

type APIConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	DefaultPageSize int    `mapstructure:"default_page_size"`
}

func (a *APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type SessionConfig struct {
	// DatabasePath is the local SQLite file holding the persisted credential
	// and the permission policies.
	DatabasePath string `mapstructure:"database_path"`
}

type ReconnectConfig struct {
	InitialIntervalMs   int     `mapstructure:"initial_interval_ms"`
	MaxIntervalMs       int     `mapstructure:"max_interval_ms"`
	Multiplier          float64 `mapstructure:"multiplier"`
	RandomizationFactor float64 `mapstructure:"randomization_factor"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RealtimeConfig struct {
	// Transport is "websocket" (default) or "redis".
	Transport string          `mapstructure:"transport"`
	URL       string          `mapstructure:"url"`
	Path      string          `mapstructure:"path"`
	Reconnect ReconnectConfig `mapstructure:"reconnect"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

type SMTPConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

type MailConfig struct {
	// Transport is "api" (default) or "smtp".
	Transport string     `mapstructure:"transport"`
	SMTP      SMTPConfig `mapstructure:"smtp"`
}

type ThreadConfig struct {
	// PostResolutionMarker posts the in-band marker comment after a resolve call.
	PostResolutionMarker bool `mapstructure:"post_resolution_marker"`
}

type UIConfig struct {
	Timezone      string `mapstructure:"timezone"`
	Output        string `mapstructure:"output"`
	ViewerCommand string `mapstructure:"viewer_command"`
}
