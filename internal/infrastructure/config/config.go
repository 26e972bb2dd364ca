package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "helpdesk/internal/shared/config"
)

type Config struct {
	API      sharedConfig.APIConfig      `mapstructure:"api"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Session  sharedConfig.SessionConfig  `mapstructure:"session"`
	Realtime sharedConfig.RealtimeConfig `mapstructure:"realtime"`
	Mail     sharedConfig.MailConfig     `mapstructure:"mail"`
	Thread   sharedConfig.ThreadConfig   `mapstructure:"thread"`
	UI       sharedConfig.UIConfig       `mapstructure:"ui"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from an optional file and environment variables.
// An explicit path must exist; without one a missing config.yaml is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".helpdesk"))
		}
	}

	v.SetEnvPrefix("HELPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "helpdesk.db"
	}
	return filepath.Join(home, ".helpdesk", "helpdesk.db")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "http://localhost:3333")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.default_page_size", 10)

	// Logger defaults
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	// Session defaults
	v.SetDefault("session.database_path", defaultSessionPath())

	// Realtime defaults
	v.SetDefault("realtime.transport", "websocket")
	v.SetDefault("realtime.url", "http://localhost:4000")
	v.SetDefault("realtime.path", "/ws")
	v.SetDefault("realtime.reconnect.initial_interval_ms", 1000)
	v.SetDefault("realtime.reconnect.max_interval_ms", 30000)
	v.SetDefault("realtime.reconnect.multiplier", 2.0)
	v.SetDefault("realtime.reconnect.randomization_factor", 0.2)
	v.SetDefault("realtime.redis.host", "localhost")
	v.SetDefault("realtime.redis.port", 6379)
	v.SetDefault("realtime.redis.password", "")
	v.SetDefault("realtime.redis.db", 0)
	v.SetDefault("realtime.redis.channel", "helpdesk:comments")

	// Mail defaults
	v.SetDefault("mail.transport", "api")
	v.SetDefault("mail.smtp.host", "localhost")
	v.SetDefault("mail.smtp.port", 1025)
	v.SetDefault("mail.smtp.username", "")
	v.SetDefault("mail.smtp.password", "")
	v.SetDefault("mail.smtp.from_address", "helpdesk@localhost")
	v.SetDefault("mail.smtp.from_name", "Helpdesk")

	// Thread defaults
	v.SetDefault("thread.post_resolution_marker", true)

	// UI defaults
	v.SetDefault("ui.timezone", "America/Sao_Paulo")
	v.SetDefault("ui.output", "table")
	v.SetDefault("ui.viewer_command", "xdg-open")
}
