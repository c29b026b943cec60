package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Discord  *DiscordConfig  `mapstructure:"discord"`
	Reminder *ReminderConfig `mapstructure:"reminder"`
	Fx       *FxConfig       `mapstructure:"fx"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	CronSecret         string   `mapstructure:"cron_secret"`
	EncryptionKey      string   `mapstructure:"encryption_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type DiscordConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
}

// ReminderConfig drives the delivery-reminder pipeline. Window is how far
// ahead of the event a sold ticket becomes remindable, ResendAfter is the
// minimum gap between two reminders for the same ticket.
type ReminderConfig struct {
	Window      time.Duration `mapstructure:"window"`
	ResendAfter time.Duration `mapstructure:"resend_after"`
	SendDelay   time.Duration `mapstructure:"send_delay"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
	DailyRunAt  string        `mapstructure:"daily_run_at"` // "HH:MM" in UTC
}

type FxConfig struct {
	APIURL   string        `mapstructure:"api_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func Load(path string) (*AppConfig, error) {
	conf := &AppConfig{}

	viper.SetConfigFile(path)
	viper.SetEnvPrefix("TICKETS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		// Best effort reload. Components snapshot their config at
		// construction, so only freshly built ones see the change.
		_ = viper.Unmarshal(conf)
	})

	return conf, nil
}
