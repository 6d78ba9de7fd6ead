package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GASTROPRO_SERVER_PORT.
const EnvPrefix = "GASTROPRO"

// Config represents the runtime configuration for the back-office service.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Monitoring    MonitoringConfig    `mapstructure:"monitoring"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Maintenance   MaintenanceConfig   `mapstructure:"maintenance"`
	Realtime      RealtimeConfig      `mapstructure:"realtime"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int             `mapstructure:"port"`
	LogLevel        string          `mapstructure:"log_level"`
	LogEncoding     string          `mapstructure:"log_encoding"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig      `mapstructure:"cors"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig bounds requests per client IP. Zero requests disables limiting.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver       string       `mapstructure:"driver"`
	Path         string       `mapstructure:"path"`
	DSN          string       `mapstructure:"dsn"`
	SeedDemo     bool         `mapstructure:"seed_demo"`
	MaxOpenConns int          `mapstructure:"max_open_conns"`
	MaxIdleConns int          `mapstructure:"max_idle_conns"`
	LogQueries   bool         `mapstructure:"log_queries"`
	Postgres     DBAuthConfig `mapstructure:"postgres"`
	MySQL        DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	Database string            `mapstructure:"database"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Options  map[string]string `mapstructure:"options"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Health     HealthConfig     `mapstructure:"health_check"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// HealthConfig toggles health endpoints.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// NotificationsConfig tunes the notification engine policy.
type NotificationsConfig struct {
	StockEscalationLevel float64            `mapstructure:"stock_escalation_level"`
	ManualExpiry         time.Duration      `mapstructure:"manual_expiry"`
	DefaultListLimit     int                `mapstructure:"default_list_limit"`
	MaxListLimit         int                `mapstructure:"max_list_limit"`
	Events               NotificationEvents `mapstructure:"events"`
}

// NotificationEvents holds the per-kind rules.
type NotificationEvents struct {
	LowStock          EventRuleConfig `mapstructure:"low_stock"`
	OutOfStock        EventRuleConfig `mapstructure:"out_of_stock"`
	OrderCreated      EventRuleConfig `mapstructure:"order_created"`
	OrderReady        EventRuleConfig `mapstructure:"order_ready"`
	OrderDelayed      EventRuleConfig `mapstructure:"order_delayed"`
	SystemMaintenance EventRuleConfig `mapstructure:"system_maintenance"`
	ShiftReminder     EventRuleConfig `mapstructure:"shift_reminder"`
}

// EventRuleConfig sets one event's dedup window and lifetime.
type EventRuleConfig struct {
	SuppressionWindow time.Duration `mapstructure:"suppression_window"`
	Expiry            time.Duration `mapstructure:"expiry"`
}

// MaintenanceConfig schedules background housekeeping. Empty schedules disable a job.
type MaintenanceConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	PurgeSchedule      string `mapstructure:"purge_schedule"`
	StockSweepSchedule string `mapstructure:"stock_sweep_schedule"`
	RunOnShutdown      bool   `mapstructure:"run_on_shutdown"`
}

// RealtimeConfig toggles the websocket notification feed.
type RealtimeConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
// A .env file in the working directory or any search path is loaded first;
// variables already present in the environment win.
func LoadConfig(paths ...string) (*Config, error) {
	if err := loadDotEnv(paths...); err != nil {
		return nil, err
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the engine cannot honour.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}

	n := c.Notifications
	if n.DefaultListLimit <= 0 || n.MaxListLimit < n.DefaultListLimit {
		return fmt.Errorf("config: notifications list limits invalid (default=%d max=%d)", n.DefaultListLimit, n.MaxListLimit)
	}
	if n.ManualExpiry < 0 {
		return errors.New("config: notifications.manual_expiry cannot be negative")
	}

	for name, rule := range n.Events.byName() {
		if rule.SuppressionWindow < 0 || rule.Expiry < 0 {
			return fmt.Errorf("config: notifications.events.%s durations cannot be negative", name)
		}
	}
	return nil
}

func (e NotificationEvents) byName() map[string]EventRuleConfig {
	return map[string]EventRuleConfig{
		"low_stock":          e.LowStock,
		"out_of_stock":       e.OutOfStock,
		"order_created":      e.OrderCreated,
		"order_ready":        e.OrderReady,
		"order_delayed":      e.OrderDelayed,
		"system_maintenance": e.SystemMaintenance,
		"shift_reminder":     e.ShiftReminder,
	}
}

func loadDotEnv(paths ...string) error {
	candidates := []string{".env"}
	for _, path := range paths {
		candidates = append(candidates, filepath.Join(path, ".env"))
	}

	for _, file := range candidates {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", file, err)
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_encoding", "json")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.requests", 300)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/gastropro.sqlite")
	v.SetDefault("database.seed_demo", false)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")
	v.SetDefault("monitoring.health_check.enabled", true)

	v.SetDefault("notifications.stock_escalation_level", 0)
	v.SetDefault("notifications.manual_expiry", "0s")
	v.SetDefault("notifications.default_list_limit", 50)
	v.SetDefault("notifications.max_list_limit", 200)
	v.SetDefault("notifications.events.low_stock.suppression_window", "6h")
	v.SetDefault("notifications.events.low_stock.expiry", "48h")
	v.SetDefault("notifications.events.out_of_stock.suppression_window", "12h")
	v.SetDefault("notifications.events.out_of_stock.expiry", "24h")
	v.SetDefault("notifications.events.order_created.suppression_window", "0s")
	v.SetDefault("notifications.events.order_created.expiry", "24h")
	v.SetDefault("notifications.events.order_ready.suppression_window", "0s")
	v.SetDefault("notifications.events.order_ready.expiry", "6h")
	v.SetDefault("notifications.events.order_delayed.suppression_window", "0s")
	v.SetDefault("notifications.events.order_delayed.expiry", "12h")
	v.SetDefault("notifications.events.system_maintenance.suppression_window", "0s")
	v.SetDefault("notifications.events.system_maintenance.expiry", "24h")
	v.SetDefault("notifications.events.shift_reminder.suppression_window", "0s")
	v.SetDefault("notifications.events.shift_reminder.expiry", "12h")

	v.SetDefault("maintenance.enabled", true)
	v.SetDefault("maintenance.purge_schedule", "@daily")
	v.SetDefault("maintenance.stock_sweep_schedule", "@every 30m")
	v.SetDefault("maintenance.run_on_shutdown", false)

	v.SetDefault("realtime.enabled", true)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
