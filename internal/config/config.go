// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SMTPConfig настройки отправки почты клиентам
type SMTPConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	From string `toml:"from"`
}

// BookingConfig доменные настройки по умолчанию
type BookingConfig struct {
	// DefaultTimezone используется, когда у бизнеса не задана таймзона
	DefaultTimezone string `toml:"default_timezone"`

	// ManageBaseURL основа для ссылок самообслуживания в письмах клиентам
	ManageBaseURL string `toml:"manage_base_url"`
}

// Load читает и валидирует конфигурацию из файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "booking-platform"
	}
	if cfg.Booking.DefaultTimezone == "" {
		cfg.Booking.DefaultTimezone = "UTC"
	}
	if cfg.Booking.ManageBaseURL == "" {
		cfg.Booking.ManageBaseURL = "http://localhost:8080"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return errors.New("config: database.host is required")
	}
	if cfg.Database.User == "" {
		return errors.New("config: database.user is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("config: database.dbname is required")
	}
	return nil
}
