package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        DatabaseConfig    `toml:"database"`
	Logs            LogsConfig        `toml:"logs"`
	Metrics         MetricsConfig     `toml:"metrics"`
	CatalogService  IntegrationConfig `toml:"catalog_service"`
	ScheduleService IntegrationConfig `toml:"schedule_service"`
	ClientService   IntegrationConfig `toml:"client_service"`
	NotifyService   IntegrationConfig `toml:"notify_service"`
	Booking         BookingConfig     `toml:"booking"`
	Ratings         RatingsConfig     `toml:"ratings"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды

	// Лимит запросов на пользователя в минуту, 0 отключает лимит
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
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

// DSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внешнего HTTP сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig настройки жизненного цикла бронирований
type BookingConfig struct {
	// Время жизни неподтвержденного удержания в минутах
	HoldTTLMinutes int `toml:"hold_ttl_minutes"`

	// Cron-выражение зачистки истекших удержаний
	HoldSweepSpec string `toml:"hold_sweep_spec"`
}

// RatingsConfig настройки батч-пересчета рейтингов
type RatingsConfig struct {
	// Cron-выражение ночного пересчета
	RecalcSpec string `toml:"recalc_spec"`

	// Глубина пересчета в днях
	RecalcDaysBack int `toml:"recalc_days_back"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return &cfg, nil
}
