package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	Booking      BookingConfig      `toml:"booking"`
	Payments     PaymentsConfig     `toml:"payments"`
	Mailer       MailerConfig       `toml:"mailer"`
	CalendarSync CalendarSyncConfig `toml:"calendar_sync"`
	Admin        AdminConfig        `toml:"admin"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// RedisConfig настройки Redis (очередь уведомлений)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	QueueKey string `toml:"queue_key"`
}

// Addr возвращает адрес Redis в формате host:port
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BookingConfig бизнес-параметры бронирования
// Ставка за ночь и месячный лимит - свойства конкретного объекта размещения,
// поэтому конфигурация, а не константы
type BookingConfig struct {
	DefaultNightlyRate    int64 `toml:"default_nightly_rate"`
	MonthlyBookingCap     int   `toml:"monthly_booking_cap"`
	PendingTTLMinutes     int   `toml:"pending_ttl_minutes"`
	ExpiryIntervalSeconds int   `toml:"expiry_interval_seconds"`
}

// PaymentsConfig настройки клиента платежного шлюза
type PaymentsConfig struct {
	URL       string `toml:"url"`
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	Timeout   int    `toml:"timeout"`
}

// MailerConfig настройки клиента почтового сервиса
type MailerConfig struct {
	URL     string `toml:"url"`
	From    string `toml:"from"`
	Timeout int    `toml:"timeout"`
}

// CalendarSyncConfig настройки клиента календарного сервиса
type CalendarSyncConfig struct {
	URL        string `toml:"url"`
	CalendarID string `toml:"calendar_id"`
	Timeout    int    `toml:"timeout"`
}

// AdminConfig настройки доступа к админским ручкам
type AdminConfig struct {
	Token string `toml:"token"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig возвращает конфигурацию с дефолтными значениями
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "kh-booking-service",
			Path:        "/metrics",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			QueueKey: "kh_booking:notifications",
		},
		Booking: BookingConfig{
			DefaultNightlyRate:    7000,
			MonthlyBookingCap:     15,
			PendingTTLMinutes:     30,
			ExpiryIntervalSeconds: 60,
		},
		Payments: PaymentsConfig{
			Timeout: 10,
		},
		Mailer: MailerConfig{
			Timeout: 10,
		},
		CalendarSync: CalendarSyncConfig{
			Timeout: 10,
		},
	}
}

func (c *Config) validate() error {
	if c.Booking.DefaultNightlyRate <= 0 {
		return fmt.Errorf("config: booking.default_nightly_rate must be positive")
	}
	if c.Booking.MonthlyBookingCap <= 0 {
		return fmt.Errorf("config: booking.monthly_booking_cap must be positive")
	}
	if c.Booking.PendingTTLMinutes <= 0 {
		return fmt.Errorf("config: booking.pending_ttl_minutes must be positive")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("config: admin.token is required")
	}
	return nil
}
