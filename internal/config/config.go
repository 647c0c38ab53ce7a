package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Events   EventsConfig   `toml:"events"`
	Payments PaymentsConfig `toml:"payments"`
	Booking  BookingConfig  `toml:"booking"`
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

// DSN возвращает строку подключения PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки JWT аутентификации
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// RedisConfig настройки кеша меню
type RedisConfig struct {
	Enabled       bool   `toml:"enabled"`
	Addr          string `toml:"addr"`
	DB            int    `toml:"db"`
	MenuTTLSecond int    `toml:"menu_ttl_seconds"`
}

// EventsConfig настройки публикации событий заказов в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// PaymentsConfig настройки платежного шлюза
type PaymentsConfig struct {
	Enabled   bool   `toml:"enabled"`
	PublicKey string `toml:"public_key"`
	SecretKey string `toml:"secret_key"`
	Currency  string `toml:"currency"`
}

// Режимы деградации проверки доступности слотов
const (
	FailModeOpen   = "open"   // при ошибке БД слот считается свободным
	FailModeClosed = "closed" // при ошибке БД бронирование отклоняется
)

// BookingConfig настройки бронирования экранов
type BookingConfig struct {
	// AvailabilityFailMode политика при недоступности хранилища
	// во время проверки слота: "open" или "closed"
	AvailabilityFailMode string `toml:"availability_fail_mode"`
}

// FailOpen сообщает, выбрана ли политика fail-open
func (c *BookingConfig) FailOpen() bool {
	return c.AvailabilityFailMode != FailModeClosed
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	if c.Booking.AvailabilityFailMode != "" &&
		c.Booking.AvailabilityFailMode != FailModeOpen &&
		c.Booking.AvailabilityFailMode != FailModeClosed {
		return fmt.Errorf("config: booking.availability_fail_mode must be %q or %q", FailModeOpen, FailModeClosed)
	}
	return nil
}
