package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружаемая из config.toml
type Config struct {
	Server           ServerConfig        `toml:"server"`
	Database         DatabaseConfig      `toml:"database"`
	Logs             LogsConfig          `toml:"logs"`
	Metrics          MetricsConfig       `toml:"metrics"`
	DirectoryService IntegrationConfig   `toml:"directory_service"`
	CatalogService   IntegrationConfig   `toml:"catalog_service"`
	Calendar         CalendarConfig      `toml:"calendar"`
	Notifications    NotificationsConfig `toml:"notifications"`
	Reminders        RemindersConfig     `toml:"reminders"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // Секунды
	WriteTimeout    int `toml:"write_timeout"`    // Секунды
	IdleTimeout     int `toml:"idle_timeout"`     // Секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // Секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // Секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// IntegrationConfig настройки HTTP-клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // Секунды
}

// CalendarConfig настройки интеграции с Google Calendar
type CalendarConfig struct {
	Enabled            bool   `toml:"enabled"`
	CredentialsFile    string `toml:"credentials_file"` // Service account для календаря салона
	CalendarID         string `toml:"calendar_id"`
	HolidaysCalendarID string `toml:"holidays_calendar_id"`
	ClientID           string `toml:"client_id"` // OAuth для личных календарей пользователей
	ClientSecret       string `toml:"client_secret"`
	RedirectURI        string `toml:"redirect_uri"`
	Timeout            int    `toml:"timeout"` // Секунды, короткий: деградируем, не блокируем запрос
	TimeZone           string `toml:"timezone"`
}

// NotificationsConfig настройки почтовых уведомлений (SendGrid)
type NotificationsConfig struct {
	Enabled     bool   `toml:"enabled"`
	SendGridKey string `toml:"sendgrid_key"`
	FromEmail   string `toml:"from_email"`
	FromName    string `toml:"from_name"`
	SalonName   string `toml:"salon_name"`
}

// RemindersConfig настройки периодического обхода напоминаний
type RemindersConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron-выражение, например "@hourly"
}

// Load читает и парсит конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Reminders.Schedule == "" {
		cfg.Reminders.Schedule = "@hourly"
	}
	if cfg.Calendar.TimeZone == "" {
		cfg.Calendar.TimeZone = "America/Argentina/Buenos_Aires"
	}

	return &cfg, nil
}
