package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

const (
	DefaultConfigPath = "config.toml"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	envPort       = "PORT"
	envConfigPath = "CONFIG_PATH"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Slots    SlotsConfig    `toml:"slots"`
	CORS     CORSConfig     `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища бронирований: memory (по умолчанию) или postgres
type StorageConfig struct {
	Driver string `toml:"driver"`
}

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

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotsConfig границы каталога слотов, фиксируется при старте процесса
type SlotsConfig struct {
	OpenTime    string `toml:"open_time"`
	CloseTime   string `toml:"close_time"`
	StepMinutes int    `toml:"step_minutes"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Schedule переводит настройки слотов в доменное расписание
func (c SlotsConfig) Schedule() (domain.SlotSchedule, error) {
	open, err := types.NewTimeStringFromString(c.OpenTime)
	if err != nil {
		return domain.SlotSchedule{}, fmt.Errorf("%w: slots.open_time: %v", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(c.CloseTime)
	if err != nil {
		return domain.SlotSchedule{}, fmt.Errorf("%w: slots.close_time: %v", ErrInvalidConfig, err)
	}

	schedule := domain.SlotSchedule{
		OpenTime:    open,
		CloseTime:   closing,
		StepMinutes: c.StepMinutes,
	}
	if err := schedule.Validate(); err != nil {
		return domain.SlotSchedule{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return schedule, nil
}

// Path возвращает путь к файлу конфигурации: CONFIG_PATH (в том числе из .env) или config.toml
func Path() (string, error) {
	if err := loadDotEnv(); err != nil {
		return "", err
	}
	if p := os.Getenv(envConfigPath); p != "" {
		return p, nil
	}
	return DefaultConfigPath, nil
}

// loadDotEnv подгружает .env из рабочей директории, если он есть.
// Уже заданные переменные окружения не перезаписываются.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load читает .env (если есть) и TOML-файл. Отсутствующий TOML не ошибка:
// сервис стартует на значениях по умолчанию.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMemory
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "table-booking-service"
	}

	if c.Slots.OpenTime == "" {
		c.Slots.OpenTime = domain.DefaultOpenTime
	}
	if c.Slots.CloseTime == "" {
		c.Slots.CloseTime = domain.DefaultCloseTime
	}
	if c.Slots.StepMinutes == 0 {
		c.Slots.StepMinutes = domain.DefaultStepMinutes
	}
}

func (c *Config) applyEnv() error {
	if raw := os.Getenv(envPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, envPort, raw)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	if _, err := c.Slots.Schedule(); err != nil {
		return err
	}

	return nil
}
