package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Драйверы хранилища
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config содержит все настройки приложения
type Config struct {
	Env       string          `yaml:"env"`
	LogLevel  string          `yaml:"log_level"`
	Storage   string          `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Session   SessionConfig   `yaml:"session"`
	Admin     AdminConfig     `yaml:"admin"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Checkout  CheckoutConfig  `yaml:"checkout"`
	Promo     PromoConfig     `yaml:"promo"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig содержит настройки сервера
type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig содержит настройки базы данных
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// JWTConfig содержит настройки JWT для панели администратора
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	ExpireTime time.Duration `yaml:"expire_time"`
}

// SessionConfig содержит настройки токенов покупательских сессий
type SessionConfig struct {
	Secret   string        `yaml:"secret"`
	Lifetime time.Duration `yaml:"lifetime"`
}

// AdminConfig описывает администратора, создаваемого при старте
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// CatalogConfig содержит настройки кеша каталога
type CatalogConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// SeedFile - CSV, которым наполняется пустой каталог при старте
	SeedFile string `yaml:"seed_file"`
}

// CheckoutConfig содержит тарифы доставки и таблицу промокодов
type CheckoutConfig struct {
	FreeDeliveryThreshold int64          `yaml:"free_delivery_threshold"`
	CourierFee            int64          `yaml:"courier_fee"`
	PickupFee             int64          `yaml:"pickup_fee"`
	PromoCodes            map[string]int `yaml:"promo_codes"`
	// MaxDrafts - сколько незавершенных оформлений держать в памяти
	MaxDrafts int `yaml:"max_drafts"`
}

// PromoConfig содержит дату окончания текущей акции
type PromoConfig struct {
	EndsAt       time.Time     `yaml:"ends_at"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// RateLimitConfig ограничивает частоту попыток входа в админку
type RateLimitConfig struct {
	LoginPerMinute int `yaml:"login_per_minute"`
	LoginBurst     int `yaml:"login_burst"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Если задан CONFIG_PATH, значения из YAML-файла применяются поверх.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Storage:  getEnv("STORAGE_DRIVER", StoragePostgres),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Second * 15,
			// Поток отсчета акции держит соединение открытым
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "perfume"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "secret-key"),
			ExpireTime: time.Hour * 24,
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "storefront-session-secret-key-0123456789"),
			Lifetime: getEnvDuration("SESSION_LIFETIME", time.Hour*24*30),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@perfume.local"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Catalog: CatalogConfig{
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", time.Minute*5),
			SeedFile: getEnv("CATALOG_SEED_FILE", ""),
		},
		Checkout: CheckoutConfig{
			FreeDeliveryThreshold: getEnvInt("FREE_DELIVERY_THRESHOLD", 5000),
			CourierFee:            getEnvInt("COURIER_FEE", 500),
			PickupFee:             getEnvInt("PICKUP_FEE", 300),
			PromoCodes: map[string]int{
				"WELCOME10": 10,
				"SALE20":    20,
				"VIP30":     30,
			},
			MaxDrafts: int(getEnvInt("MAX_CHECKOUT_DRAFTS", 10000)),
		},
		Promo: PromoConfig{
			EndsAt:       getEnvTime("PROMO_ENDS_AT", time.Now().Add(time.Hour*24*7).Truncate(time.Hour)),
			TickInterval: time.Second,
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: int(getEnvInt("LOGIN_RATE_PER_MINUTE", 10)),
			LoginBurst:     int(getEnvInt("LOGIN_RATE_BURST", 5)),
		},
	}

	if path, ok := os.LookupEnv("CONFIG_PATH"); ok && path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile накладывает значения из YAML-файла на уже загруженную конфигурацию
func (c *Config) applyFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	// Таблица промокодов из файла заменяет таблицу по умолчанию целиком
	defaults := c.Checkout.PromoCodes
	c.Checkout.PromoCodes = nil

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	if c.Checkout.PromoCodes == nil {
		c.Checkout.PromoCodes = defaults
	}

	// Промокоды храним в верхнем регистре, сравнение без учёта регистра
	codes := make(map[string]int, len(c.Checkout.PromoCodes))
	if c.Checkout.MaxDrafts <= 0 {
		return fmt.Errorf("max_drafts must be positive, got %d", c.Checkout.MaxDrafts)
	}

	for code, percent := range c.Checkout.PromoCodes {
		codes[strings.ToUpper(code)] = percent
	}
	c.Checkout.PromoCodes = codes

	return nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage)
	}

	if c.Checkout.CourierFee == c.Checkout.PickupFee {
		return fmt.Errorf("courier and pickup fees must differ")
	}

	if c.Checkout.MaxDrafts <= 0 {
		return fmt.Errorf("max_drafts must be positive, got %d", c.Checkout.MaxDrafts)
	}

	for code, percent := range c.Checkout.PromoCodes {
		if percent <= 0 || percent > 100 {
			return fmt.Errorf("promo code %s: percent must be 1-100, got %d", code, percent)
		}
	}

	return nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvTime(key string, defaultValue time.Time) time.Time {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
