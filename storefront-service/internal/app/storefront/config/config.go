package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Campaigns - лендинги кампаний, у каждого своя категория каталога
var Campaigns = []string{"baby", "wedding", "corporate", "festival"}

// Config содержит все настройки Storefront Service
// Значения берутся из storefront.yaml (если есть) и переопределяются переменными окружения
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	MongoDB MongoDBConfig
	JWT     JWTConfig
	Admin   AdminConfig
	Catalog CatalogConfig
	Cron    CronConfig
	Log     LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host           string   // Адрес хоста (по умолчанию 0.0.0.0)
	Port           string   // Порт сервера (по умолчанию 8080)
	AllowedOrigins []string // Origins для CORS
}

// APIConfig - адреса внешнего REST API каталога
// Internal используется при запросах с сервера, Public отдается браузеру
type APIConfig struct {
	InternalURL string
	PublicURL   string
	Timeout     time.Duration
}

// RedisConfig - настройки Redis для кеша страниц каталога
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // Время жизни закешированных ответов API
}

// KafkaConfig - события витрины (изменения каталога, заявки с контактной формы)
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// MongoDBConfig - журнал аудита админки, пустой URI отключает журнал
type MongoDBConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// AdminConfig - учетная запись администратора (пароль хранится только как bcrypt хэш)
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// CatalogConfig - параметры витрины
type CatalogConfig struct {
	FeaturedLimit int               // Максимум товаров на лендинге кампании
	RelatedLimit  int               // Максимум похожих товаров на странице товара
	Campaigns     map[string]string // Кампания -> slug категории
}

type CronConfig struct {
	WarmCache string // Расписание прогрева кеша (cron, 5 полей)
	WarmRPS   int    // Лимит запросов в секунду к API при прогреве
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load загружает конфигурацию: defaults -> storefront.yaml -> переменные окружения
// Ключ api.internal_url переопределяется переменной API_INTERNAL_URL и т.д.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	campaigns := make(map[string]string, len(Campaigns))
	for _, name := range Campaigns {
		campaigns[name] = v.GetString("catalog.campaigns." + name)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("server.host"),
			Port:           v.GetString("server.port"),
			AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
		},
		API: APIConfig{
			InternalURL: v.GetString("api.internal_url"),
			PublicURL:   v.GetString("api.public_url"),
			Timeout:     v.GetDuration("api.timeout"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("kafka.enabled"),
			Brokers: splitList(v.GetString("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt.secret"),
			TokenTTL: v.GetDuration("jwt.token_ttl"),
		},
		Admin: AdminConfig{
			Username:     v.GetString("admin.username"),
			PasswordHash: v.GetString("admin.password_hash"),
		},
		Catalog: CatalogConfig{
			FeaturedLimit: v.GetInt("catalog.featured_limit"),
			RelatedLimit:  v.GetInt("catalog.related_limit"),
			Campaigns:     campaigns,
		},
		Cron: CronConfig{
			WarmCache: v.GetString("cron.warm_cache"),
			WarmRPS:   v.GetInt("warm.rps"),
		},
		Log: LogConfig{
			Level:        v.GetString("log.level"),
			LogstashAddr: v.GetString("logstash.addr"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", "http://localhost:3000")

	// Хардкод на случай отсутствия настроек окружения
	v.SetDefault("api.internal_url", "http://localhost:8000/api")
	v.SetDefault("api.public_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "10s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "1h")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "storefront_events")

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "storefront")

	v.SetDefault("jwt.secret", "your-secret-key-change-this-in-production")
	v.SetDefault("jwt.token_ttl", "12h")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("catalog.featured_limit", 12)
	v.SetDefault("catalog.related_limit", 4)
	v.SetDefault("catalog.campaigns.baby", "baby-hampers")
	v.SetDefault("catalog.campaigns.wedding", "wedding-hampers")
	v.SetDefault("catalog.campaigns.corporate", "corporate-hampers")
	v.SetDefault("catalog.campaigns.festival", "festival-hampers")

	v.SetDefault("cron.warm_cache", "*/15 * * * *")
	v.SetDefault("warm.rps", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("logstash.addr", "")
}

func (c *Config) validate() error {
	if c.Catalog.FeaturedLimit <= 0 {
		return fmt.Errorf("invalid CATALOG_FEATURED_LIMIT value: %d", c.Catalog.FeaturedLimit)
	}
	if c.Catalog.RelatedLimit < 0 {
		return fmt.Errorf("invalid CATALOG_RELATED_LIMIT value: %d", c.Catalog.RelatedLimit)
	}
	if c.Cron.WarmRPS <= 0 {
		return fmt.Errorf("invalid WARM_RPS value: %d", c.Cron.WarmRPS)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
