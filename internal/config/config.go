package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort    string `envconfig:"APP_PORT" default:"8080"`
	LogFile     string `envconfig:"LOG_FILE" default:"eternal-pay.log"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	SwaggerHost string `envconfig:"SWAGGER_HOST" default:"localhost:8080"`
	CORSOrigin  string `envconfig:"CORS_ALLOWED_ORIGIN" default:"https://max-epayweb.uvxtdw.easypanel.host"`
	RateLimit   string `envconfig:"RATE_LIMIT" default:"100-S"`
	DB          DBConfig
	Price       PriceConfig
	Pix         PixConfig
	Workers     WorkersConfig
	Kafka       KafkaConfig
}

type DBConfig struct {
	Host           string `envconfig:"POSTGRES_HOST"     required:"true"`
	Port           string `envconfig:"POSTGRES_PORT"     required:"true"`
	User           string `envconfig:"POSTGRES_USER"     required:"true"`
	Password       string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName         string `envconfig:"POSTGRES_DB"       required:"true"`
	SSLMode        string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH"   default:"migrations"`
	MigrateOnStart bool   `envconfig:"MIGRATE_ON_START"  default:"true"`
}

type PriceConfig struct {
	BaseURL  string        `envconfig:"PRICE_API_URL" default:"https://max-apiscrapercripto.uvxtdw.easypanel.host"`
	Exchange string        `envconfig:"PRICE_EXCHANGE" default:"binance"`
	Timeout  time.Duration `envconfig:"PRICE_TIMEOUT" default:"5s"`
}

type PixConfig struct {
	BaseURL string        `envconfig:"PIX_API_URL" default:"https://gerarqrcodepix.com.br/api/v1"`
	Timeout time.Duration `envconfig:"PIX_TIMEOUT" default:"10s"`
}

type WorkersConfig struct {
	QuoteRefreshInterval  time.Duration `envconfig:"QUOTE_REFRESH_INTERVAL" default:"10s"`
	USDBRLRefreshInterval time.Duration `envconfig:"USD_BRL_REFRESH_INTERVAL" default:"5m"`
	SweepInterval         time.Duration `envconfig:"SWEEP_INTERVAL" default:"30s"`
	PendingTTL            time.Duration `envconfig:"PENDING_TTL" default:"30m"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"transaction-expirations"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"eternal-pay-notifier"`
	Workers int      `envconfig:"KAFKA_CONSUMER_WORKERS" default:"1"`
}

func NewConfig() (*Config, error) {
	envFile := "config.env"

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return &cfg, nil
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
