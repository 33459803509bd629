package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"PG_CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

// Khalti is the ePayment gateway integration. Amounts cross this boundary in
// paisa; the secret key authenticates both the initiate and the lookup calls.
type Khalti struct {
	SecretKey          string `yaml:"KHALTI_SECRET_KEY" env:"KHALTI_SECRET_KEY" env-required:"true"`
	BaseURL            string `yaml:"KHALTI_BASE_URL" env:"KHALTI_BASE_URL" env-default:"https://dev.khalti.com/api/v2"`
	ReturnURL          string `yaml:"KHALTI_RETURN_URL" env:"KHALTI_RETURN_URL" env-required:"true"`
	WebsiteURL         string `yaml:"KHALTI_WEBSITE_URL" env:"KHALTI_WEBSITE_URL" env-required:"true"`
	SuccessRedirectURL string `yaml:"KHALTI_SUCCESS_REDIRECT_URL" env:"KHALTI_SUCCESS_REDIRECT_URL" env-required:"true"`
	FailureRedirectURL string `yaml:"KHALTI_FAILURE_REDIRECT_URL" env:"KHALTI_FAILURE_REDIRECT_URL" env-required:"true"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@promptmandu.com"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Prompt Marketplace"`
}

type Telemetry struct {
	Enabled          bool   `yaml:"OTEL_ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ExporterEndpoint string `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4318"`
	ServiceName      string `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"prompt-marketplace"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Khalti       Khalti       `yaml:"khalti"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Telemetry    Telemetry    `yaml:"otel"`
	Security     Security     `yaml:"security"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
