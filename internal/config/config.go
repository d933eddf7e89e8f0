package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string
	PostgresDSN     string
	RedisAddr       string
	RedisPassword   string
	KafkaBroker     string
	KafkaTopic      string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxIdle   time.Duration
	DBConnMaxLife   time.Duration
	RequestTimeout  time.Duration
	LogLevel        string
	LogFormat       string
}

func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_port", "8080")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("kafka_broker", "")
	v.SetDefault("kafka_topic", "jobboard.notifications")
	v.SetDefault("access_token_ttl", 15*time.Minute)
	v.SetDefault("refresh_token_ttl", 30*24*time.Hour)
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_conn_max_idle", 5*time.Minute)
	v.SetDefault("db_conn_max_life", 30*time.Minute)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	cfg := &Config{
		HTTPPort:        v.GetString("http_port"),
		PostgresDSN:     v.GetString("database_url"),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		KafkaBroker:     v.GetString("kafka_broker"),
		KafkaTopic:      v.GetString("kafka_topic"),
		JWTSecret:       v.GetString("jwt_secret"),
		AccessTokenTTL:  v.GetDuration("access_token_ttl"),
		RefreshTokenTTL: v.GetDuration("refresh_token_ttl"),
		DBMaxOpenConns:  v.GetInt("db_max_open_conns"),
		DBMaxIdleConns:  v.GetInt("db_max_idle_conns"),
		DBConnMaxIdle:   v.GetDuration("db_conn_max_idle"),
		DBConnMaxLife:   v.GetDuration("db_conn_max_life"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}
