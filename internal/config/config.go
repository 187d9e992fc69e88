package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr        string        `mapstructure:"addr"`
		Password    string        `mapstructure:"password"`
		SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		AdminPassword string        `mapstructure:"admin_password"`
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
		SecureCookie  bool          `mapstructure:"secure_cookie"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Site struct {
		Title   string `mapstructure:"title"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"site"`
	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
		To       string `mapstructure:"to"`
	} `mapstructure:"smtp"`
}

// LoadConfig reads .env, then config.yaml from the given search paths
// (current directory when none), then the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.snapshot_ttl", "REDIS_SNAPSHOT_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.admin_password", "ADMIN_PASSWORD")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.secure_cookie", "SECURE_COOKIE")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")
	v.BindEnv("site.title", "SITE_TITLE")
	v.BindEnv("site.base_url", "SITE_BASE_URL")

	v.BindEnv("smtp.host", "SMTP_HOST")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.user", "SMTP_USER")
	v.BindEnv("smtp.password", "SMTP_PASSWORD")
	v.BindEnv("smtp.from", "SMTP_FROM")
	v.BindEnv("smtp.to", "SMTP_TO")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}
	// KAFKA_BROKERS arrives as one comma separated string.
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "portfolio.db")
	v.SetDefault("redis.snapshot_ttl", 5*time.Minute)
	v.SetDefault("kafka.group_id", "portfolio-worker")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("site.title", "Portfolio")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("smtp.port", 587)
}
