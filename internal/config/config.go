package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	State      StateConfig      `mapstructure:"state"`
	Session    SessionConfig    `mapstructure:"session"`
	Admin      AdminConfig      `mapstructure:"admin"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	PayPal     PayPalConfig     `mapstructure:"paypal"`
	S3         S3Config         `mapstructure:"s3"`
	Generation GenerationConfig `mapstructure:"generation"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	DB              string        `mapstructure:"db"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type StateConfig struct {
	Backend string `mapstructure:"backend"` // "redis" | "memory"
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl"`
}

type AdminConfig struct {
	// ExportKey guards the image export endpoint. Compared in constant time.
	ExportKey string `mapstructure:"export_key"`
}

type OpenAIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	DefaultModel string        `mapstructure:"default_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type PayPalConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	BaseURL      string        `mapstructure:"base_url"`
	BrandName    string        `mapstructure:"brand_name"`
	ReturnURL    string        `mapstructure:"return_url"`
	CancelURL    string        `mapstructure:"cancel_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
	Prefix        string `mapstructure:"prefix"`
}

type GenerationConfig struct {
	FreeLimit      int `mapstructure:"free_limit"`
	InitialCredits int `mapstructure:"initial_credits"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml, overlays environment variables, and returns Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.mode", "release")
	v.SetDefault("session.ttl", 30*24*time.Hour)
	v.SetDefault("session.reset_token_ttl", time.Hour)
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.default_model", "dall-e-3")
	v.SetDefault("openai.timeout", 60*time.Second)
	v.SetDefault("paypal.base_url", "https://api-m.sandbox.paypal.com")
	v.SetDefault("paypal.brand_name", "PhotoSet")
	v.SetDefault("paypal.timeout", 30*time.Second)
	v.SetDefault("generation.free_limit", 3)
	v.SetDefault("generation.initial_credits", 50)

	// Environment variable override: DATABASE_POSTGRES_HOST -> database.postgres.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
