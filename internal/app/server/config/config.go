package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env       string
	DB        DB
	Server    Server
	Logger    Logger
	AWS       AWS
	Submit    Submit
	RateLimit RateLimit
}

// DB holds every source a database connection can be derived from.
// Resolve picks one of them.
type DB struct {
	DatabaseURI   string `env:"DATABASE_URI"`
	CredsJSON     string `env:"DB_CREDS_JSON"`
	CredsSecretID string `env:"DB_CREDS_SECRET_ID"`
	Host          string `env:"DB_HOST"`
	Port          string `env:"DB_PORT" envDefault:"5432"`
	User          string `env:"DB_USER"`
	Password      string `env:"DB_PASS"`
	Name          string `env:"DB_NAME"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"./banco_de_dados.db"`
	Migrations    string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS" envDefault:":8000"`
	// StrictNotFound answers missing records with 404 instead of 200.
	StrictNotFound bool `env:"HTTP_STRICT_NOT_FOUND"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

type AWS struct {
	Region   string `env:"AWS_REGION" envDefault:"us-east-1"`
	Endpoint string `env:"AWS_ENDPOINT_URL"`
}

type Submit struct {
	Enabled   bool   `env:"SUBMIT_ENABLED" envDefault:"true"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"bucket-local-padrao"`
	Sender    string `env:"SES_SENDER_EMAIL" envDefault:"sender@local.com"`
	Recipient string `env:"SES_RECIPIENT_EMAIL" envDefault:"recipient@local.com"`
}

type RateLimit struct {
	RPS   float64 `env:"RATE_LIMIT_RPS"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load builds the configuration from v with environment lookups enabled.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	config := Config{
		Env: strings.ToLower(v.GetString("app_env")),
		DB: DB{
			DatabaseURI:   v.GetString("database_uri"),
			CredsJSON:     v.GetString("db_creds_json"),
			CredsSecretID: v.GetString("db_creds_secret_id"),
			Host:          v.GetString("db_host"),
			Port:          v.GetString("db_port"),
			User:          v.GetString("db_user"),
			Password:      v.GetString("db_pass"),
			Name:          v.GetString("db_name"),
			SQLitePath:    v.GetString("sqlite_path"),
			Migrations:    v.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:     v.GetString("run_address"),
			StrictNotFound: v.GetBool("http_strict_not_found"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		AWS: AWS{
			Region:   v.GetString("aws_region"),
			Endpoint: v.GetString("aws_endpoint_url"),
		},
		Submit: Submit{
			Enabled:   v.GetBool("submit_enabled"),
			Bucket:    v.GetString("bucket_name"),
			Sender:    v.GetString("ses_sender_email"),
			Recipient: v.GetString("ses_recipient_email"),
		},
		RateLimit: RateLimit{
			RPS:   v.GetFloat64("rate_limit_rps"),
			Burst: v.GetInt("rate_limit_burst"),
		},
	}

	switch config.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return nil, fmt.Errorf("unknown APP_ENV %q", config.Env)
	}
	if config.RateLimit.RPS < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8000")
	v.SetDefault("db_port", "5432")
	v.SetDefault("sqlite_path", "./banco_de_dados.db")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("submit_enabled", true)
	v.SetDefault("bucket_name", "bucket-local-padrao")
	v.SetDefault("ses_sender_email", "sender@local.com")
	v.SetDefault("ses_recipient_email", "recipient@local.com")
	v.SetDefault("rate_limit_burst", 10)
}
